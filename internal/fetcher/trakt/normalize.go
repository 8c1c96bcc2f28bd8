package trakt

import (
	"fmt"

	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// listItem is the raw Trakt list entry. Watchlists nest the record under
// "movie"/"show"; favourites add a "type" discriminator. Older list formats
// inline the fields, which mediaRecord covers via the nil fallbacks below.
type listItem struct {
	Type     string       `json:"type"`
	ListedAt string       `json:"listed_at"`
	Movie    *mediaRecord `json:"movie"`
	Show     *mediaRecord `json:"show"`
	mediaRecord
}

type mediaRecord struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Overview string   `json:"overview"`
	Genres   []string `json:"genres"`
	IDs      traktIDs `json:"ids"`
}

type traktIDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
}

func (i listItem) record() mediaRecord {
	if i.Movie != nil {
		return *i.Movie
	}
	if i.Show != nil {
		return *i.Show
	}
	return i.mediaRecord
}

func normalizeItem(item listItem, kind domain.MediaType) domain.MediaItem {
	rec := item.record()

	link := ""
	if rec.IDs.Slug != "" {
		link = fmt.Sprintf("https://trakt.tv/%s/%s", kind, rec.IDs.Slug)
	}

	listedAt := normalize.ParseTime(item.ListedAt)

	return domain.MediaItem{
		ID:          fmt.Sprintf("%d", rec.IDs.Trakt),
		Type:        kind,
		Title:       rec.Title,
		Year:        rec.Year,
		Description: rec.Overview,
		Genres:      genresOrEmpty(rec.Genres),
		Link:        link,
		CreatedAt:   listedAt,
		AddedAt:     listedAt,
	}
}

func genresOrEmpty(genres []string) []string {
	if genres == nil {
		return []string{}
	}
	return genres
}
