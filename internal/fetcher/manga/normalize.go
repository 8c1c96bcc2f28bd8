package manga

import (
	"fmt"

	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// mangaRecord is the raw MangaDex manga entity with cover_art, author and
// artist relationships expanded.
type mangaRecord struct {
	ID            string          `json:"id"`
	Attributes    mangaAttributes `json:"attributes"`
	Relationships []relationship  `json:"relationships"`
}

type mangaAttributes struct {
	Title         map[string]string `json:"title"`
	Description   map[string]string `json:"description"`
	Links         map[string]string `json:"links"`
	Tags          []mangaTag        `json:"tags"`
	ContentRating string            `json:"contentRating"`
	UpdatedAt     string            `json:"updatedAt"`
	CreatedAt     string            `json:"createdAt"`
	Year          int               `json:"year"`
}

type mangaTag struct {
	Attributes struct {
		Name  map[string]string `json:"name"`
		Group string            `json:"group"`
	} `json:"attributes"`
}

type relationship struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name     string `json:"name"`
		FileName string `json:"fileName"`
	} `json:"attributes"`
}

// normalizeManga maps a raw record onto the canonical schema. Descriptions
// arrive as markdown and are rendered then sanitized; genres are the tags
// in the "genre" group; the author falls back to "Unknown" when the
// relationship was not expanded.
func normalizeManga(record mangaRecord) domain.MediaItem {
	attrs := record.Attributes

	item := domain.MediaItem{
		ID:          record.ID,
		Type:        domain.TypeManga,
		Title:       localized(attrs.Title, "Untitled"),
		Description: normalize.MarkdownToSafeHTML(localized(attrs.Description, "")),
		Genres:      genreTags(attrs.Tags),
		Link:        mangaLink(record),
		Rate:        attrs.ContentRating,
		Year:        attrs.Year,
		Author:      &domain.Author{Name: "Unknown"},
		UpdatedAt:   normalize.ParseTime(attrs.UpdatedAt),
		CreatedAt:   normalize.ParseTime(attrs.CreatedAt),
	}

	for _, rel := range record.Relationships {
		switch rel.Type {
		case "author", "artist":
			if item.Author.Name == "Unknown" && rel.Attributes.Name != "" {
				item.Author = &domain.Author{Name: rel.Attributes.Name}
			}
		case "cover_art":
			if rel.Attributes.FileName != "" {
				item.Thumbnail = fmt.Sprintf("%s/covers/%s/%s.256.jpg", uploadsCD, record.ID, rel.Attributes.FileName)
			}
		}
	}

	return item
}

// localized prefers the English variant and otherwise takes any available
// translation.
func localized(values map[string]string, fallback string) string {
	if v, ok := values["en"]; ok && v != "" {
		return v
	}
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}

func genreTags(tags []mangaTag) []string {
	genres := []string{}
	for _, t := range tags {
		if t.Attributes.Group != "genre" {
			continue
		}
		if name := localized(t.Attributes.Name, ""); name != "" {
			genres = append(genres, name)
		}
	}
	return genres
}

// mangaLink prefers the raw external link when the author published one and
// otherwise points at the MangaDex title page.
func mangaLink(record mangaRecord) string {
	if raw, ok := record.Attributes.Links["raw"]; ok && raw != "" {
		return raw
	}
	return "https://mangadex.org/title/" + record.ID
}
