package music

import (
	"strings"

	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// playlistTrack is a raw Spotify playlist entry: the track itself plus the
// playlist-level added_at timestamp.
type playlistTrack struct {
	AddedAt string `json:"added_at"`
	Track   struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	} `json:"track"`
}

// normalizeTrack maps a raw playlist entry onto the canonical schema.
// Artists collapse into one comma-joined author; the thumbnail is the
// album's largest image, which Spotify lists first.
func normalizeTrack(pt playlistTrack) domain.MediaItem {
	track := pt.Track

	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		names = append(names, a.Name)
	}

	item := domain.MediaItem{
		ID:      track.ID,
		Type:    domain.TypeMusic,
		Title:   track.Name,
		Genres:  []string{},
		Link:    track.ExternalURLs.Spotify,
		AddedAt: normalize.ParseTime(pt.AddedAt),
	}
	if len(names) > 0 {
		item.Author = &domain.Author{Name: strings.Join(names, ", ")}
	}
	if len(track.Album.Images) > 0 {
		item.Thumbnail = track.Album.Images[0].URL
	}
	return item
}
