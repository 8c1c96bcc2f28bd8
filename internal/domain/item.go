package domain

import "time"

// MediaType tags a MediaItem with the section of the site it belongs to.
type MediaType string

const (
	TypeGames       MediaType = "games"
	TypeMovies      MediaType = "movies"
	TypeShows       MediaType = "shows"
	TypeManga       MediaType = "manga"
	TypeMusic       MediaType = "music"
	TypeVideos      MediaType = "videos"
	TypeWebcomics   MediaType = "webcomics"
	TypeStatus      MediaType = "status"
	TypeWebmentions MediaType = "webmentions"
)

// Author identifies whoever made the thing: developer, mangaka, artist,
// channel owner. Link is optional.
type Author struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// MediaItem is the canonical record every source normalizes into.
// Timestamp semantics vary per source: games carry started/completed dates,
// webcomics take added/updated from their latest published entry, and so on.
// Items are constructed once per fetch and never mutated downstream.
type MediaItem struct {
	ID    string    `json:"id"`
	Type  MediaType `json:"type"`
	Title string    `json:"title"`
	// LatestTitle names the newest published entry for serial sources
	// (webcomics), prefixed with the series title when the entry does not
	// already carry it.
	LatestTitle string `json:"latestItemTitle,omitempty"`
	Description string `json:"description,omitempty"`
	Genres      []string  `json:"genres"`
	Link        string    `json:"link,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Author      *Author   `json:"author,omitempty"`

	AddedAt     *time.Time `json:"addedAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Source-specific extras. Tags are raw upstream tags, distinct from
	// the curated Genres list.
	Platform string   `json:"platform,omitempty"`
	Playtime int      `json:"playtime,omitempty"`
	Rate     string   `json:"rate,omitempty"`
	Views    string   `json:"views,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Year     int      `json:"year,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Collection groups one source's items by status bucket (e.g. "watchlist",
// "completed"). The bucket key set is fixed per source, not discovered at
// runtime, and buckets are disjoint by construction: each upstream list is
// fetched independently.
type Collection map[string][]MediaItem
