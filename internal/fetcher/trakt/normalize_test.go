package trakt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kulugary/mediahub/internal/domain"
)

func TestNormalizeNestedMovie(t *testing.T) {
	raw := `{
		"type": "movie",
		"listed_at": "2024-01-15T20:00:00.000Z",
		"movie": {
			"title": "Dune",
			"year": 2021,
			"overview": "Spice and sandworms.",
			"genres": ["science-fiction", "adventure"],
			"ids": {"trakt": 12345, "slug": "dune-2021"}
		}
	}`
	var item listItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := normalizeItem(item, domain.TypeMovies)

	if got.ID != "12345" {
		t.Errorf("got id %q, want %q", got.ID, "12345")
	}
	if got.Type != domain.TypeMovies {
		t.Errorf("got type %q", got.Type)
	}
	if got.Title != "Dune" || got.Year != 2021 {
		t.Errorf("got %q (%d)", got.Title, got.Year)
	}
	if got.Link != "https://trakt.tv/movies/dune-2021" {
		t.Errorf("got link %q", got.Link)
	}
	if len(got.Genres) != 2 {
		t.Errorf("got genres %v", got.Genres)
	}
	want := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	if got.AddedAt == nil || !got.AddedAt.Equal(want) {
		t.Errorf("got addedAt %v, want %v", got.AddedAt, want)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(want) {
		t.Errorf("got createdAt %v, want %v", got.CreatedAt, want)
	}
}

func TestNormalizeNestedShow(t *testing.T) {
	raw := `{
		"type": "show",
		"listed_at": "2023-06-01T08:00:00.000Z",
		"show": {
			"title": "Severance",
			"year": 2022,
			"ids": {"trakt": 777, "slug": "severance"}
		}
	}`
	var item listItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := normalizeItem(item, domain.TypeShows)

	if got.Link != "https://trakt.tv/shows/severance" {
		t.Errorf("got link %q", got.Link)
	}
	if got.Genres == nil {
		t.Error("genres should be an empty slice, not nil")
	}
}

func TestNormalizeInlineRecordFallback(t *testing.T) {
	raw := `{
		"listed_at": "2023-06-01T08:00:00.000Z",
		"title": "Inline Movie",
		"year": 1999,
		"ids": {"trakt": 42, "slug": "inline-movie"}
	}`
	var item listItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := normalizeItem(item, domain.TypeMovies)
	if got.Title != "Inline Movie" || got.ID != "42" {
		t.Errorf("inline fields not picked up: %+v", got)
	}
}

func TestNewFetcherRequiresClientID(t *testing.T) {
	cfg := testConfig()
	cfg.ClientID = ""
	if _, err := NewMovies(cfg, nil); err == nil {
		t.Error("expected error without a client id")
	}

	cfg.ClientID = "abc"
	f, err := NewShows(cfg, nil)
	if err != nil {
		t.Fatalf("NewShows: %v", err)
	}
	if f.Key() != "shows" {
		t.Errorf("got key %q", f.Key())
	}
	if !f.Mandatory() {
		t.Error("trakt sources are mandatory")
	}
}
