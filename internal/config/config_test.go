package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTTL(t *testing.T) {
	if got := TTL(0); got != 24*time.Hour {
		t.Errorf("TTL(0) = %v, want one day", got)
	}
	if got := TTL(-3); got != 24*time.Hour {
		t.Errorf("TTL(-3) = %v, want one day", got)
	}
	if got := TTL(7); got != 7*24*time.Hour {
		t.Errorf("TTL(7) = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Fetch.Workers != 5 {
		t.Errorf("got workers %d, want 5", cfg.Fetch.Workers)
	}
	if !cfg.Fetch.UseCache {
		t.Error("cache should default on")
	}
	if cfg.Sources.Games.User != "KuluGary" {
		t.Errorf("got games user %q", cfg.Sources.Games.User)
	}
	if cfg.Sources.Games.TTLDays != 7 {
		t.Errorf("got games ttl %d days", cfg.Sources.Games.TTLDays)
	}
	if cfg.Sources.Status.UseCache {
		t.Error("status source should default to cache off")
	}
	if !cfg.Sources.Trakt.UseCache {
		t.Error("trakt should default to cache on")
	}
	if cfg.Sources.Webmentions.PerPage != 1000 {
		t.Errorf("got per_page %d", cfg.Sources.Webmentions.PerPage)
	}
	if cfg.Assets.Backend != "local" {
		t.Errorf("got backend %q", cfg.Assets.Backend)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
fetch:
  workers: 2
sources:
  games:
    enabled: false
  webcomics:
    feeds:
      - bucket: reading
        url: https://example.com/feed
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fetch.Workers != 2 {
		t.Errorf("got workers %d, want 2", cfg.Fetch.Workers)
	}
	if cfg.Sources.Games.Enabled {
		t.Error("games should be disabled by the file")
	}
	if len(cfg.Sources.Webcomics.Feeds) != 1 || cfg.Sources.Webcomics.Feeds[0].Bucket != "reading" {
		t.Errorf("got feeds %+v", cfg.Sources.Webcomics.Feeds)
	}
	// Untouched defaults survive.
	if cfg.Sources.Trakt.User != "kulugary" {
		t.Errorf("got trakt user %q", cfg.Sources.Trakt.User)
	}
}

func TestLoadBindsCredentialEnv(t *testing.T) {
	t.Setenv("TRAKT_CLIENT_ID", "from-env")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sources.Trakt.ClientID != "from-env" {
		t.Errorf("got client id %q", cfg.Sources.Trakt.ClientID)
	}
	if cfg.Sources.Videos.APIKey != "yt-key" {
		t.Errorf("got api key %q", cfg.Sources.Videos.APIKey)
	}
}
