package games

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/config"
)

// fakeBrowser serves canned HTML instead of driving Chrome.
type fakeBrowser struct {
	shelfHTML   string
	profileHTML string
	profileErr  error
	navigated   []string
	tabsOpened  []string
}

func (b *fakeBrowser) Navigate(url, _ string) error {
	b.navigated = append(b.navigated, url)
	return nil
}

func (b *fakeBrowser) Click(string) error { return nil }
func (b *fakeBrowser) Press(string) error { return nil }

func (b *fakeBrowser) OuterHTML(string) (string, error) { return b.shelfHTML, nil }

func (b *fakeBrowser) TabHTML(url, _, _, _ string) (string, error) {
	b.tabsOpened = append(b.tabsOpened, url)
	if b.profileErr != nil {
		return "", b.profileErr
	}
	return b.profileHTML, nil
}

func TestFetchScrapesEveryShelf(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	img := buf.Bytes()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer server.Close()

	shelf := fmt.Sprintf(`
<div id="user_games"><div><div><div>
  <div class="header">Shelf</div>
  <div>
    <img src="%s/celeste.png">
    <a href="/game/42301">Celeste</a>
    <span>Nintendo Switch</span>
  </div>
</div></div></div></div>`, server.URL)

	session := &fakeBrowser{
		shelfHTML: shelf,
		profileHTML: `<body>
  <div class="GameSummary_profile_info__x">A tough platformer.</div>
  <div><strong>Genres:</strong><br>Platform, Adventure</div>
</body>`,
	}

	store := assets.NewLocalStore(t.TempDir(), "/assets/images/covers")
	dl := assets.NewDownloader(store, nil)
	f := New(&config.GamesConfig{User: "KuluGary", TTLDays: 7, UseCache: true}, session, dl, 2)

	collection, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	for _, bucket := range libraryBuckets {
		items, ok := collection[bucket]
		if !ok {
			t.Fatalf("bucket %q missing", bucket)
		}
		if len(items) != 1 {
			t.Fatalf("bucket %q: got %d items, want 1", bucket, len(items))
		}
	}

	item := collection["playing"][0]
	if item.ID != "42301" {
		t.Errorf("got id %q", item.ID)
	}
	if item.Description != "A tough platformer." {
		t.Errorf("got description %q", item.Description)
	}
	if len(item.Genres) != 2 {
		t.Errorf("got genres %v", item.Genres)
	}
	if !strings.HasPrefix(item.Thumbnail, "/assets/images/covers/games/") {
		t.Errorf("got thumbnail %q, want a persisted local path", item.Thumbnail)
	}

	if len(session.navigated) != len(libraryBuckets) {
		t.Errorf("got %d shelf navigations, want %d", len(session.navigated), len(libraryBuckets))
	}
	if !strings.Contains(session.navigated[0], "/user/KuluGary/games/playing/1") {
		t.Errorf("got first navigation %q", session.navigated[0])
	}
}

func TestAssetFileNameStripsQueryAndFragment(t *testing.T) {
	cases := []struct {
		remote, want string
	}{
		{"https://howlongtobeat.com/games/cover.jpg", "cover.jpg"},
		{"https://howlongtobeat.com/games/cover.jpg?v=2", "cover.jpg"},
		{"https://howlongtobeat.com/games/cover.jpg?width=200&v=2", "cover.jpg"},
		{"https://howlongtobeat.com/games/cover.jpg#section", "cover.jpg"},
	}
	for _, tc := range cases {
		if got := assetFileName(tc.remote); got != tc.want {
			t.Errorf("assetFileName(%q) = %q, want %q", tc.remote, got, tc.want)
		}
	}
}

func TestFetchKeepsListingWhenProfileFails(t *testing.T) {
	session := &fakeBrowser{
		shelfHTML: `
<div id="user_games"><div><div><div>
  <div class="header">Shelf</div>
  <div><a href="/game/58221">Hades</a><span>PC</span></div>
</div></div></div></div>`,
		profileErr: fmt.Errorf("tab timed out"),
	}

	store := assets.NewLocalStore(t.TempDir(), "/covers")
	dl := assets.NewDownloader(store, nil)
	f := New(&config.GamesConfig{User: "KuluGary"}, session, dl, 2)

	collection, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	item := collection["backlog"][0]
	if item.Title != "Hades" {
		t.Errorf("got title %q", item.Title)
	}
	if item.Description != "" {
		t.Errorf("got description %q, want none after profile failure", item.Description)
	}
	if item.Platform != "PC" {
		t.Errorf("got platform %q", item.Platform)
	}
}
