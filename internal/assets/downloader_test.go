package assets

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memStore) Save(_ context.Context, key string, data []byte, _ string) error {
	m.objects[key] = data
	return nil
}

func (m *memStore) URL(key string) string { return "/covers/" + key }

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestPersistDownloadsOnce(t *testing.T) {
	img := tinyPNG(t)
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer server.Close()

	store := newMemStore()
	dl := NewDownloader(store, nil)

	first, err := dl.Persist(context.Background(), server.URL+"/cover.png", "games/cover.png")
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if first != "/covers/games/cover.png" {
		t.Errorf("got %q, want store URL", first)
	}

	second, err := dl.Persist(context.Background(), server.URL+"/cover.png", "games/cover.png")
	if err != nil {
		t.Fatalf("Persist (repeat): %v", err)
	}
	if second != first {
		t.Errorf("repeat returned %q, want %q", second, first)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("got %d downloads, want 1: existing keys must short-circuit", got)
	}
}

func TestPersistRejectsNonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>503 from the CDN</html>"))
	}))
	defer server.Close()

	store := newMemStore()
	dl := NewDownloader(store, nil)

	if _, err := dl.Persist(context.Background(), server.URL, "manga/cover.jpg"); err == nil {
		t.Fatal("expected error for non-image body")
	}
	if len(store.objects) != 0 {
		t.Error("nothing should have been stored")
	}
}

func TestPersistOrKeepFallsBackToRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dl := NewDownloader(newMemStore(), nil)

	remote := server.URL + "/missing.jpg"
	if got := dl.PersistOrKeep(context.Background(), remote, "music/missing.jpg"); got != remote {
		t.Errorf("got %q, want the remote URL kept", got)
	}
	if got := dl.PersistOrKeep(context.Background(), "", "music/empty.jpg"); got != "" {
		t.Errorf("empty remote should stay empty, got %q", got)
	}
}
