package assets

import (
	"context"
	"testing"
)

func TestLocalStoreRoundtrip(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/assets/images/covers")
	ctx := context.Background()

	exists, err := store.Exists(ctx, "games/celeste.jpg")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("fresh store should be empty")
	}

	if err := store.Save(ctx, "games/celeste.jpg", []byte("jpeg bytes"), "image/jpeg"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exists, err = store.Exists(ctx, "games/celeste.jpg")
	if err != nil {
		t.Fatalf("Exists after Save: %v", err)
	}
	if !exists {
		t.Error("saved key should exist")
	}

	if got := store.URL("games/celeste.jpg"); got != "/assets/images/covers/games/celeste.jpg" {
		t.Errorf("got URL %q", got)
	}
}
