package assets

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes images into the static site's asset tree.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates a LocalStore rooted at dir. publicPrefix is the
// site-relative path the generator serves dir under.
func NewLocalStore(dir, publicPrefix string) *LocalStore {
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}
}

func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStore) Save(_ context.Context, key string, data []byte, _ string) error {
	dest := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return path.Join(s.publicPrefix, key)
}
