package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kulugary/mediahub/internal/logger"
	_ "golang.org/x/image/webp"
)

// Downloader fetches remote images and persists them through a Store.
type Downloader struct {
	rest  *resty.Client
	store Store
	log   *logger.Logger
}

// NewDownloader creates a Downloader writing into store.
func NewDownloader(store Store, log *logger.Logger) *Downloader {
	if log == nil {
		log = logger.Default()
	}
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	return &Downloader{rest: client, store: store, log: log}
}

// Persist downloads remoteURL and stores it under key, returning the
// reference to write into the item's thumbnail field. It is idempotent: an
// already-persisted key short-circuits before any network call. Bodies that
// do not decode as an image are rejected so a CDN error page never becomes
// a cover.
func (d *Downloader) Persist(ctx context.Context, remoteURL, key string) (string, error) {
	if remoteURL == "" || key == "" {
		return "", fmt.Errorf("persist needs a remote URL and a destination key")
	}

	exists, err := d.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check asset %s: %w", key, err)
	}
	if exists {
		return d.store.URL(key), nil
	}

	resp, err := d.rest.R().SetContext(ctx).Get(remoteURL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", remoteURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to download %s: HTTP %d", remoteURL, resp.StatusCode())
	}

	data := resp.Body()
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("response from %s is not a decodable image: %w", remoteURL, err)
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeForKey(key)
	}
	if err := d.store.Save(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return d.store.URL(key), nil
}

// PersistOrKeep is the swallow-and-continue variant used by fetchers: on any
// failure the item keeps its remote thumbnail and the event is logged.
func (d *Downloader) PersistOrKeep(ctx context.Context, remoteURL, key string) string {
	if remoteURL == "" {
		return ""
	}
	local, err := d.Persist(ctx, remoteURL, key)
	if err != nil {
		d.log.WithError(err).WithField("url", remoteURL).Debug("Cover download failed, keeping remote reference")
		return remoteURL
	}
	return local
}

func contentTypeForKey(key string) string {
	switch {
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".gif"):
		return "image/gif"
	case strings.HasSuffix(key, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
