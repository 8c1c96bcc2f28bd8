// Package trakt fetches the movies and shows sections from the Trakt.tv
// API. Auth is a static client id sent as the trakt-api-key header; this is
// the one source whose credential is mandatory for the build.
package trakt

import (
	"context"
	"fmt"
	"time"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/httpx"
	"github.com/kulugary/mediahub/internal/logger"
)

const apiBase = "https://api.trakt.tv"

// bucketEndpoint is one (bucket, path) listing target, resolved once at
// construction.
type bucketEndpoint struct {
	bucket string
	path   string
}

// Fetcher retrieves one media kind (movies or shows) from Trakt.
type Fetcher struct {
	client   *httpx.Client
	kind     domain.MediaType
	clientID string
	buckets  []bucketEndpoint
	ttl      time.Duration
	useCache bool
}

// NewMovies builds the movies fetcher. A missing client id fails fast: the
// build should halt with a message naming the credential rather than
// produce an empty section.
func NewMovies(cfg *config.TraktConfig, client *httpx.Client) (*Fetcher, error) {
	return newFetcher(cfg, client, domain.TypeMovies, "movies")
}

// NewShows builds the shows fetcher.
func NewShows(cfg *config.TraktConfig, client *httpx.Client) (*Fetcher, error) {
	return newFetcher(cfg, client, domain.TypeShows, "shows")
}

func newFetcher(cfg *config.TraktConfig, client *httpx.Client, kind domain.MediaType, segment string) (*Fetcher, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("missing TRAKT_CLIENT_ID env variable; get one at https://trakt.tv/oauth/applications")
	}
	return &Fetcher{
		client:   client,
		kind:     kind,
		clientID: cfg.ClientID,
		buckets: []bucketEndpoint{
			{bucket: "favourites", path: fmt.Sprintf("users/%s/favorites/%s?extended=full", cfg.User, segment)},
			{bucket: "watchlist", path: fmt.Sprintf("users/%s/watchlist/%s?extended=full", cfg.User, segment)},
		},
		ttl:      config.TTL(cfg.TTLDays),
		useCache: cfg.UseCache,
	}, nil
}

func (f *Fetcher) Key() string        { return string(f.kind) }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return f.useCache }

// Mandatory marks Trakt as build-fatal on auth failure.
func (f *Fetcher) Mandatory() bool { return true }

func (f *Fetcher) headers() map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		"trakt-api-version": "2",
		"trakt-api-key":     f.clientID,
	}
}

// Fetch retrieves every bucket. A failed bucket is logged and yields an
// empty list; it never blocks its sibling.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	collection := domain.Collection{}
	for _, be := range f.buckets {
		blog := log.WithField(logger.FieldBucket, be.bucket)
		blog.Info("Fetching bucket")

		var items []listItem
		url := fmt.Sprintf("%s/%s", apiBase, be.path)
		if err := f.client.GetJSON(ctx, url, f.headers(), &items); err != nil {
			blog.WithError(err).Error("Bucket listing failed, leaving it empty")
			collection[be.bucket] = []domain.MediaItem{}
			continue
		}

		normalized := make([]domain.MediaItem, 0, len(items))
		for _, item := range items {
			normalized = append(normalized, normalizeItem(item, f.kind))
		}
		collection[be.bucket] = normalized
	}
	return collection, nil
}
