// Package music fetches playlists from the Spotify Web API using the
// client-credentials flow. Each configured playlist becomes one bucket.
package music

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/httpx"
	"github.com/kulugary/mediahub/internal/logger"
)

const (
	apiBase  = "https://api.spotify.com/v1"
	tokenURL = "https://accounts.spotify.com/api/token"

	tracksPageSize = 100
)

// Fetcher retrieves and normalizes the music collection.
type Fetcher struct {
	client       *httpx.Client
	dl           *assets.Downloader
	clientID     string
	clientSecret string
	playlists    map[string]string
	ttl          time.Duration
}

// New builds the music fetcher.
func New(cfg *config.MusicConfig, client *httpx.Client, dl *assets.Downloader) *Fetcher {
	return &Fetcher{
		client:       client,
		dl:           dl,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		playlists:    cfg.Playlists,
		ttl:          config.TTL(cfg.TTLDays),
	}
}

func (f *Fetcher) Key() string        { return "music" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return true }

type tracksPage struct {
	Items []playlistTrack `json:"items"`
	Total int             `json:"total"`
}

// Fetch exchanges app credentials for a token and pages through every
// configured playlist. A failed playlist is logged and left empty.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	token, err := f.client.ClientCredentialsToken(ctx, tokenURL, f.clientID, f.clientSecret)
	if err != nil {
		return nil, fmt.Errorf("Spotify authentication failed: %w", err)
	}
	headers := httpx.BearerHeaders(token)

	collection := domain.Collection{}
	for _, bucket := range sortedBuckets(f.playlists) {
		playlistID := f.playlists[bucket]
		blog := log.WithField(logger.FieldBucket, bucket)
		blog.Info("Fetching playlist")

		tracks, err := f.fetchTracks(ctx, headers, playlistID)
		if err != nil {
			blog.WithError(err).Error("Playlist fetch failed, leaving bucket empty")
			collection[bucket] = []domain.MediaItem{}
			continue
		}

		items := make([]domain.MediaItem, 0, len(tracks))
		for _, t := range tracks {
			item := normalizeTrack(t)
			if item.Thumbnail != "" {
				item.Thumbnail = f.dl.PersistOrKeep(ctx, item.Thumbnail, "music/"+item.ID+".jpg")
			}
			items = append(items, item)
		}
		collection[bucket] = items
	}
	return collection, nil
}

func (f *Fetcher) fetchTracks(ctx context.Context, headers map[string]string, playlistID string) ([]playlistTrack, error) {
	return httpx.Paged(ctx, tracksPageSize, func(ctx context.Context, offset, limit int) (httpx.Page[playlistTrack], error) {
		var page tracksPage
		url := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d&offset=%d", apiBase, playlistID, limit, offset)
		if err := f.client.GetJSON(ctx, url, headers, &page); err != nil {
			return httpx.Page[playlistTrack]{}, err
		}
		return httpx.Page[playlistTrack]{Items: page.Items, Total: page.Total}, nil
	})
}

// sortedBuckets keeps bucket iteration stable across runs so logs and
// debug dumps diff cleanly.
func sortedBuckets(playlists map[string]string) []string {
	buckets := make([]string, 0, len(playlists))
	for b := range playlists {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	return buckets
}
