// Package videos fetches playlists from the YouTube Data API. Listing uses
// token pagination; stats and tags come from a second per-video call run
// through the bounded enrichment pool.
package videos

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/fetcher"
	"github.com/kulugary/mediahub/internal/httpx"
	"github.com/kulugary/mediahub/internal/logger"
)

const (
	apiBase      = "https://www.googleapis.com/youtube/v3"
	listPageSize = 50
)

// Fetcher retrieves and normalizes the videos collection.
type Fetcher struct {
	client    *httpx.Client
	dl        *assets.Downloader
	apiKey    string
	playlists map[string]string
	ttl       time.Duration
	workers   int
}

// New builds the videos fetcher.
func New(cfg *config.VideosConfig, client *httpx.Client, dl *assets.Downloader, workers int) *Fetcher {
	return &Fetcher{
		client:    client,
		dl:        dl,
		apiKey:    cfg.APIKey,
		playlists: cfg.Playlists,
		ttl:       config.TTL(cfg.TTLDays),
		workers:   workers,
	}
}

func (f *Fetcher) Key() string        { return "videos" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return true }

type playlistPage struct {
	Items         []playlistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

type videoDetailPage struct {
	Items []videoDetail `json:"items"`
}

// Fetch lists every configured playlist and enriches each video with
// duration, view and like counts. A failed playlist is logged and left
// empty; a failed enrichment keeps the listing-level fields.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	collection := domain.Collection{}
	for _, bucket := range sortedBuckets(f.playlists) {
		playlistID := f.playlists[bucket]
		blog := log.WithField(logger.FieldBucket, bucket)
		blog.Info("Fetching playlist")

		entries, err := f.fetchPlaylist(ctx, playlistID)
		if err != nil {
			blog.WithError(err).Error("Playlist fetch failed, leaving bucket empty")
			collection[bucket] = []domain.MediaItem{}
			continue
		}

		items := make([]domain.MediaItem, len(entries))
		for i, entry := range entries {
			items[i] = normalizeListing(entry)
		}

		errs := fetcher.EnrichAll(ctx, f.workers, items, func(ctx context.Context, i int, item *domain.MediaItem) error {
			detail, err := f.fetchDetail(ctx, item.ID)
			if err != nil {
				return err
			}
			applyDetail(item, detail)
			return nil
		})
		for i, err := range errs {
			if err != nil {
				blog.WithError(err).WithField(logger.FieldItem, items[i].ID).Debug("Video detail fetch failed")
			}
		}

		for i := range items {
			if items[i].Thumbnail != "" {
				items[i].Thumbnail = f.dl.PersistOrKeep(ctx, items[i].Thumbnail, "videos/"+items[i].ID+".jpg")
			}
		}
		collection[bucket] = items
	}
	return collection, nil
}

// fetchPlaylist walks the playlistItems endpoint until the page token runs
// out.
func (f *Fetcher) fetchPlaylist(ctx context.Context, playlistID string) ([]playlistItem, error) {
	var all []playlistItem
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("part", "snippet,contentDetails")
		q.Set("playlistId", playlistID)
		q.Set("maxResults", fmt.Sprintf("%d", listPageSize))
		q.Set("key", f.apiKey)
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page playlistPage
		if err := f.client.GetJSON(ctx, apiBase+"/playlistItems?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

func (f *Fetcher) fetchDetail(ctx context.Context, videoID string) (videoDetail, error) {
	q := url.Values{}
	q.Set("part", "contentDetails,snippet,statistics")
	q.Set("id", videoID)
	q.Set("key", f.apiKey)

	var page videoDetailPage
	if err := f.client.GetJSON(ctx, apiBase+"/videos?"+q.Encode(), nil, &page); err != nil {
		return videoDetail{}, err
	}
	if len(page.Items) == 0 {
		return videoDetail{}, fmt.Errorf("video %s not found", videoID)
	}
	return page.Items[0], nil
}

func sortedBuckets(playlists map[string]string) []string {
	buckets := make([]string, 0, len(playlists))
	for b := range playlists {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	return buckets
}
