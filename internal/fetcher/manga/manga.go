// Package manga fetches the manga section from the MangaDex API: the
// account's follows partitioned by reading status, plus a public favourites
// list. Auth is an OAuth password grant against the MangaDex realm.
package manga

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/fetcher"
	"github.com/kulugary/mediahub/internal/httpx"
	"github.com/kulugary/mediahub/internal/logger"
)

const (
	apiBase   = "https://api.mangadex.org"
	uploadsCD = "https://uploads.mangadex.org"
	authURL   = "https://auth.mangadex.org/realms/mangadex/protocol/openid-connect/token"

	followsPageSize = 100
	detailBatchSize = 32
)

// statusBuckets is the fixed MangaDex reading-status set; "favourite" is
// filled from the public list instead of the status map.
var statusBuckets = []string{
	"reading", "on_hold", "plan_to_read", "dropped", "re_reading", "completed",
}

// Fetcher retrieves and normalizes the manga collection.
type Fetcher struct {
	client  *httpx.Client
	dl      *assets.Downloader
	grant   httpx.PasswordGrant
	listID  string
	ttl     time.Duration
	workers int
}

// New builds the manga fetcher.
func New(cfg *config.MangaConfig, client *httpx.Client, dl *assets.Downloader, workers int) *Fetcher {
	return &Fetcher{
		client: client,
		dl:     dl,
		grant: httpx.PasswordGrant{
			Username:     cfg.Username,
			Password:     cfg.Password,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		},
		listID:  cfg.ListID,
		ttl:     config.TTL(cfg.TTLDays),
		workers: workers,
	}
}

func (f *Fetcher) Key() string        { return "manga" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return true }

type idList struct {
	Data  []relationship `json:"data"`
	Total int            `json:"total"`
}

type statusResponse struct {
	Statuses map[string]string `json:"statuses"`
}

type listResponse struct {
	Data struct {
		Relationships []relationship `json:"relationships"`
	} `json:"data"`
}

type detailResponse struct {
	Data []mangaRecord `json:"data"`
}

// Fetch authenticates, lists follows and favourites, enriches both with
// full manga records in bounded batches, and assembles the per-status
// collection. Auth failure is fatal for this source.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	token, err := f.client.PasswordToken(ctx, authURL, f.grant)
	if err != nil {
		return nil, fmt.Errorf("MangaDex authentication failed: %w", err)
	}
	headers := httpx.BearerHeaders(token)

	followIDs, err := f.fetchFollowIDs(ctx, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to list follows: %w", err)
	}

	var statuses statusResponse
	if err := f.client.GetJSON(ctx, apiBase+"/manga/status", headers, &statuses); err != nil {
		return nil, fmt.Errorf("failed to fetch reading statuses: %w", err)
	}

	favouriteIDs := f.fetchFavouriteIDs(ctx, log)

	follows := f.fetchDetails(ctx, log, followIDs, headers)
	favourites := f.fetchDetails(ctx, log, favouriteIDs, nil)

	collection := domain.Collection{"favourite": {}}
	for _, bucket := range statusBuckets {
		collection[bucket] = []domain.MediaItem{}
	}

	for _, record := range follows {
		status, ok := statuses.Statuses[record.ID]
		if !ok {
			continue
		}
		if _, known := collection[status]; !known {
			log.WithField("status", status).Debug("Skipping manga with unknown reading status")
			continue
		}
		collection[status] = append(collection[status], f.normalizeAndPersist(ctx, record))
	}
	for _, record := range favourites {
		collection["favourite"] = append(collection["favourite"], f.normalizeAndPersist(ctx, record))
	}

	return collection, nil
}

func (f *Fetcher) fetchFollowIDs(ctx context.Context, headers map[string]string) ([]string, error) {
	refs, err := httpx.Paged(ctx, followsPageSize, func(ctx context.Context, offset, limit int) (httpx.Page[relationship], error) {
		var page idList
		url := fmt.Sprintf("%s/user/follows/manga?limit=%d&offset=%d", apiBase, limit, offset)
		if err := f.client.GetJSON(ctx, url, headers, &page); err != nil {
			return httpx.Page[relationship]{}, err
		}
		return httpx.Page[relationship]{Items: page.Data, Total: page.Total}, nil
	})
	if err != nil {
		return nil, err
	}
	return mangaIDs(refs), nil
}

// fetchFavouriteIDs reads the public favourites list. The list is public;
// a failure degrades to an empty favourite bucket instead of aborting.
func (f *Fetcher) fetchFavouriteIDs(ctx context.Context, log *logger.Logger) []string {
	var list listResponse
	if err := f.client.GetJSON(ctx, apiBase+"/list/"+f.listID, nil, &list); err != nil {
		log.WithError(err).Error("Favourites list fetch failed, leaving bucket empty")
		return nil
	}
	return mangaIDs(list.Data.Relationships)
}

// fetchDetails resolves ids into full manga records, batched at the API's
// per-request cap with bounded concurrency across batches. A failed batch
// only loses its own records.
func (f *Fetcher) fetchDetails(ctx context.Context, log *logger.Logger, ids []string, headers map[string]string) []mangaRecord {
	batches := chunk(ids, detailBatchSize)
	results := make([][]mangaRecord, len(batches))

	type indexed struct {
		i   int
		ids []string
	}
	work := make([]indexed, len(batches))
	for i, b := range batches {
		work[i] = indexed{i: i, ids: b}
	}

	errs := fetcher.EnrichAll(ctx, f.workers, work, func(ctx context.Context, _ int, w *indexed) error {
		var detail detailResponse
		if err := f.client.GetJSON(ctx, f.detailURL(w.ids), headers, &detail); err != nil {
			return err
		}
		results[w.i] = detail.Data
		return nil
	})
	for i, err := range errs {
		if err != nil {
			log.WithError(err).WithField("batch", i).Debug("Manga detail batch failed")
		}
	}

	var records []mangaRecord
	for _, batch := range results {
		records = append(records, batch...)
	}
	return records
}

func (f *Fetcher) detailURL(ids []string) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", detailBatchSize))
	q.Add("includes[]", "cover_art")
	q.Add("includes[]", "author")
	q.Add("includes[]", "artist")
	for _, rating := range []string{"safe", "suggestive", "erotica"} {
		q.Add("contentRating[]", rating)
	}
	for _, id := range ids {
		q.Add("ids[]", id)
	}
	return apiBase + "/manga?" + q.Encode()
}

func (f *Fetcher) normalizeAndPersist(ctx context.Context, record mangaRecord) domain.MediaItem {
	item := normalizeManga(record)
	if item.Thumbnail != "" {
		key := "manga/" + item.Thumbnail[strings.LastIndex(item.Thumbnail, "/")+1:]
		item.Thumbnail = f.dl.PersistOrKeep(ctx, item.Thumbnail, key)
	}
	return item
}

func mangaIDs(refs []relationship) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Type == "manga" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
