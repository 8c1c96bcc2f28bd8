// Package webcomics follows comic RSS feeds. Each feed contributes one
// item per bucket, described by its latest published entry; feeds with poor
// metadata are patched from a static override table.
package webcomics

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/logger"
)

// Fetcher retrieves and normalizes the webcomics collection.
type Fetcher struct {
	parser    *gofeed.Parser
	feeds     []config.WebcomicFeed
	overrides map[string]config.WebcomicOverride
	ttl       time.Duration
	useCache  bool
}

// New builds the webcomics fetcher. Configured feeds and overrides replace
// the built-in set wholesale when present.
func New(cfg *config.WebcomicsConfig) *Fetcher {
	feeds := cfg.Feeds
	if len(feeds) == 0 {
		feeds = defaultFeeds
	}
	overrides := cfg.Overrides
	if len(overrides) == 0 {
		overrides = defaultOverrides
	}
	return &Fetcher{
		parser:    gofeed.NewParser(),
		feeds:     feeds,
		overrides: overrides,
		ttl:       config.TTL(cfg.TTLDays),
		useCache:  cfg.UseCache,
	}
}

func (f *Fetcher) Key() string        { return "webcomics" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return f.useCache }

// Fetch parses every feed sequentially. An unreachable or empty feed is
// skipped with a debug log; the bucket keeps its other comics.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	collection := domain.Collection{}
	for _, target := range f.feeds {
		if _, ok := collection[target.Bucket]; !ok {
			collection[target.Bucket] = []domain.MediaItem{}
		}

		feed, err := f.parser.ParseURLWithContext(target.URL, ctx)
		if err != nil {
			log.WithError(err).WithField(logger.FieldLink, target.URL).Debug("Feed parse failed, skipping")
			continue
		}
		if len(feed.Items) == 0 {
			log.WithField(logger.FieldLink, target.URL).Debug("Feed has no entries, skipping")
			continue
		}

		item := normalizeFeed(feed)
		applyOverride(&item, f.overrides[target.URL])
		collection[target.Bucket] = append(collection[target.Bucket], item)
	}
	return collection, nil
}
