// Package status follows the status.cafe Atom feed. Entries change often,
// so this source defaults to bypassing the cache.
package status

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// Fetcher retrieves and normalizes the status feed.
type Fetcher struct {
	parser   *gofeed.Parser
	feedURL  string
	ttl      time.Duration
	useCache bool
}

// New builds the status fetcher.
func New(cfg *config.StatusConfig) *Fetcher {
	return &Fetcher{
		parser:   gofeed.NewParser(),
		feedURL:  cfg.FeedURL,
		ttl:      config.TTL(cfg.TTLDays),
		useCache: cfg.UseCache,
	}
}

func (f *Fetcher) Key() string        { return "status" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return f.useCache }

// Fetch parses the Atom feed into a single "entries" bucket, newest first
// as published.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.MediaItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		entries = append(entries, normalizeEntry(entry))
	}
	return domain.Collection{"entries": entries}, nil
}

func normalizeEntry(entry *gofeed.Item) domain.MediaItem {
	item := domain.MediaItem{
		ID:          entry.GUID,
		Type:        domain.TypeStatus,
		Title:       entry.Title,
		Description: normalize.SanitizeHTML(entry.Content),
		Genres:      []string{},
		Link:        entry.Link,
		Tags:        extractEmoji(entry.Title),
	}
	if item.ID == "" {
		item.ID = entry.Link
	}
	published := entry.PublishedParsed
	if published == nil {
		published = entry.UpdatedParsed
	}
	if published != nil {
		t := published.UTC()
		item.AddedAt = &t
	}
	return item
}

// extractEmoji pulls the pictographic clusters out of a status title.
// Titles on status.cafe lead with the author's mood emoji. Joined sequences
// stay whole: a zero-width joiner, variation selector or skin-tone modifier
// extends the current cluster instead of starting a new one.
func extractEmoji(title string) []string {
	const (
		zwj  = 0x200D
		vs16 = 0xFE0F
	)
	var (
		emoji   []string
		cluster []rune
		joined  bool
	)
	flush := func() {
		if len(cluster) > 0 {
			emoji = append(emoji, string(cluster))
			cluster = cluster[:0]
		}
	}
	for _, r := range title {
		switch {
		case r == zwj && len(cluster) > 0:
			cluster = append(cluster, r)
			joined = true
		case (r == vs16 || (r >= 0x1F3FB && r <= 0x1F3FF)) && len(cluster) > 0:
			cluster = append(cluster, r)
		case isEmojiRune(r):
			if !joined {
				flush()
			}
			cluster = append(cluster, r)
			joined = false
		default:
			flush()
			joined = false
		}
	}
	flush()
	return emoji
}

// isEmojiRune covers the SMP emoji blocks plus the BMP symbol blocks that
// hold the classic single-codepoint pictographs (☕, ☀, ✨).
func isEmojiRune(r rune) bool {
	return (r >= 0x1F000 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF)
}
