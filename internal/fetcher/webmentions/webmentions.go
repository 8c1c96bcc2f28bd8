// Package webmentions pulls received mentions from the webmention.io API.
// The jf2 payload is loosely typed, so fields are extracted path-wise
// instead of unmarshalled into structs.
package webmentions

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/logger"
	"github.com/kulugary/mediahub/internal/normalize"
)

const apiURL = "https://webmention.io/api/mentions.jf2"

// properties is the fixed wm-property vocabulary. Every bucket exists in
// the output even when empty so templates never branch on presence.
var properties = []string{"in-reply-to", "like-of", "repost-of", "mention-of", "bookmark-of"}

type httpGetter interface {
	GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Fetcher retrieves and normalizes received webmentions.
type Fetcher struct {
	client  httpGetter
	token   string
	perPage int
	ttl     time.Duration
}

// New builds the webmentions fetcher.
func New(cfg *config.WebmentionsConfig, client httpGetter) *Fetcher {
	return &Fetcher{
		client:  client,
		token:   cfg.Token,
		perPage: cfg.PerPage,
		ttl:     config.TTL(cfg.TTLDays),
	}
}

func (f *Fetcher) Key() string        { return "webmentions" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return true }

// Fetch downloads every received mention in one page and groups them by
// wm-property. Children with an unknown property are dropped with a log.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	url := fmt.Sprintf("%s?token=%s&per-page=%d", apiURL, f.token, f.perPage)
	body, err := f.client.GetBytes(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentions: %w", err)
	}

	collection := domain.Collection{}
	for _, p := range properties {
		collection[p] = []domain.MediaItem{}
	}

	for _, child := range gjson.GetBytes(body, "children").Array() {
		property := child.Get("wm-property").String()
		if _, known := collection[property]; !known {
			log.WithField("property", property).Debug("Skipping mention with unknown property")
			continue
		}
		collection[property] = append(collection[property], normalizeMention(child))
	}
	return collection, nil
}

func normalizeMention(child gjson.Result) domain.MediaItem {
	item := domain.MediaItem{
		ID:      child.Get("wm-id").String(),
		Type:    domain.TypeWebmentions,
		Title:   child.Get("name").String(),
		Genres:  []string{},
		Link:    child.Get("url").String(),
		AddedAt: normalize.ParseTime(child.Get("published").String()),
	}
	if html := child.Get("content.html").String(); html != "" {
		item.Description = normalize.SanitizeHTML(html)
	} else {
		item.Description = child.Get("content.text").String()
	}
	if name := child.Get("author.name").String(); name != "" {
		item.Author = &domain.Author{
			Name: name,
			Link: child.Get("author.url").String(),
		}
		item.Thumbnail = child.Get("author.photo").String()
	}
	if target := child.Get("wm-target").String(); target != "" {
		item.Tags = []string{target}
	}
	return item
}
