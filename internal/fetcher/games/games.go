// Package games scrapes the HowLongToBeat user library. HLTB has no public
// API, so listing pages render in a headless browser and the resulting DOM
// is parsed offline; per-game profile pages add description and genres.
package games

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/browser"
	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/fetcher"
	"github.com/kulugary/mediahub/internal/logger"
)

const siteBase = "https://howlongtobeat.com"

const (
	selCookieAccept = "#onetrust-accept-btn-handler"
	selViewOptions  = "[aria-label='View Options']"
	selGameList     = "#user_games"
	selProfileInfo  = "div[class^='GameSummary_profile_info']"
	selReadMore     = "#profile_summary_more"
)

// libraryBuckets lists the HLTB shelf pages in render order.
var libraryBuckets = []string{"playing", "backlog", "custom", "completed", "retired"}

// Browser is the slice of the session the scraper drives.
type Browser interface {
	Navigate(url, waitSelector string) error
	Click(selector string) error
	Press(key string) error
	OuterHTML(selector string) (string, error)
	TabHTML(url, waitSelector, clickSelector, htmlSelector string) (string, error)
}

// Fetcher retrieves and normalizes the games collection.
type Fetcher struct {
	session  Browser
	dl       *assets.Downloader
	user     string
	ttl      time.Duration
	useCache bool
	workers  int

	accepted bool // cookie banner handled once per session
}

// New builds the games fetcher on top of a running browser session.
func New(cfg *config.GamesConfig, session Browser, dl *assets.Downloader, workers int) *Fetcher {
	return &Fetcher{
		session:  session,
		dl:       dl,
		user:     cfg.User,
		ttl:      config.TTL(cfg.TTLDays),
		useCache: cfg.UseCache,
		workers:  workers,
	}
}

func (f *Fetcher) Key() string        { return "games" }
func (f *Fetcher) TTL() time.Duration { return f.ttl }
func (f *Fetcher) CacheEnabled() bool { return f.useCache }

// Fetch scrapes every shelf page. A failed shelf is logged and left empty;
// a failed profile enrichment keeps the listing-level fields.
func (f *Fetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	log := logger.FromContext(ctx)

	collection := domain.Collection{}
	for _, bucket := range libraryBuckets {
		blog := log.WithField(logger.FieldBucket, bucket)
		blog.Info("Scraping shelf")

		url := fmt.Sprintf("%s/user/%s/games/%s/1", siteBase, f.user, bucket)
		listings, err := f.scrapeShelf(url)
		if err != nil {
			blog.WithError(err).Error("Shelf scrape failed, leaving bucket empty")
			collection[bucket] = []domain.MediaItem{}
			continue
		}

		items := make([]domain.MediaItem, len(listings))
		for i, l := range listings {
			items[i] = normalizeListing(l)
		}

		errs := fetcher.EnrichAll(ctx, f.workers, items, func(ctx context.Context, i int, item *domain.MediaItem) error {
			return f.enrichFromProfile(item)
		})
		for i, err := range errs {
			if err != nil {
				blog.WithError(err).WithField(logger.FieldItem, items[i].Title).Debug("Profile scrape failed")
			}
		}

		for i := range items {
			if items[i].Thumbnail != "" {
				key := "games/" + assetFileName(items[i].Thumbnail)
				items[i].Thumbnail = f.dl.PersistOrKeep(ctx, items[i].Thumbnail, key)
			}
		}
		collection[bucket] = items
	}
	return collection, nil
}

// scrapeShelf renders one shelf page and parses its game rows. The view is
// switched to the detailed list layout, which exposes platform next to each
// title.
func (f *Fetcher) scrapeShelf(url string) ([]listing, error) {
	if err := f.session.Navigate(url, selGameList); err != nil {
		return nil, err
	}

	if !f.accepted {
		// Consent banner shows once per browser session; ignore when absent.
		_ = f.session.Click(selCookieAccept)
		f.accepted = true
	}

	if err := f.session.Click(selViewOptions); err == nil {
		_ = f.session.Press(browser.KeyArrowDown)
		_ = f.session.Press(browser.KeyEnter)
	}

	html, err := f.session.OuterHTML(selGameList)
	if err != nil {
		return nil, err
	}
	return parseShelf(html)
}

// enrichFromProfile opens the game's own page in a throwaway tab and fills
// in description and genres. The "read more" toggle is clicked when present
// so the summary is not truncated.
func (f *Fetcher) enrichFromProfile(item *domain.MediaItem) error {
	if item.Link == "" {
		return nil
	}
	html, err := f.session.TabHTML(item.Link, selProfileInfo, selReadMore, "body")
	if err != nil {
		return err
	}

	profile, err := parseProfile(html)
	if err != nil {
		return err
	}
	if profile.Description != "" {
		item.Description = profile.Description
	}
	if len(profile.Genres) > 0 {
		item.Genres = profile.Genres
	}
	return nil
}

// assetFileName derives a stable file name from a remote image URL. Cache
// busters and fragments ("cover.jpg?v=2") would otherwise leak into the
// stored key and defeat the download's idempotency.
func assetFileName(remote string) string {
	if i := strings.IndexAny(remote, "?#"); i >= 0 {
		remote = remote[:i]
	}
	return path.Base(remote)
}

func absoluteLink(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return siteBase + href
}
