package webcomics

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// normalizeFeed maps a parsed feed onto the canonical schema. The comic is
// described by the feed header; timestamps and link come from the latest
// entry so the item reflects the most recent page.
func normalizeFeed(feed *gofeed.Feed) domain.MediaItem {
	latest := feed.Items[0]

	published := latest.PublishedParsed
	if published == nil {
		published = latest.UpdatedParsed
	}
	item := domain.MediaItem{
		ID:          latest.GUID,
		Type:        domain.TypeWebcomics,
		Title:       feed.Title,
		LatestTitle: composeLatestTitle(feed.Title, latest.Title),
		Description: normalize.SanitizeHTML(feed.Description),
		Genres:      []string{},
		Link:        latest.Link,
	}
	if item.ID == "" {
		item.ID = latest.Link
	}
	if published != nil {
		t := published.UTC()
		item.AddedAt = &t
		item.UpdatedAt = &t
	}
	if name := authorName(feed, latest); name != "" {
		item.Author = &domain.Author{Name: name}
	}
	return item
}

// composeLatestTitle names the newest page. Feeds that title entries with
// the series name already ("KSBD 5-140") pass through; bare entry titles
// get the series name prefixed.
func composeLatestTitle(comicTitle, entryTitle string) string {
	entryTitle = strings.TrimSpace(entryTitle)
	if entryTitle == "" {
		return comicTitle
	}
	if strings.HasPrefix(entryTitle, comicTitle) {
		return entryTitle
	}
	return comicTitle + " - " + entryTitle
}

// authorName resolves the creator from, in order, the entry's author tag,
// its dc:creator extension, and the feed-level copyright line with any
// copyright year stripped.
func authorName(feed *gofeed.Feed, entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator[0]
	}
	if feed.Copyright != "" {
		return normalize.StripCopyrightYear(feed.Copyright)
	}
	return ""
}

// applyOverride merges static metadata over the parsed values, field by
// field. Empty override fields leave the parsed value alone.
func applyOverride(item *domain.MediaItem, ov config.WebcomicOverride) {
	if ov.Title != "" {
		item.Title = ov.Title
	}
	if ov.Description != "" {
		item.Description = ov.Description
	}
	if ov.Thumbnail != "" {
		item.Thumbnail = ov.Thumbnail
	}
	if len(ov.Genres) > 0 {
		item.Genres = ov.Genres
	}
	if ov.Author != "" {
		item.Author = &domain.Author{Name: ov.Author}
	}
	if ov.Link != "" {
		item.Link = ov.Link
	}
}
