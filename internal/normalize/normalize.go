// Package normalize holds the helpers shared by every source's normalizer:
// id derivation, description sanitization and timestamp parsing. Each
// helper is deterministic; the same input always yields the same output.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// descriptionPolicy keeps paragraph breaks and nothing else.
var descriptionPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p")
	return p
}()

var copyrightYear = regexp.MustCompile(`©\s*\d{4,}`)

// SlugFromLink derives an id from the last non-empty path segment of a URL,
// for upstreams that expose no explicit identifier.
func SlugFromLink(link string) string {
	trimmed := strings.TrimRight(link, "/")
	if idx := strings.IndexAny(trimmed, "?#"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}

// SanitizeHTML reduces upstream markup to a p-only subset, dropping every
// other tag outright.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(descriptionPolicy.Sanitize(s))
}

// MarkdownToSafeHTML renders markdown and sanitizes the result down to
// paragraphs. MangaDex serves descriptions as markdown.
func MarkdownToSafeHTML(md string) string {
	if md == "" {
		return ""
	}
	html := blackfriday.Run([]byte(md))
	return SanitizeHTML(string(html))
}

// StripCopyrightYear removes "©2006"-style markers from feed copyright
// strings so they can serve as author names.
func StripCopyrightYear(s string) string {
	return strings.TrimSpace(copyrightYear.ReplaceAllString(s, ""))
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// ParseTime parses the timestamp formats the upstreams actually emit,
// returning nil for empty or unparseable input.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
