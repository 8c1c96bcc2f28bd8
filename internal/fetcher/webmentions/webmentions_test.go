package webmentions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
)

type fakeGetter struct {
	body []byte
	err  error
	url  string
}

func (f *fakeGetter) GetBytes(_ context.Context, url string, _ map[string]string) ([]byte, error) {
	f.url = url
	return f.body, f.err
}

const jf2Fixture = `{
  "type": "feed",
  "name": "Webmentions",
  "children": [
    {
      "type": "entry",
      "wm-id": 100,
      "wm-property": "like-of",
      "wm-target": "https://kulugary.neocities.org/posts/hello",
      "url": "https://social.example/@friend/1",
      "published": "2024-02-10T18:00:00Z",
      "author": {
        "name": "Friend",
        "photo": "https://social.example/avatar.png",
        "url": "https://social.example/@friend"
      }
    },
    {
      "type": "entry",
      "wm-id": 101,
      "wm-property": "in-reply-to",
      "url": "https://social.example/@friend/2",
      "content": {
        "html": "<p>Great post!</p><script>x</script>",
        "text": "Great post!"
      }
    },
    {
      "type": "entry",
      "wm-id": 102,
      "wm-property": "rsvp"
    }
  ]
}`

func newTestFetcher(getter httpGetter) *Fetcher {
	return New(&config.WebmentionsConfig{Token: "tok", PerPage: 1000, TTLDays: 1}, getter)
}

func TestFetchGroupsByProperty(t *testing.T) {
	getter := &fakeGetter{body: []byte(jf2Fixture)}
	f := newTestFetcher(getter)

	collection, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(getter.url, "token=tok") || !strings.Contains(getter.url, "per-page=1000") {
		t.Errorf("request URL missing token or page size: %q", getter.url)
	}

	// Every known property bucket exists, filled or not.
	for _, p := range properties {
		if _, ok := collection[p]; !ok {
			t.Errorf("bucket %q missing", p)
		}
	}

	likes := collection["like-of"]
	if len(likes) != 1 {
		t.Fatalf("got %d likes, want 1", len(likes))
	}
	like := likes[0]
	if like.ID != "100" {
		t.Errorf("got id %q", like.ID)
	}
	if like.Type != domain.TypeWebmentions {
		t.Errorf("got type %q", like.Type)
	}
	if like.Author == nil || like.Author.Name != "Friend" || like.Author.Link != "https://social.example/@friend" {
		t.Errorf("got author %+v", like.Author)
	}
	if like.Thumbnail != "https://social.example/avatar.png" {
		t.Errorf("got thumbnail %q", like.Thumbnail)
	}
	if len(like.Tags) != 1 || like.Tags[0] != "https://kulugary.neocities.org/posts/hello" {
		t.Errorf("got tags %v, want the mention target", like.Tags)
	}

	replies := collection["in-reply-to"]
	if len(replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(replies))
	}
	if replies[0].Description != "<p>Great post!</p>" {
		t.Errorf("got description %q, want sanitized html", replies[0].Description)
	}

	// The rsvp child has no bucket and is dropped.
	total := 0
	for _, items := range collection {
		total += len(items)
	}
	if total != 2 {
		t.Errorf("got %d mentions, want 2", total)
	}
}

func TestFetchPropagatesTransportError(t *testing.T) {
	boom := errors.New("api down")
	f := newTestFetcher(&fakeGetter{err: boom})

	if _, err := f.Fetch(context.Background()); !errors.Is(err, boom) {
		t.Errorf("got %v, want transport error", err)
	}
}

func TestFetchEmptyBodyYieldsEmptyBuckets(t *testing.T) {
	f := newTestFetcher(&fakeGetter{body: []byte(`{"children": []}`)})

	collection, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(collection) != len(properties) {
		t.Errorf("got %d buckets, want %d", len(collection), len(properties))
	}
	for p, items := range collection {
		if len(items) != 0 {
			t.Errorf("bucket %q not empty", p)
		}
	}
}
