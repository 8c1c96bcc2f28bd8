package videos

import (
	"encoding/json"
	"testing"

	"github.com/kulugary/mediahub/internal/domain"
)

const playlistItemFixture = `{
  "snippet": {
    "title": "Summoning Salt - The History of Mike Tyson",
    "description": "World record progression.",
    "publishedAt": "2024-01-05T16:00:00Z",
    "videoOwnerChannelId": "UCtUbO6rBht0daVIOGML3c8w",
    "videoOwnerChannelTitle": "Summoning Salt",
    "thumbnails": {
      "default": {"url": "https://i.ytimg.com/vi/abc/default.jpg"},
      "high": {"url": "https://i.ytimg.com/vi/abc/hqdefault.jpg"}
    }
  },
  "contentDetails": {"videoId": "abc123xyz"}
}`

func TestNormalizeListing(t *testing.T) {
	var entry playlistItem
	if err := json.Unmarshal([]byte(playlistItemFixture), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	item := normalizeListing(entry)

	if item.Type != domain.TypeVideos {
		t.Errorf("got type %q", item.Type)
	}
	if item.ID != "abc123xyz" {
		t.Errorf("got id %q", item.ID)
	}
	if item.Link != "https://www.youtube.com/watch?v=abc123xyz" {
		t.Errorf("got link %q", item.Link)
	}
	if item.Thumbnail != "https://i.ytimg.com/vi/abc/hqdefault.jpg" {
		t.Errorf("got thumbnail %q, want the largest available", item.Thumbnail)
	}
	if item.Author == nil || item.Author.Name != "Summoning Salt" {
		t.Fatalf("got author %+v", item.Author)
	}
	if item.Author.Link != "https://www.youtube.com/channel/UCtUbO6rBht0daVIOGML3c8w" {
		t.Errorf("got author link %q", item.Author.Link)
	}
	if item.AddedAt == nil || item.AddedAt.Day() != 5 {
		t.Errorf("got addedAt %v", item.AddedAt)
	}
}

func TestApplyDetail(t *testing.T) {
	var detail videoDetail
	raw := `{
	  "contentDetails": {"duration": "PT42M10S"},
	  "snippet": {"tags": ["speedrun", "history"]},
	  "statistics": {"viewCount": "1048576", "likeCount": "65536"}
	}`
	if err := json.Unmarshal([]byte(raw), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	item := domain.MediaItem{ID: "abc123xyz"}
	applyDetail(&item, detail)

	if item.Duration != "PT42M10S" {
		t.Errorf("got duration %q", item.Duration)
	}
	if item.Views != "1048576" {
		t.Errorf("got views %q", item.Views)
	}
	if item.Rate != "65536" {
		t.Errorf("got rate %q", item.Rate)
	}
	if len(item.Tags) != 2 {
		t.Errorf("got tags %v", item.Tags)
	}
}

func TestBestThumbnailOrder(t *testing.T) {
	full := thumbnails{
		Maxres:  &thumbnail{URL: "max"},
		High:    &thumbnail{URL: "high"},
		Default: &thumbnail{URL: "def"},
	}
	if got := bestThumbnail(full); got != "max" {
		t.Errorf("got %q, want maxres first", got)
	}
	if got := bestThumbnail(thumbnails{Default: &thumbnail{URL: "def"}}); got != "def" {
		t.Errorf("got %q", got)
	}
	if got := bestThumbnail(thumbnails{}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
