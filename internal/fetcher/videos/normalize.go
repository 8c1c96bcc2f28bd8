package videos

import (
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/normalize"
)

// playlistItem is a raw playlistItems entry. The video id lives under
// contentDetails; snippet carries the listing metadata.
type playlistItem struct {
	Snippet struct {
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		PublishedAt          string     `json:"publishedAt"`
		VideoOwnerChannelID  string     `json:"videoOwnerChannelId"`
		VideoOwnerChannelTit string     `json:"videoOwnerChannelTitle"`
		Thumbnails           thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
}

// videoDetail is the per-video record behind the stats enrichment call.
type videoDetail struct {
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Snippet struct {
		Tags []string `json:"tags"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
		LikeCount string `json:"likeCount"`
	} `json:"statistics"`
}

type thumbnails struct {
	Maxres  *thumbnail `json:"maxres"`
	High    *thumbnail `json:"high"`
	Medium  *thumbnail `json:"medium"`
	Default *thumbnail `json:"default"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// normalizeListing maps the fields available from the playlist listing
// alone. Stats and tags are filled in later by applyDetail.
func normalizeListing(entry playlistItem) domain.MediaItem {
	s := entry.Snippet

	item := domain.MediaItem{
		ID:          entry.ContentDetails.VideoID,
		Type:        domain.TypeVideos,
		Title:       s.Title,
		Description: s.Description,
		Genres:      []string{},
		Link:        "https://www.youtube.com/watch?v=" + entry.ContentDetails.VideoID,
		Thumbnail:   bestThumbnail(s.Thumbnails),
		AddedAt:     normalize.ParseTime(s.PublishedAt),
	}
	if s.VideoOwnerChannelTit != "" {
		item.Author = &domain.Author{
			Name: s.VideoOwnerChannelTit,
			Link: "https://www.youtube.com/channel/" + s.VideoOwnerChannelID,
		}
	}
	return item
}

func applyDetail(item *domain.MediaItem, detail videoDetail) {
	item.Duration = detail.ContentDetails.Duration
	item.Views = detail.Statistics.ViewCount
	item.Rate = detail.Statistics.LikeCount
	if len(detail.Snippet.Tags) > 0 {
		item.Tags = detail.Snippet.Tags
	}
}

// bestThumbnail picks the largest variant YouTube published for the video.
func bestThumbnail(t thumbnails) string {
	for _, candidate := range []*thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate.URL
		}
	}
	return ""
}
