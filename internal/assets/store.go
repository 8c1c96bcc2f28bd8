// Package assets persists cover and thumbnail images referenced by
// normalized items, so the generated site never hotlinks upstream CDNs.
package assets

import "context"

// Store abstracts where downloaded images land: the local site tree for
// normal builds, or an S3-compatible bucket when covers are served from a
// CDN.
type Store interface {
	// Exists reports whether an object is already persisted under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Save persists data under key, overwriting any previous object.
	Save(ctx context.Context, key string, data []byte, contentType string) error

	// URL returns the reference written into MediaItem.Thumbnail for key:
	// a site-relative path for local storage, a public URL for buckets.
	URL(key string) string
}
