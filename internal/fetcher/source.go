// Package fetcher orchestrates the per-source pipeline: cache check,
// authentication, listing, bounded-concurrency enrichment, normalization,
// asset persistence and cache write-back.
package fetcher

import (
	"context"
	"time"

	"github.com/kulugary/mediahub/internal/domain"
)

// Source is one upstream fetcher. Fetch runs the full
// authenticate/list/enrich/normalize pipeline and returns the per-bucket
// collection; the Runner wraps it with caching and debug dumps.
type Source interface {
	// Key is the cache key and debug-dump name for this source.
	Key() string

	// TTL is how long a fetched collection stays valid in the cache.
	TTL() time.Duration

	// CacheEnabled reports whether cached collections may be returned for
	// this source. Some sources (status updates) always refetch.
	CacheEnabled() bool

	Fetch(ctx context.Context) (domain.Collection, error)
}

// Mandatory marks sources whose fetch failure should halt the whole build,
// typically because a required credential is missing or rejected. Sources
// not implementing it degrade to an empty section instead.
type Mandatory interface {
	Mandatory() bool
}
