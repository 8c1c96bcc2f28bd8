package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kulugary/mediahub/internal/cache"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/logger"
)

// Runner executes sources against the shared TTL cache. Sources run
// sequentially: the browser session behind the scraped ones is a single
// shared resource.
type Runner struct {
	cache    *cache.Store
	log      *logger.Logger
	useCache bool
	dumpDir  string // "" disables debug dumps
}

// NewRunner creates a Runner. When dumpDir is non-empty every fetched
// collection is mirrored to dumpDir/<key>.json for inspection and as
// fixtures for the rendering layer.
func NewRunner(store *cache.Store, log *logger.Logger, useCache bool, dumpDir string) *Runner {
	if log == nil {
		log = logger.Default()
	}
	return &Runner{cache: store, log: log, useCache: useCache, dumpDir: dumpDir}
}

// Run returns src's collection, from cache when a fresh entry exists,
// otherwise by fetching and writing back.
func (r *Runner) Run(ctx context.Context, src Source) (domain.Collection, error) {
	log := r.log.WithField(logger.FieldSource, src.Key())

	if r.useCache && src.CacheEnabled() {
		var cached domain.Collection
		if r.cache.Get(src.Key(), &cached) {
			log.Info("Returning cached data")
			return cached, nil
		}
	}

	log.Info("Starting fresh fetch")
	collection, err := src.Fetch(log.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching %s failed: %w", src.Key(), err)
	}

	if err := r.cache.Set(src.Key(), collection, src.TTL()); err != nil {
		log.WithError(err).Warn("Could not persist collection to cache")
	}
	r.dump(src.Key(), collection)

	total := 0
	for _, items := range collection {
		total += len(items)
	}
	log.WithField(logger.FieldCount, total).Info("Fetch complete")

	return collection, nil
}

// RunAll runs every source in order. A failing source yields an empty
// collection and the build continues, unless the source is marked mandatory,
// in which case the error propagates.
func (r *Runner) RunAll(ctx context.Context, srcs []Source) (map[string]domain.Collection, error) {
	results := make(map[string]domain.Collection, len(srcs))
	for _, src := range srcs {
		collection, err := r.Run(ctx, src)
		if err != nil {
			if m, ok := src.(Mandatory); ok && m.Mandatory() {
				return nil, err
			}
			r.log.WithError(err).WithField(logger.FieldSource, src.Key()).Error("Source failed, continuing with empty section")
			collection = domain.Collection{}
		}
		results[src.Key()] = collection
	}
	return results, nil
}

func (r *Runner) dump(key string, collection domain.Collection) {
	if r.dumpDir == "" {
		return
	}
	if err := os.MkdirAll(r.dumpDir, 0755); err != nil {
		r.log.WithError(err).Warn("Could not create debug dump directory")
		return
	}
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		r.log.WithError(err).Warn("Could not encode debug dump")
		return
	}
	path := filepath.Join(r.dumpDir, key+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.log.WithError(err).WithField("path", path).Warn("Could not write debug dump")
	}
}
