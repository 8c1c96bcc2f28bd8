package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kulugary/mediahub/internal/assets"
	"github.com/kulugary/mediahub/internal/browser"
	"github.com/kulugary/mediahub/internal/cache"
	"github.com/kulugary/mediahub/internal/config"
	"github.com/kulugary/mediahub/internal/domain"
	"github.com/kulugary/mediahub/internal/fetcher"
	"github.com/kulugary/mediahub/internal/fetcher/games"
	"github.com/kulugary/mediahub/internal/fetcher/manga"
	"github.com/kulugary/mediahub/internal/fetcher/music"
	"github.com/kulugary/mediahub/internal/fetcher/status"
	"github.com/kulugary/mediahub/internal/fetcher/trakt"
	"github.com/kulugary/mediahub/internal/fetcher/videos"
	"github.com/kulugary/mediahub/internal/fetcher/webcomics"
	"github.com/kulugary/mediahub/internal/fetcher/webmentions"
	"github.com/kulugary/mediahub/internal/httpx"
	"github.com/kulugary/mediahub/internal/logger"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "mediahub-fetch",
	})
	logger.SetDefault(appLogger)

	// Parse command line flags
	only := flag.String("source", "", "Fetch a single source (games, movies, shows, manga, music, videos, webcomics, status, webmentions)")
	configPath := flag.String("config", "", "Path to config file")
	noCache := flag.Bool("no-cache", false, "Bypass the cache and fetch everything fresh")
	outDir := flag.String("out", "./src/_data/generated", "Directory the per-source JSON files are written to")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	appLogger = logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "mediahub-fetch",
		File:        cfg.Log.File,
	})
	appLogger = appLogger.WithField(logger.FieldRunID, uuid.New().String())
	logger.SetDefault(appLogger)

	appLogger.WithFields(logger.Fields{
		"source":   *only,
		"no_cache": *noCache,
	}).Info("Starting fetch")

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	store := cache.New(cfg.Cache.Path, appLogger)

	assetStore, err := assets.NewStore(&cfg.Assets)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize asset store")
	}
	downloader := assets.NewDownloader(assetStore, appLogger)

	client := httpx.New(30 * time.Second)

	srcs, cleanup, err := buildSources(cfg, *only, client, downloader, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize sources")
	}
	defer cleanup()
	if len(srcs) == 0 {
		appLogger.Fatal("No sources enabled")
	}

	dumpDir := ""
	if cfg.Debug.DumpJSON {
		dumpDir = cfg.Debug.DumpDir
	}
	runner := fetcher.NewRunner(store, appLogger, cfg.Fetch.UseCache && !*noCache, dumpDir)

	results, err := runner.RunAll(ctx, srcs)
	if err != nil {
		appLogger.WithError(err).Fatal("Fetch aborted")
	}

	if err := writeResults(*outDir, results); err != nil {
		appLogger.WithError(err).Fatal("Failed to write results")
	}
	appLogger.WithField(logger.FieldCount, len(results)).Info("Fetch completed")
}

// buildSources assembles the enabled sources in their fixed run order. The
// browser session is launched only when a scraped source actually runs; the
// returned cleanup shuts it down.
func buildSources(cfg *config.Config, only string, client *httpx.Client, dl *assets.Downloader, log *logger.Logger) ([]fetcher.Source, func(), error) {
	cleanup := func() {}
	wanted := func(key string) bool { return only == "" || only == key }
	workers := cfg.Fetch.Workers

	var srcs []fetcher.Source

	if cfg.Sources.Games.Enabled && wanted("games") {
		session, err := browser.NewSession(&browser.Options{
			Headless: cfg.Fetch.Headless,
			Timeout:  time.Duration(cfg.Fetch.BrowserTimeout) * time.Second,
		}, log)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to launch browser: %w", err)
		}
		cleanup = session.Close
		srcs = append(srcs, games.New(&cfg.Sources.Games, session, dl, workers))
	}

	if cfg.Sources.Trakt.Enabled {
		if wanted("movies") {
			movies, err := trakt.NewMovies(&cfg.Sources.Trakt, client)
			if err != nil {
				return nil, cleanup, err
			}
			srcs = append(srcs, movies)
		}
		if wanted("shows") {
			shows, err := trakt.NewShows(&cfg.Sources.Trakt, client)
			if err != nil {
				return nil, cleanup, err
			}
			srcs = append(srcs, shows)
		}
	}

	if cfg.Sources.Manga.Enabled && wanted("manga") {
		srcs = append(srcs, manga.New(&cfg.Sources.Manga, client, dl, workers))
	}
	if cfg.Sources.Music.Enabled && wanted("music") {
		srcs = append(srcs, music.New(&cfg.Sources.Music, client, dl))
	}
	if cfg.Sources.Videos.Enabled && wanted("videos") {
		srcs = append(srcs, videos.New(&cfg.Sources.Videos, client, dl, workers))
	}
	if cfg.Sources.Webcomics.Enabled && wanted("webcomics") {
		srcs = append(srcs, webcomics.New(&cfg.Sources.Webcomics))
	}
	if cfg.Sources.Status.Enabled && wanted("status") {
		srcs = append(srcs, status.New(&cfg.Sources.Status))
	}
	if cfg.Sources.Webmentions.Enabled && wanted("webmentions") {
		srcs = append(srcs, webmentions.New(&cfg.Sources.Webmentions, client))
	}

	return srcs, cleanup, nil
}

// writeResults mirrors each source's collection to <dir>/<key>.json, the
// files the site generator reads at build time.
func writeResults(dir string, results map[string]domain.Collection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for key, collection := range results {
		data, err := json.MarshalIndent(collection, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		path := filepath.Join(dir, key+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
