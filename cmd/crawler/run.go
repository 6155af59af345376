package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"quote-crawler/internal/config"
	"quote-crawler/internal/crawler"
	"quote-crawler/internal/crawler/engine"
	"quote-crawler/internal/export"
	"quote-crawler/internal/storage"
	"quote-crawler/pkg/models"
)

// run crawls the listing, then writes every requested artifact and, when a
// database is configured, stores the quotes. Nothing is written if the crawl fails.
func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	exporters, err := export.ForFormats(cfg.Formats)
	if err != nil {
		return err
	}

	fetcher, closeFetcher := newFetcher(ctx, cfg)
	defer closeFetcher()

	var sink engine.Sink[models.Quote]
	if cfg.DatabaseURL != "" {
		store, err := storage.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		sink = storage.NewQuoteSink(store, time.Now().UTC().Format(time.RFC3339Nano))
	}

	eng, err := engine.NewEngine[models.Quote](
		engine.Config{
			BaseURL:   cfg.BaseURL,
			MaxPages:  cfg.MaxPages,
			BatchSize: cfg.BatchSize,
			Logger:    log,
		},
		&crawler.QuoteProcessor{Parser: crawler.NewParser(fetcher)},
		sink,
		crawler.NewDomainManager(cfg.RateLimit, cfg.RespectRobots, cfg.UserAgent),
	)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"base":    cfg.BaseURL,
		"start":   cfg.StartPath,
		"fetcher": cfg.Fetcher,
	}).Info("Starting crawler")

	quotes, err := eng.Run(ctx, cfg.StartPath)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}

	_, exportErr := export.NewWriter(cfg.OutputDir, log).WriteAll(quotes, exporters...)
	storeErr := eng.Store(ctx, quotes)
	return errors.Join(exportErr, storeErr)
}

func newFetcher(ctx context.Context, cfg *config.Config) (crawler.Fetcher, func()) {
	if cfg.Fetcher == config.FetcherBrowser {
		f := crawler.NewBrowserFetcher(ctx, cfg.UserAgent, cfg.FetchTimeout)
		return f, f.Close
	}
	return crawler.NewHTTPFetcher(cfg.UserAgent, cfg.FetchTimeout), func() {}
}
