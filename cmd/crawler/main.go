package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quote-crawler/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputDir string
		startPath string
		baseURL   string
		formats   []string
		fetcher   string
		maxPages  int
	)

	cmd := &cobra.Command{
		Use:           "crawler",
		Short:         "Page through a quote listing and export every quote as JSON, CSV and XLSX",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				logrus.WithError(err).Error("Invalid configuration")
				return err
			}

			// Flags win over the environment.
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("start") {
				cfg.StartPath = startPath
			}
			if flags.Changed("base") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("formats") {
				cfg.Formats = formats
			}
			if flags.Changed("fetcher") {
				cfg.Fetcher = fetcher
			}
			if flags.Changed("max-pages") {
				cfg.MaxPages = maxPages
			}
			if err := cfg.Validate(); err != nil {
				logrus.WithError(err).Error("Invalid configuration")
				return err
			}

			log := setupLogger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg, log); err != nil {
				log.WithError(err).Error("Crawl failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", ".", "directory to write quotes.{json,csv,xlsx} into")
	cmd.Flags().StringVar(&startPath, "start", "/", "first page path, relative to the base URL")
	cmd.Flags().StringVar(&baseURL, "base", "https://quotes.toscrape.com", "site origin every page path is resolved against")
	cmd.Flags().StringSliceVar(&formats, "formats", []string{"json", "csv", "xlsx"}, "export formats to write")
	cmd.Flags().StringVar(&fetcher, "fetcher", config.FetcherHTTP, "page fetcher: http or browser")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 = no limit)")

	return cmd
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
