package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ah-flipper/internal/config"
	"ah-flipper/internal/hypixel"
	"ah-flipper/internal/ingest"
	"ah-flipper/internal/pricing"
	"ah-flipper/internal/report"
	"ah-flipper/internal/scanner"
	"ah-flipper/internal/valuation"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // best-effort: .env is optional

	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger := config.NewLogger(cfg.LogLevel).With(slog.String("run_id", runID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runID, logger); err != nil {
		logger.Error("run failed", slog.String("err", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, runID string, logger *slog.Logger) error {
	started := time.Now()
	logger.Info("ah-flipper starting",
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.Int("workers", cfg.Workers),
	)

	client := hypixel.NewClient(cfg.APIBaseURL, cfg.RequestTimeout(), logger)

	// The index must be complete before anything is valued.
	snap, err := ingest.Run(ctx, client, cfg.Workers, logger)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	logger.Info("auction snapshot",
		slog.Int("listings", len(snap.Listings)),
		slog.Int("ineligible", snap.Ineligible),
		slog.Duration("age", time.Since(snap.Updated).Round(time.Second)),
	)

	reforges, err := pricing.LoadReforges(cfg.ReforgesPath)
	if err != nil {
		return err
	}
	var catalog pricing.Catalog
	if cfg.ItemsCatalogPath != "" {
		if catalog, err = pricing.LoadCatalog(cfg.ItemsCatalogPath); err != nil {
			return err
		}
	}

	bz, err := client.Bazaar(ctx)
	if err != nil {
		return err
	}
	prices, missing := pricing.BuildCommodities(catalog, bz.Quotes())
	for _, id := range missing {
		logger.Debug("catalog item not quoted", slog.String("id", id))
	}
	logger.Info("commodity snapshot",
		slog.Int("commodities", len(prices)),
		slog.Int("reforges", len(reforges)),
		slog.Int("unquoted", len(missing)),
		slog.Duration("age", time.Since(bz.Updated()).Round(time.Second)),
	)

	engine := valuation.NewEngine(snap.Index, prices, reforges)
	sc := scanner.New(snap.Index, engine, cfg.Thresholds(), logger)
	res, err := sc.Run(ctx, snap.Listings)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	for _, f := range res.Flips {
		b := f.Breakdown
		logger.Debug("flip breakdown",
			slog.String("listing", f.ListingID),
			slog.String("baseline", b.Baseline.String()),
			slog.String("quality_upgrade", b.QualityUpgrade.String()),
			slog.String("books", b.Books.String()),
			slog.String("stars", b.Stars.String()),
			slog.String("enchantments", b.Enchantments.String()),
			slog.String("reforge", b.Reforge.String()),
		)
	}

	if err := report.WriteText(os.Stdout, res); err != nil {
		return err
	}
	if cfg.ReportXLSXPath != "" {
		if err := report.WriteXLSX(cfg.ReportXLSXPath, runID, res); err != nil {
			return err
		}
		logger.Info("wrote workbook", slog.String("path", cfg.ReportXLSXPath))
	}

	logger.Info("done",
		slog.Int("buckets", snap.Index.Len()),
		slog.Int("snipes", len(res.Snipes)),
		slog.Int("flips", len(res.Flips)),
		slog.Int("unpriced", res.Unpriced),
		slog.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return nil
}
