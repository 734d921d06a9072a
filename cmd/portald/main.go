package main

import (
	"context"
	"courseportal-backend/lib/configutil"
	"courseportal-backend/lib/scrapers/uust"
	"courseportal-backend/lib/serviceutil"
	"courseportal-backend/lib/sqliteutil"
	"courseportal-backend/lib/telemetry"
	"courseportal-backend/lib/timezone"
	"courseportal-backend/services/schedule"
	scheduledb "courseportal-backend/services/schedule/db"
	"courseportal-backend/services/schedule/scraper"
	"flag"
	"log/slog"
	"os"
	"slices"
	"time"
)

func runScrape(ctx context.Context, cfg Config, store schedule.Service, client uust.Client) {
	stats := scraper.Scrape(ctx, store, client, cfg.Groups, cfg.StartWeek, cfg.EndWeek)

	if cfg.Smtp.Enabled() {
		err := scraper.SendRunReport(ctx, cfg.Smtp, stats)
		if err != nil {
			slog.ErrorContext(ctx, "send run report", "err", err)
		}
	}
}

func scrapeWorker(ctx context.Context, cfg Config, store schedule.Service, client uust.Client) {
	hours := cfg.ScrapeHours
	if len(hours) == 0 {
		hours = defaultScrapeHours
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !slices.Contains(hours, timezone.Now().Hour()) {
				continue
			}
			runScrape(ctx, cfg, store, client)
		}
	}
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	initialScrape := flag.Bool("scrape", false, "Trigger scraping immediately on run.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(*verbose)
	tel, err := telemetry.SetupFromEnv(ctx, "portald")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Database == "" {
		cfg.Database = "portal.db"
	}

	database, err := sqliteutil.OpenDB(scheduledb.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open db", err)
	}
	defer database.Close()

	store := schedule.NewService(database)
	client := uust.NewClient(uust.ClientOptions{})

	if *initialScrape {
		slog.Info("scraping on start")
		go runScrape(ctx, cfg, store, client)
	}
	go scrapeWorker(ctx, cfg, store, client)

	slog.Info("portald running", "db", cfg.Database, "groups", len(cfg.Groups))
	<-ctx.Done()
}
