package commands

import (
	"courseportal-backend/lib/configutil"
	"courseportal-backend/lib/scrapers/uust"
	"courseportal-backend/lib/serviceutil"
	"courseportal-backend/lib/sqliteutil"
	"courseportal-backend/services/schedule"
	scheduledb "courseportal-backend/services/schedule/db"
	"courseportal-backend/services/schedule/scraper"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type Config struct {
	Database  string           `json:"database"`
	Groups    []schedule.Group `json:"groups"`
	StartWeek int              `json:"start_week"`
	EndWeek   int              `json:"end_week"`
}

var scrapeDb *string
var scrapeStartWeek *int
var scrapeEndWeek *int

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "Override the database path from config.json5.")
	scrapeStartWeek = scrapeCmd.Flags().Int("start-week", 0, "Override the first week to scrape.")
	scrapeEndWeek = scrapeCmd.Flags().Int("end-week", 0, "Override the last week to scrape.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path>] [--start-week <n>] [--end-week <n>]",
	Short: "Scrapes the semester schedule for every configured group.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}
		if *scrapeDb != "" {
			cfg.Database = *scrapeDb
		}
		if cfg.Database == "" {
			cfg.Database = "portal.db"
		}
		if *scrapeStartWeek != 0 {
			cfg.StartWeek = *scrapeStartWeek
		}
		if *scrapeEndWeek != 0 {
			cfg.EndWeek = *scrapeEndWeek
		}

		database, err := sqliteutil.OpenDB(scheduledb.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store := schedule.NewService(database)
		client := uust.NewClient(uust.ClientOptions{})

		t1 := time.Now()
		stats := scraper.Scrape(cmd.Context(), store, client, cfg.Groups, cfg.StartWeek, cfg.EndWeek)
		t2 := time.Now()

		slog.Info("scraping time",
			"run_id", stats.RunID,
			"seconds", t2.Sub(t1).Seconds(),
			"weeks", stats.WeeksScraped(),
			"lessons", stats.Lessons(),
		)
	},
}
