package main

import (
	"courseportal-backend/services/schedule"
	"courseportal-backend/services/schedule/scraper"
)

type Config struct {
	Database  string           `json:"database"`
	Groups    []schedule.Group `json:"groups"`
	StartWeek int              `json:"start_week"`
	EndWeek   int              `json:"end_week"`
	// local-time hours at which the daemon rescrapes, defaults to
	// 03:00 and 13:00
	ScrapeHours []int              `json:"scrape_hours"`
	Smtp        scraper.SmtpConfig `json:"smtp"`
}

var defaultScrapeHours = []int{3, 13}
