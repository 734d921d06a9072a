package scraper

import (
	"context"
	"courseportal-backend/lib/scrapers/uust"
	"courseportal-backend/services/schedule"
	"log/slog"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/schedule/scraper")

const (
	DefaultStartWeek = 1
	DefaultEndWeek   = 18
)

// DefaultGroups is the fallback when no group list is configured.
var DefaultGroups = []schedule.Group{
	{ID: 10990, Name: "ТОП-103Б"},
}

// Fetcher is satisfied by uust.Client.
type Fetcher interface {
	FetchWeek(ctx context.Context, groupId int64, week int) (string, error)
}

var _ Fetcher = uust.Client{}

type GroupStats struct {
	Group          schedule.Group
	WeeksAttempted int
	WeeksScraped   int
	Lessons        int
}

// Ok reports whether at least one week of the group made it to storage.
func (s GroupStats) Ok() bool {
	return s.WeeksScraped > 0
}

type RunStats struct {
	RunID  string
	Groups []GroupStats
}

func (s RunStats) WeeksScraped() int {
	total := 0
	for _, g := range s.Groups {
		total += g.WeeksScraped
	}
	return total
}

func (s RunStats) Lessons() int {
	total := 0
	for _, g := range s.Groups {
		total += g.Lessons
	}
	return total
}

// ScrapeGroup walks the inclusive week range for one group, per week
// doing fetch -> normalize -> replace. Weeks are processed strictly in
// order with one request in flight at a time out of politeness toward
// the scraped site. A failed week is logged and skipped, it never
// aborts the remaining weeks.
func ScrapeGroup(ctx context.Context, store schedule.Service, client Fetcher, group schedule.Group, startWeek, endWeek int) GroupStats {
	ctx, span := tracer.Start(ctx, "ScrapeGroup")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("group_id", group.ID),
		attribute.String("group_name", group.Name),
		attribute.Int("start_week", startWeek),
		attribute.Int("end_week", endWeek),
	)

	stats := GroupStats{Group: group}
	for week := startWeek; week <= endWeek; week++ {
		stats.WeeksAttempted++

		raw, err := client.FetchWeek(ctx, group.ID, week)
		if err != nil {
			slog.ErrorContext(ctx, "fetch week", "group", group.Name, "week", week, "err", err)
			span.RecordError(err)
			continue
		}

		weekData := uust.ParseWeek(raw)
		if len(weekData) == 0 {
			// no write on an empty week: a scrape hiccup must not erase
			// previously stored lessons before there is a replacement
			slog.InfoContext(ctx, "week empty or unavailable", "group", group.Name, "week", week)
			continue
		}

		err = store.ReplaceWeek(ctx, schedule.ReplaceWeekRequest{
			GroupID:    group.ID,
			GroupName:  group.Name,
			WeekNumber: week,
			Week:       weekData,
		})
		if err != nil {
			slog.ErrorContext(ctx, "store week", "group", group.Name, "week", week, "err", err)
			span.RecordError(err)
			continue
		}

		lessons := 0
		for _, day := range weekData {
			lessons += len(day.Lessons)
		}
		stats.WeeksScraped++
		stats.Lessons += lessons
		slog.InfoContext(ctx, "week stored",
			"group", group.Name,
			"week", week,
			"days", len(weekData),
			"lessons", lessons,
		)
	}
	return stats
}

// Scrape runs a full semester scrape over the configured groups and
// returns aggregate statistics. Group and week faults are contained
// here, the run itself never fails.
func Scrape(ctx context.Context, store schedule.Service, client Fetcher, groups []schedule.Group, startWeek, endWeek int) RunStats {
	runId, err := random.String(8)
	if err != nil {
		runId = "unknown"
	}

	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runId))

	if len(groups) == 0 {
		slog.WarnContext(ctx, "no groups configured, falling back to default group list")
		groups = DefaultGroups
	}
	if startWeek == 0 {
		startWeek = DefaultStartWeek
	}
	if endWeek == 0 {
		endWeek = DefaultEndWeek
	}

	stats := RunStats{RunID: runId}
	for _, group := range groups {
		slog.InfoContext(ctx, "scraping group",
			"run_id", runId,
			"group", group.Name,
			"group_id", group.ID,
			"start_week", startWeek,
			"end_week", endWeek,
		)
		groupStats := ScrapeGroup(ctx, store, client, group, startWeek, endWeek)
		if !groupStats.Ok() {
			slog.WarnContext(ctx, "group skipped, no data", "run_id", runId, "group", group.Name)
		}
		stats.Groups = append(stats.Groups, groupStats)
	}

	slog.InfoContext(ctx, "scrape run finished",
		"run_id", runId,
		"groups", len(stats.Groups),
		"weeks", stats.WeeksScraped(),
		"lessons", stats.Lessons(),
	)
	return stats
}
