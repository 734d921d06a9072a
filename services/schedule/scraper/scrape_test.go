package scraper

import (
	"context"
	"courseportal-backend/lib/testutil"
	"courseportal-backend/services/schedule"
	"courseportal-backend/services/schedule/db"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	// week -> raw body; a missing week produces a fetch error
	pages map[int]string
	calls []int
}

func (f *fakeFetcher) FetchWeek(ctx context.Context, groupId int64, week int) (string, error) {
	f.calls = append(f.calls, week)
	page, ok := f.pages[week]
	if !ok {
		return "", fmt.Errorf("fetch week %d for group %d: connection refused", week, groupId)
	}
	return page, nil
}

func weekPage(subject string) string {
	return fmt.Sprintf(
		`<th>Понедельник (01.09.2025)</th>$('#1_1_group').append('%s (Лекция)|Ivanov I.I.');`,
		subject,
	)
}

func setup(t testing.TB) (schedule.Service, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/schedule/scraper",
		DbSchema: db.Schema,
	})
	return schedule.NewService(res.DB), cleanup
}

func TestScrapeGroupResilience(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	fetcher := &fakeFetcher{pages: map[int]string{}}
	for week := 1; week <= 10; week++ {
		if week == 5 {
			continue // week 5 fails to fetch
		}
		fetcher.pages[week] = weekPage(fmt.Sprintf("Предмет%d", week))
	}

	group := schedule.Group{ID: 10990, Name: "ТОП-103Б"}
	stats := ScrapeGroup(ctx, store, fetcher, group, 1, 10)

	require.Equal(t, 10, stats.WeeksAttempted)
	require.Equal(t, 9, stats.WeeksScraped)
	require.True(t, stats.Ok())
	// every week was attempted in order despite the failure
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, fetcher.calls)

	for week := 1; week <= 10; week++ {
		stored, err := store.GetWeek(ctx, group.ID, week)
		require.NoError(t, err)
		if week == 5 {
			require.Empty(t, stored)
			continue
		}
		require.Len(t, stored, 1)
		require.Equal(t, fmt.Sprintf("Предмет%d", week), stored[0].Lessons[0].Subject)
	}
}

func TestScrapeGroupSkipsEmptyWeeks(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	group := schedule.Group{ID: 10990, Name: "ТОП-103Б"}

	fetcher := &fakeFetcher{pages: map[int]string{1: weekPage("Matan")}}
	stats := ScrapeGroup(ctx, store, fetcher, group, 1, 1)
	require.Equal(t, 1, stats.WeeksScraped)

	// the site now renders an empty grid for week 1: the previously
	// stored lessons must survive untouched
	fetcher = &fakeFetcher{pages: map[int]string{1: "<html><body></body></html>"}}
	stats = ScrapeGroup(ctx, store, fetcher, group, 1, 1)
	require.Equal(t, 0, stats.WeeksScraped)
	require.False(t, stats.Ok())

	stored, err := store.GetWeek(ctx, group.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "Matan", stored[0].Lessons[0].Subject)
}

func TestScrapeDefaultsAndAggregation(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	fetcher := &fakeFetcher{pages: map[int]string{
		1: weekPage("Matan"),
		2: weekPage("Физика"),
	}}

	stats := Scrape(ctx, store, fetcher, nil, 1, 2)
	require.NotEmpty(t, stats.RunID)
	// nil group list falls back to the default group
	require.Len(t, stats.Groups, 1)
	require.Equal(t, DefaultGroups[0], stats.Groups[0].Group)
	require.Equal(t, 2, stats.WeeksScraped())
	require.Equal(t, 2, stats.Lessons())
}
