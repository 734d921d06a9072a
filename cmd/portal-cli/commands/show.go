package commands

import (
	"courseportal-backend/lib/scrapers/uust"
	"courseportal-backend/lib/serviceutil"
	"courseportal-backend/services/schedule"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showDb *string
var showWeek *int

func init() {
	showDb = showCmd.Flags().String("db", "portal.db", "The database to read from.")
	showWeek = showCmd.Flags().Int("week", 0, "Show only this week, all stored weeks otherwise.")
	rootCmd.AddCommand(showCmd)
}

func renderDay(week int, day uust.Day) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	title := fmt.Sprintf("Неделя %d: %s", week, day.Weekday)
	if day.Date != "" {
		title = fmt.Sprintf("%s (%s)", title, day.Date)
	}
	t.SetTitle(title)

	t.AppendHeader(table.Row{"№", "Время", "Предмет", "Тип", "Преподаватель", "Аудитория"})
	for _, lesson := range day.Lessons {
		t.AppendRow(table.Row{
			lesson.Number,
			lesson.TimeSlot,
			lesson.Subject,
			lesson.Type,
			lesson.Teacher,
			lesson.Classroom,
		})
	}
	t.Render()
}

var showCmd = &cobra.Command{
	Use:   "show <group> [--week <n>] [--db <path>]",
	Short: "Renders the stored schedule of a group, fuzzy-matching its name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, store, err := openStore(*showDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		group, err := resolveGroup(cmd.Context(), store, args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve group", err)
		}

		var weeks []schedule.WeekSchedule
		if *showWeek != 0 {
			week, err := store.GetWeek(cmd.Context(), group.ID, *showWeek)
			if err != nil {
				serviceutil.Fatal("failed to read week", err)
			}
			weeks = []schedule.WeekSchedule{{WeekNumber: *showWeek, Days: week}}
		} else {
			weeks, err = store.GetGroupSchedule(cmd.Context(), group.ID)
			if err != nil {
				serviceutil.Fatal("failed to read schedule", err)
			}
		}

		fmt.Printf("%s (id %d)\n", group.Name, group.ID)
		for _, week := range weeks {
			for _, day := range week.Days {
				renderDay(week.WeekNumber, day)
			}
		}
	},
}
