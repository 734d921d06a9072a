package commands

import (
	"bytes"
	"courseportal-backend/lib/serviceutil"
	"courseportal-backend/lib/textutil"
	"courseportal-backend/services/schedule"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var exportDb *string
var exportOut *string

func init() {
	exportDb = exportCmd.Flags().String("db", "portal.db", "The database to read from.")
	exportOut = exportCmd.Flags().String("out", "", "Output file, defaults to schedule_<group>.json.")
	rootCmd.AddCommand(exportCmd)
}

// the portal's schedule JSON shape
type exportSchedule struct {
	Group       string       `json:"группа"`
	GroupID     int64        `json:"group_id"`
	LastUpdated string       `json:"последнее_обновление"`
	Weeks       orderedWeeks `json:"недели"`
}

// orderedWeeks marshals as an object keyed by week number in slice
// order. A plain map would sort the keys lexicographically, putting
// week 10 before week 2.
type orderedWeeks []schedule.WeekSchedule

func (w orderedWeeks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, week := range w {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", strconv.Itoa(week.WeekNumber))
		body, err := json.Marshal(week.Days)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var exportCmd = &cobra.Command{
	Use:   "export <group> [--out <path>] [--db <path>]",
	Short: "Writes the stored schedule of a group as portal JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, store, err := openStore(*exportDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		group, err := resolveGroup(cmd.Context(), store, args[0])
		if err != nil {
			serviceutil.Fatal("failed to resolve group", err)
		}

		weeks, err := store.GetGroupSchedule(cmd.Context(), group.ID)
		if err != nil {
			serviceutil.Fatal("failed to read schedule", err)
		}
		lastUpdated, err := store.GetGroupLastUpdated(cmd.Context(), group.ID)
		if err != nil {
			serviceutil.Fatal("failed to read last update time", err)
		}

		out := exportSchedule{
			Group:       group.Name,
			GroupID:     group.ID,
			LastUpdated: lastUpdated.Format("2006-01-02 15:04:05"),
			Weeks:       orderedWeeks(weeks),
		}

		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode schedule", err)
		}

		path := *exportOut
		if path == "" {
			path = fmt.Sprintf("schedule_%s.json", textutil.SanitizeFilename(group.Name))
		}
		err = os.WriteFile(path, encoded, 0666)
		if err != nil {
			serviceutil.Fatal("failed to write schedule", err)
		}

		slog.Info("schedule exported", "group", group.Name, "weeks", len(weeks), "path", path)
	},
}
