package commands

import (
	"context"
	"courseportal-backend/lib/sqliteutil"
	"courseportal-backend/lib/textutil"
	"courseportal-backend/services/schedule"
	scheduledb "courseportal-backend/services/schedule/db"
	"database/sql"
	"fmt"

	"github.com/antzucaro/matchr"
	"github.com/spf13/cobra"
)

// similarity below which a fuzzy group match is rejected
const groupMatchThreshold = 0.85

func openStore(path string) (*sql.DB, schedule.Service, error) {
	database, err := sqliteutil.OpenDB(scheduledb.Schema, path)
	if err != nil {
		return nil, schedule.Service{}, err
	}
	return database, schedule.NewService(database), nil
}

// resolveGroup finds the stored group best matching a user-typed name,
// exact (normalized) match first, closest JaroWinkler otherwise.
func resolveGroup(ctx context.Context, store schedule.Service, query string) (schedule.Group, error) {
	groups, err := store.ListGroups(ctx)
	if err != nil {
		return schedule.Group{}, err
	}
	if len(groups) == 0 {
		return schedule.Group{}, fmt.Errorf("no groups stored, run a scrape first")
	}

	normalized := textutil.NormalizeName(query)

	var best schedule.Group
	var bestScore float64
	for _, g := range groups {
		name := textutil.NormalizeName(g.Name)
		if name == normalized {
			return g, nil
		}
		score := matchr.JaroWinkler(normalized, name, false)
		if score > bestScore {
			bestScore = score
			best = g
		}
	}

	if bestScore < groupMatchThreshold {
		return schedule.Group{}, fmt.Errorf("no group matching %q", query)
	}
	return best, nil
}

func init() {
	groupsDb = groupsCmd.Flags().String("db", "portal.db", "The database to read from.")
	rootCmd.AddCommand(groupsCmd)
}

var groupsDb *string

var groupsCmd = &cobra.Command{
	Use:   "groups [--db <path>]",
	Short: "Lists every group with a stored schedule.",
	Run: func(cmd *cobra.Command, args []string) {
		database, store, err := openStore(*groupsDb)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		defer database.Close()

		groups, err := store.ListGroups(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		for _, g := range groups {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", g.ID, g.Name)
		}
	},
}
