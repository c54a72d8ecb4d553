package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satyammistari/sql2migration/internal/reporter"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	ctx := cmd.Context()

	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		reporter.Info("  No runs recorded yet.")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		mode := "write"
		if r.DryRun {
			mode = "dry-run"
		}
		rows[i] = []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			r.Prefix,
			strconv.Itoa(r.Tables),
			strconv.Itoa(r.ForeignKeys),
			strconv.Itoa(r.Triggers),
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Warnings),
			mode,
			shortID(r.ID),
		}
	}
	reporter.Table([]string{"time", "source", "prefix", "tables", "fks", "triggers", "files", "warnings", "mode", "id"}, rows)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
