package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satyammistari/sql2migration/internal/history"
	"github.com/satyammistari/sql2migration/internal/reporter"
	"github.com/satyammistari/sql2migration/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui <file.sql>",
	Short: "Browse the conversion of a SQL dump in an interactive terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().Int("history-limit", 20, "runs shown in the History tab")
}

func runUI(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("history-limit")
	ctx := cmd.Context()

	conv, err := convertFile(args[0])
	if err != nil {
		return err
	}

	var runs []history.Run
	if cfg.HistoryDSN != "" {
		if store, err := openHistory(ctx); err != nil {
			reporter.Warn(fmt.Sprintf("history unavailable: %v", err))
		} else {
			runs, err = store.List(ctx, limit)
			store.Close()
			if err != nil {
				reporter.Warn(fmt.Sprintf("history unavailable: %v", err))
			}
		}
	}

	return tui.Run(tui.Options{
		SourcePath: conv.Path,
		Source:     conv.SQL,
		Result:     conv.Result,
		Files:      conv.Files,
		History:    runs,
		Write: func() ([]string, error) {
			paths, err := conv.write()
			if err != nil {
				return nil, err
			}
			return paths, conv.record(ctx, len(paths), false)
		},
	})
}
