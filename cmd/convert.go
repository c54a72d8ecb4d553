package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satyammistari/sql2migration/internal/reporter"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.sql>",
	Short: "Generate migration files from a SQL dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().Bool("dry-run", false, "render migrations without writing them")
}

func runConvert(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return convertOnce(cmd, args[0], dryRun)
}

// convertOnce runs one conversion of path and reports it.
func convertOnce(cmd *cobra.Command, path string, dryRun bool) error {
	conv, err := convertFile(path)
	if err != nil {
		return err
	}
	reporter.Diagnostics(conv.Result.Diagnostics)

	if conv.Result.Set.Empty() {
		reporter.Warn("nothing to convert in " + path)
		warnRecord(conv.record(cmd.Context(), 0, dryRun))
		return nil
	}

	if dryRun {
		for _, f := range conv.Files {
			reporter.Info(fmt.Sprintf("  would write %s", filepath.Join(cfg.MigrationPath, f.Name)))
		}
		reporter.Info(fmt.Sprintf("\n  Dry run → %d migrations rendered, nothing written.", len(conv.Files)))
		warnRecord(conv.record(cmd.Context(), 0, true))
		return nil
	}

	paths, err := conv.write()
	if err != nil {
		return err
	}
	for i, p := range paths {
		op := conv.Files[i].Op
		reporter.Ok(fmt.Sprintf("%s %s → %s", op.Kind, op.Subject(), p))
	}
	reporter.Info(fmt.Sprintf("\n  %d migrations written to %s", len(paths), cfg.MigrationPath))
	warnRecord(conv.record(cmd.Context(), len(paths), false))
	return nil
}
