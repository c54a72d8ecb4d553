package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/satyammistari/sql2migration/internal/reporter"
	"github.com/satyammistari/sql2migration/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.sql>",
	Short: "Re-run the conversion every time the SQL file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("write", false, "write migrations on every change (default: dry run)")
	watchCmd.Flags().Duration("debounce", watcher.DefaultDebounce, "quiet period before re-running")
}

func runWatch(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	debounce, _ := cmd.Flags().GetDuration("debounce")
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	once := func(ctx context.Context) error {
		reporter.Info(time.Now().Format("15:04:05") + "  converting " + path)
		return convertOnce(cmd, path, !write)
	}
	if err := once(ctx); err != nil {
		reporter.Err(err.Error())
	}

	w := &watcher.Watcher{
		Path:     path,
		Debounce: debounce,
		Run:      once,
		OnError:  func(err error) { reporter.Err(err.Error()) },
	}
	reporter.Info("  watching " + path + " (Ctrl+C to stop)")
	if err := w.Start(ctx); err != nil {
		return err
	}
	reporter.Info("  stopped")
	return nil
}
