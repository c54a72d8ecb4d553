package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/satyammistari/sql2migration/internal/history"
	"github.com/satyammistari/sql2migration/internal/metrics"
	"github.com/satyammistari/sql2migration/internal/migration"
	"github.com/satyammistari/sql2migration/internal/reporter"
	"github.com/satyammistari/sql2migration/internal/schema"
	"github.com/satyammistari/sql2migration/internal/validator"
)

var stats = metrics.New()

// conversion is one parsed and rendered SQL file.
type conversion struct {
	Path   string
	SQL    string
	Result *schema.Result
	Files  []migration.File
}

// convertFile reads path, parses it, adds consistency warnings and renders
// the migrations. Unreadable or blank input is a *schema.InputError.
func convertFile(path string) (*conversion, error) {
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return nil, &schema.InputError{Source: path, Err: err}
	}

	start := time.Now()
	res, err := schema.ParseSchema(string(data), cfg.Prefix)
	if err != nil {
		var ie *schema.InputError
		if errors.As(err, &ie) && ie.Source == "" {
			ie.Source = path
		}
		stats.Observe(nil, time.Since(start))
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, validator.Validate(res.Set)...)
	stats.Observe(res, time.Since(start))

	files, err := migration.NewRenderer(cfg.Namespace).RenderSet(res.Set, time.Now())
	if err != nil {
		return nil, err
	}
	return &conversion{Path: path, SQL: string(data), Result: res, Files: files}, nil
}

// write writes the rendered migrations into the configured directory.
func (c *conversion) write() ([]string, error) {
	return migration.NewWriter(appFs, cfg.MigrationPath).Write(c.Files)
}

// record stores the run in the history database and flushes metrics.
// Failures come back joined; callers report them as warnings since the
// migrations already exist at this point.
func (c *conversion) record(ctx context.Context, written int, dryRun bool) error {
	var errs []error
	if cfg.HistoryDSN != "" {
		if err := recordRun(ctx, c, written, dryRun); err != nil {
			errs = append(errs, fmt.Errorf("history not recorded: %w", err))
		}
	}
	if cfg.MetricsFile != "" {
		if err := stats.WriteTextfile(cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func recordRun(ctx context.Context, c *conversion, written int, dryRun bool) error {
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, history.Run{
		Source:      c.Path,
		Prefix:      cfg.Prefix,
		Tables:      len(c.Result.Set.Tables()),
		ForeignKeys: len(c.Result.Set.ForeignKeys()),
		Triggers:    len(c.Result.Set.Triggers()),
		Files:       written,
		Warnings:    len(c.Result.Warnings()),
		DryRun:      dryRun,
	})
	return err
}

// warnRecord prints a record failure on the terminal.
func warnRecord(err error) {
	if err != nil {
		reporter.Warn(err.Error())
	}
}

func openHistory(ctx context.Context) (*history.Store, error) {
	store, err := history.Open(ctx, cfg.HistoryDSN)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
