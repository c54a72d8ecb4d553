package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/satyammistari/sql2migration/internal/schema"
)

func TestObserve(t *testing.T) {
	res, err := schema.ParseSchema(
		"CREATE TABLE `users` (`id` int(11) NOT NULL) ENGINE=InnoDB;\n"+
			"CREATE TABLE `posts` (`id` int(11) NOT NULL) ENGINE=InnoDB;\n", "")
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}

	m := New()
	m.Observe(res, 5*time.Millisecond)
	m.Observe(res, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.Runs); got != 2 {
		t.Errorf("runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Operations.WithLabelValues("create_table")); got != 4 {
		t.Errorf("create_table ops = %v, want 4", got)
	}
	// No ALTER and no trigger: one no_match each per run.
	if got := testutil.ToFloat64(m.Diagnostics.WithLabelValues(schema.NoMatch.String())); got != 4 {
		t.Errorf("no_match diagnostics = %v, want 4", got)
	}
	if testutil.ToFloat64(m.LastRun) == 0 {
		t.Error("last run timestamp not set")
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(nil, time.Millisecond)

	path := filepath.Join(t.TempDir(), "sql2migration.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "sql2migration_runs_total 1") {
		t.Errorf("textfile missing runs counter:\n%s", data)
	}
}
