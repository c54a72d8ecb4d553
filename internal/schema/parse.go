package schema

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Result is the output of ParseSchema: the operation set plus the
// diagnostics collected on the way.
type Result struct {
	Set         *OperationSet `json:"set" yaml:"set"`
	Diagnostics []Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
}

// Warnings returns the diagnostics that need operator attention.
func (r *Result) Warnings() []Diagnostic {
	return Warnings(r.Diagnostics)
}

// ParseSchema converts a SQL script into an ordered OperationSet. Table
// names are normalized by stripping prefix.
//
// Blank input is an *InputError. Every other anomaly, including a script
// without a single recognized statement, yields a (possibly empty) set and
// diagnostics.
func ParseSchema(sql, prefix string) (*Result, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, &InputError{Err: ErrEmptyInput}
	}

	var (
		tables   []Table
		fks      []ForeignKey
		fkStats  ForeignKeyStats
		triggers []Trigger
	)
	// The three extractions only read sql, so they run side by side.
	var g errgroup.Group
	g.Go(func() error {
		tables = ParseTables(sql, prefix)
		return nil
	})
	g.Go(func() error {
		fks, fkStats = ParseForeignKeys(sql, prefix)
		return nil
	})
	g.Go(func() error {
		triggers = ParseTriggers(sql)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diags []Diagnostic
	diags = append(diags, tableDiagnostics(sql, len(tables))...)
	diags = append(diags, foreignKeyDiagnostics(fkStats)...)
	diags = append(diags, triggerDiagnostics(sql, len(triggers))...)

	return &Result{
		Set:         Assemble(tables, fks, triggers, prefix),
		Diagnostics: diags,
	}, nil
}

func tableDiagnostics(sql string, parsed int) []Diagnostic {
	return statementDiagnostics(CategoryTables, "CREATE TABLE",
		countKeyword(createTableKeywordRe, sql), parsed)
}

func foreignKeyDiagnostics(stats ForeignKeyStats) []Diagnostic {
	var diags []Diagnostic
	if stats.Statements > 0 {
		diags = append(diags, Diagnostic{
			Kind:     Summary,
			Category: CategoryForeignKeys,
			Message: fmt.Sprintf("found %d ALTER TABLE statements with %d FOREIGN KEY clauses, parsed %d foreign keys",
				stats.Statements, stats.Clauses, stats.Parsed),
		})
	}
	if stats.Parsed == 0 {
		diags = append(diags, Diagnostic{
			Kind:     NoMatch,
			Category: CategoryForeignKeys,
			Message:  "no foreign key (FOREIGN KEY) was found",
		})
	}
	if stats.Mismatch() {
		diags = append(diags, Diagnostic{
			Kind:     PartialParse,
			Category: CategoryForeignKeys,
			Message:  fmt.Sprintf("%d of %d FOREIGN KEY clauses did not match the expected pattern", stats.Clauses-stats.Parsed, stats.Clauses),
		})
	}
	return diags
}

func triggerDiagnostics(sql string, parsed int) []Diagnostic {
	return statementDiagnostics(CategoryTriggers, "CREATE TRIGGER",
		countKeyword(createTriggerKeywordRe, sql), parsed)
}

// statementDiagnostics reports a category with no parsed statement as
// NoMatch, and keyword occurrences that outnumber parsed statements as
// PartialParse.
func statementDiagnostics(cat Category, keyword string, seen, parsed int) []Diagnostic {
	var diags []Diagnostic
	if parsed == 0 {
		diags = append(diags, Diagnostic{
			Kind:     NoMatch,
			Category: cat,
			Message:  fmt.Sprintf("no valid %s statement was found", keyword),
		})
	}
	if seen > parsed {
		diags = append(diags, Diagnostic{
			Kind:     PartialParse,
			Category: cat,
			Message:  fmt.Sprintf("found %d %s statements, parsed %d", seen, keyword, parsed),
		})
	}
	return diags
}
