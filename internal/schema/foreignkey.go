package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultAction is used for ON DELETE / ON UPDATE when the clause is absent.
const DefaultAction = "CASCADE"

const referentialAction = `SET\s+NULL|NO\s+ACTION|CASCADE|RESTRICT|SET\s+DEFAULT`

var foreignKeyClauseRe = regexp.MustCompile(`(?is)\bADD\s*(?:CONSTRAINT\s*` + ident + `\s*)?FOREIGN\s+KEY\s*(?:` + identNC + `\s*)?\(\s*` + ident + `\s*\)\s*REFERENCES\s*` + ident + `\s*\(\s*` + ident + `\s*\)` +
	`(?:\s*ON\s+(DELETE|UPDATE)\s+(` + referentialAction + `))?` +
	`(?:\s*ON\s+(DELETE|UPDATE)\s+(` + referentialAction + `))?`)

// ForeignKeyStats compares what the ALTER TABLE scan saw with what it parsed.
type ForeignKeyStats struct {
	Statements int // ALTER TABLE statements found
	Clauses    int // FOREIGN KEY clauses inside those statements
	Parsed     int // foreign keys extracted
}

// Mismatch reports whether some FOREIGN KEY clauses could not be extracted.
func (s ForeignKeyStats) Mismatch() bool {
	return s.Clauses > s.Parsed
}

// ParseForeignKeys extracts the foreign keys added by ALTER TABLE statements
// in source order. A missing constraint name is synthesized as
// fk_<table>_<column>_<index>, where index is the zero-based position of the
// foreign key among all matches of the scan.
func ParseForeignKeys(sql, prefix string) ([]ForeignKey, ForeignKeyStats) {
	var (
		fks   []ForeignKey
		stats ForeignKeyStats
	)
	index := 0
	for _, stmt := range FindAlterStatements(sql) {
		stats.Statements++
		stats.Clauses += countKeyword(foreignKeyKeywordRe, stmt.Text)
		for _, m := range foreignKeyClauseRe.FindAllStringSubmatch(stmt.Text, -1) {
			fk := ForeignKey{
				RawTable:         stmt.RawTable,
				Table:            Normalize(stmt.RawTable, prefix),
				Constraint:       m[1],
				Column:           m[2],
				ReferencedTable:  Normalize(m[3], prefix),
				ReferencedColumn: m[4],
				OnDelete:         DefaultAction,
				OnUpdate:         DefaultAction,
			}
			applyAction(&fk, m[5], m[6])
			applyAction(&fk, m[7], m[8])
			if fk.Constraint == "" {
				fk.Constraint = fmt.Sprintf("fk_%s_%s_%d", fk.Table, fk.Column, index)
			}
			fks = append(fks, fk)
			index++
		}
	}
	stats.Parsed = len(fks)
	return fks, stats
}

func applyAction(fk *ForeignKey, event, action string) {
	if event == "" {
		return
	}
	action = strings.ToUpper(strings.Join(strings.Fields(action), " "))
	switch strings.ToUpper(event) {
	case "DELETE":
		fk.OnDelete = action
	case "UPDATE":
		fk.OnUpdate = action
	}
}
