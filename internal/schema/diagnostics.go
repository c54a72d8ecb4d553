package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the SQL text is blank.
var ErrEmptyInput = errors.New("sql input is empty")

// InputError reports that the SQL text could not be obtained. It is the only
// error that aborts a parse run.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("read sql: %v", e.Err)
	}
	return fmt.Sprintf("read sql %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// DiagnosticKind classifies a non-fatal finding of a parse run.
type DiagnosticKind int

const (
	// NoMatch: a statement category had zero matches.
	NoMatch DiagnosticKind = iota
	// PartialParse: statements of a category were found but some could not
	// be extracted; the affected rows are left out of the result.
	PartialParse
	// Summary: informational counts, never a problem on its own.
	Summary
)

func (k DiagnosticKind) String() string {
	switch k {
	case NoMatch:
		return "no_match"
	case PartialParse:
		return "partial_parse"
	case Summary:
		return "summary"
	}
	return "unknown"
}

// MarshalText lets encoders print the kind by name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category is the statement category a diagnostic refers to.
type Category string

const (
	CategoryTables      Category = "tables"
	CategoryForeignKeys Category = "foreign_keys"
	CategoryTriggers    Category = "triggers"
)

// Diagnostic is one entry of the diagnostics channel.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Category Category       `json:"category" yaml:"category"`
	Message  string         `json:"message" yaml:"message"`
}

// IsWarning reports whether the diagnostic deserves operator attention.
func (d Diagnostic) IsWarning() bool {
	return d.Kind != Summary
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s/%s: %s", d.Category, d.Kind, d.Message)
}

// Warnings filters diags down to the warning entries.
func Warnings(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.IsWarning() {
			out = append(out, d)
		}
	}
	return out
}
