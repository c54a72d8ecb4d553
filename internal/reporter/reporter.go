// Package reporter prints status lines, diagnostics and tables to the
// terminal.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/satyammistari/sql2migration/internal/schema"
)

var (
	// NoColor disables styling.
	NoColor = false
	// Verbose enables Debug output.
	Verbose = false

	// ErrOut receives status lines; Out receives tables.
	ErrOut io.Writer = os.Stderr
	Out    io.Writer = os.Stdout
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headStyle  = lipgloss.NewStyle().Bold(true)
)

func paint(s lipgloss.Style, text string) string {
	if NoColor {
		return text
	}
	return s.Render(text)
}

// Ok prints a green check message.
func Ok(msg string) {
	fmt.Fprintf(ErrOut, "  %s %s\n", paint(okStyle, "✓"), msg)
}

// Info prints an info line.
func Info(msg string) {
	fmt.Fprintln(ErrOut, msg)
}

// Warn prints a yellow warning.
func Warn(msg string) {
	fmt.Fprintf(ErrOut, "  %s %s\n", paint(warnStyle, "⚠"), msg)
}

// Err prints a red error.
func Err(msg string) {
	fmt.Fprintf(ErrOut, "  %s %s\n", paint(errStyle, "✗"), msg)
}

// Debug prints msg only when Verbose is set.
func Debug(msg string) {
	if !Verbose {
		return
	}
	fmt.Fprintf(ErrOut, "  %s\n", paint(debugStyle, "· "+msg))
}

// Diagnostics prints parser diagnostics. Summaries are debug output;
// everything else is a warning.
func Diagnostics(diags []schema.Diagnostic) {
	for _, d := range diags {
		if d.IsWarning() {
			Warn(d.String())
			continue
		}
		Debug(d.String())
	}
}

// Table prints an ASCII table to Out. Widths are terminal columns; cells
// wider than 40 columns are truncated.
func Table(columns []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	const maxWidth = 40
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				widths[i] = max(widths[i], min(runewidth.StringWidth(row[i]), maxWidth))
			}
		}
	}

	sep := "+"
	for _, w := range widths {
		sep += strings.Repeat("-", w+2) + "+"
	}
	fmt.Fprintln(Out, sep)
	header := "|"
	for i, col := range columns {
		header += " " + paint(headStyle, pad(col, widths[i])) + " |"
	}
	fmt.Fprintln(Out, header)
	fmt.Fprintln(Out, sep)
	for _, row := range rows {
		line := "|"
		for i := range columns {
			var s string
			if i < len(row) {
				s = row[i]
			}
			line += " " + pad(s, widths[i]) + " |"
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintln(Out, sep)
}

// pad truncates s to w columns on a rune boundary, or right-pads it with
// spaces.
func pad(s string, w int) string {
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "...")
	}
	return runewidth.FillRight(s, w)
}
