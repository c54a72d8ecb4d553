package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/satyammistari/sql2migration/internal/history"
	"github.com/satyammistari/sql2migration/internal/migration"
	"github.com/satyammistari/sql2migration/internal/schema"
)

type Tab int

const (
	TabOperations Tab = iota
	TabSource
	TabHistory
	TabHelp
	tabCount
)

func (t Tab) String() string {
	return []string{
		" Operations ",
		" Source ",
		" History ",
		" Help ",
	}[t]
}

// Options is everything the browser shows. Files must be the rendering of
// Result.Set, one file per operation in the same order.
type Options struct {
	SourcePath string
	Source     string
	Result     *schema.Result
	Files      []migration.File
	History    []history.Run
	// Write writes Files to disk and returns the created paths. An error
	// returned along with paths is shown as a warning. Nil disables
	// writing.
	Write func() ([]string, error)
}

type Model struct {
	ActiveTab Tab
	Width     int
	Height    int
	Opts      Options

	Filter   textinput.Model
	Cursor   int
	Selected int // index into Opts.Files, -1 when nothing is open
	Detail   viewport.Model
	Source   viewport.Model
	Spinner  spinner.Model

	IsWriting  bool
	Written    []string
	StatusMsg  string
	StatusKind string
}

func NewModel(opts Options) Model {
	filter := textinput.New()
	filter.Placeholder = "filter operations"
	filter.Prompt = "/ "
	filter.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	src := viewport.New(80, 20)
	src.SetContent(opts.Source)

	m := Model{
		ActiveTab:  TabOperations,
		Opts:       opts,
		Filter:     filter,
		Selected:   -1,
		Detail:     viewport.New(60, 20),
		Source:     src,
		Spinner:    s,
		StatusMsg:  "Ready → Enter opens a migration, w writes all files",
		StatusKind: "info",
	}
	if warns := m.warnings(); len(warns) > 0 {
		m.StatusMsg = warns[0].String()
		m.StatusKind = "warning"
	}
	return m
}

// Visible returns the indices of operations that match the filter.
func (m Model) Visible() []int {
	if m.Opts.Result == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(m.Filter.Value()))
	var out []int
	for i, op := range m.Opts.Result.Set.Operations {
		if q == "" ||
			strings.Contains(strings.ToLower(op.Subject()), q) ||
			strings.Contains(op.Kind.String(), q) {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) warnings() []schema.Diagnostic {
	if m.Opts.Result == nil {
		return nil
	}
	return m.Opts.Result.Warnings()
}

func (m Model) selectedFile() (migration.File, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Opts.Files) {
		return migration.File{}, false
	}
	return m.Opts.Files[m.Selected], true
}

func (m Model) opsList() []schema.Operation {
	if m.Opts.Result == nil {
		return nil
	}
	return m.Opts.Result.Set.Operations
}
