package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// writtenMsg reports written files. warn is a follow-up failure, such as
// the run not being recorded, that left the files in place.
type writtenMsg struct {
	paths []string
	warn  error
}
type errMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		h := max(msg.Height-12, 5)
		m.Detail.Width = max(msg.Width-m.listWidth()-10, 20)
		m.Detail.Height = h
		m.Source.Width = max(msg.Width-8, 20)
		m.Source.Height = h
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Filter.Focused() {
			return m.handleFilterKey(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if next, ok := m.switchTab(msg.String()); ok {
			m.ActiveTab = next
			return m, nil
		}
		switch m.ActiveTab {
		case TabOperations:
			return m.handleOperationsKey(msg)
		case TabSource:
			var cmd tea.Cmd
			m.Source, cmd = m.Source.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case writtenMsg:
		m.IsWriting = false
		m.Written = msg.paths
		m.StatusMsg = fmt.Sprintf("✓ Wrote %d migration files", len(msg.paths))
		m.StatusKind = "success"
		if msg.warn != nil {
			m.StatusMsg += fmt.Sprintf("  ⚠ %v", msg.warn)
			m.StatusKind = "warning"
		}

	case errMsg:
		m.IsWriting = false
		m.StatusMsg = fmt.Sprintf("✗ %v", msg.err)
		m.StatusKind = "error"
	}

	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(key string) (Tab, bool) {
	switch key {
	case "tab":
		return (m.ActiveTab + 1) % tabCount, true
	case "shift+tab":
		return (m.ActiveTab + tabCount - 1) % tabCount, true
	case "1", "2", "3", "4":
		return Tab(key[0] - '1'), true
	}
	return m.ActiveTab, false
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.Filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.Cursor = 0
	return m, cmd
}

func (m Model) handleOperationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.Visible()
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "g":
		m.Cursor = 0
	case "G":
		if len(visible) > 0 {
			m.Cursor = len(visible) - 1
		}
	case "/":
		m.Filter.Focus()
		return m, nil
	case "esc":
		m.Selected = -1
	case "enter":
		if m.Cursor < len(visible) {
			m.Selected = visible[m.Cursor]
			if f, ok := m.selectedFile(); ok {
				m.Detail.SetContent(f.Content)
				m.Detail.GotoTop()
				m.StatusMsg = f.Name
				m.StatusKind = "info"
			}
		}
	case "pgdown", "pgup", "ctrl+d", "ctrl+u":
		var cmd tea.Cmd
		m.Detail, cmd = m.Detail.Update(msg)
		return m, cmd
	case "w":
		return m.startWrite()
	}
	return m, nil
}

func (m Model) startWrite() (Model, tea.Cmd) {
	if m.IsWriting || m.Opts.Write == nil {
		return m, nil
	}
	if len(m.Written) > 0 {
		m.StatusMsg = "Migrations already written"
		m.StatusKind = "warning"
		return m, nil
	}
	if len(m.Opts.Files) == 0 {
		m.StatusMsg = "Nothing to write"
		m.StatusKind = "warning"
		return m, nil
	}
	m.IsWriting = true
	m.StatusMsg = "Writing migrations..."
	m.StatusKind = "info"

	write := m.Opts.Write
	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		return writeResult(write())
	})
}

// writeResult maps the outcome of Options.Write to a message. An error
// that comes with paths is a warning: the files were written.
func writeResult(paths []string, err error) tea.Msg {
	if err != nil && len(paths) == 0 {
		return errMsg{err: err}
	}
	return writtenMsg{paths: paths, warn: err}
}
