package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/satyammistari/sql2migration/internal/migration"
	"github.com/satyammistari/sql2migration/internal/schema"
)

const dump = "CREATE TABLE `ci4ms_users` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;\n" +
	"CREATE TABLE `ci4ms_posts` (`id` int(11) NOT NULL, `user_id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;\n" +
	"ALTER TABLE `ci4ms_posts` ADD CONSTRAINT `fk_p` FOREIGN KEY (`user_id`) REFERENCES `ci4ms_users` (`id`);\n" +
	"CREATE TRIGGER `audit` AFTER DELETE ON `ci4ms_users` FOR EACH ROW DELETE FROM ci4ms_posts WHERE user_id = OLD.id;\n"

func newTestModel(t *testing.T, write func() ([]string, error)) Model {
	t.Helper()
	res, err := schema.ParseSchema(dump, "ci4ms_")
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	files, err := migration.NewRenderer("").RenderSet(res.Set, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RenderSet: %v", err)
	}
	m := NewModel(Options{SourcePath: "dump.sql", Source: dump, Result: res, Files: files, Write: write})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel(t, nil)
	tests := []struct {
		keys []string
		want Tab
	}{
		{[]string{"tab"}, TabSource},
		{[]string{"tab", "tab", "tab", "tab"}, TabOperations},
		{[]string{"3"}, TabHistory},
		{[]string{"4"}, TabHelp},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, "+"), func(t *testing.T) {
			if got := press(t, m, tt.keys...).ActiveTab; got != tt.want {
				t.Errorf("ActiveTab = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnterRendersSelectedOperation(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "j", "j", "enter")

	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	if !strings.Contains(m.StatusMsg, "AddForeignKeys") {
		t.Errorf("StatusMsg = %q", m.StatusMsg)
	}
	if !strings.Contains(m.View(), "addForeignKey(") {
		t.Error("view does not show the rendered migration")
	}

	m = press(t, m, "esc")
	if m.Selected != -1 {
		t.Errorf("Selected = %d after esc, want -1", m.Selected)
	}
}

func TestCursorBounds(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	m = press(t, m, "G", "j")
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d, want 3", m.Cursor)
	}
}

func TestFilter(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "/", "p", "o", "s", "t", "enter")
	if m.Filter.Focused() {
		t.Error("filter still focused after enter")
	}
	got := m.Visible()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("Visible = %v, want [1]", got)
	}
	m = press(t, m, "enter")
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestWrite(t *testing.T) {
	calls := 0
	m := newTestModel(t, func() ([]string, error) {
		calls++
		return []string{"a.php", "b.php"}, nil
	})

	next, cmd := press(t, m).startWrite()
	if !next.IsWriting || cmd == nil {
		t.Fatal("write did not start")
	}
	updated, _ := next.Update(writtenMsg{paths: []string{"a.php", "b.php"}})
	m = updated.(Model)
	if m.IsWriting || len(m.Written) != 2 || m.StatusKind != "success" {
		t.Errorf("after write: writing=%v written=%v status=%q", m.IsWriting, m.Written, m.StatusMsg)
	}

	m = press(t, m, "w")
	if m.IsWriting || m.StatusKind != "warning" {
		t.Errorf("second write should be refused, status=%q", m.StatusMsg)
	}

	updated, _ = m.Update(errMsg{err: errors.New("disk full")})
	if got := updated.(Model).StatusMsg; !strings.Contains(got, "disk full") {
		t.Errorf("StatusMsg = %q", got)
	}
}

func TestWriteResult(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		err        error
		wantKind   string
		wantStatus string
		written    int
	}{
		{"written", []string{"a.php"}, nil, "success", "Wrote 1 migration files", 1},
		{"written but not recorded", []string{"a.php", "b.php"}, errors.New("history not recorded: locked"), "warning", "history not recorded: locked", 2},
		{"nothing written", nil, errors.New("disk full"), "error", "disk full", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, nil)
			m.IsWriting = true
			updated, _ := m.Update(writeResult(tt.paths, tt.err))
			m = updated.(Model)
			if m.IsWriting {
				t.Error("still writing")
			}
			if m.StatusKind != tt.wantKind || !strings.Contains(m.StatusMsg, tt.wantStatus) {
				t.Errorf("status = %q (%s), want %q (%s)", m.StatusMsg, m.StatusKind, tt.wantStatus, tt.wantKind)
			}
			if len(m.Written) != tt.written {
				t.Errorf("Written = %v", m.Written)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
