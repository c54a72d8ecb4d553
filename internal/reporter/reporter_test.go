package reporter

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/satyammistari/sql2migration/internal/schema"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr, prevColor, prevVerbose := Out, ErrOut, NoColor, Verbose
	Out, ErrOut, NoColor = &out, &errOut, true
	t.Cleanup(func() {
		Out, ErrOut, NoColor, Verbose = prevOut, prevErr, prevColor, prevVerbose
	})
	return &out, &errOut
}

func TestDiagnostics(t *testing.T) {
	_, errOut := capture(t)
	diags := []schema.Diagnostic{
		{Kind: schema.NoMatch, Category: schema.CategoryTriggers, Message: "no valid trigger statement was found"},
		{Kind: schema.Summary, Category: schema.CategoryForeignKeys, Message: "2 ALTER TABLE statements"},
	}

	Verbose = false
	Diagnostics(diags)
	got := errOut.String()
	if !strings.Contains(got, "⚠") || !strings.Contains(got, "no valid trigger statement") {
		t.Errorf("warning not printed: %q", got)
	}
	if strings.Contains(got, "ALTER TABLE statements") {
		t.Errorf("summary printed without verbose: %q", got)
	}

	errOut.Reset()
	Verbose = true
	Diagnostics(diags)
	if !strings.Contains(errOut.String(), "2 ALTER TABLE statements") {
		t.Errorf("summary missing in verbose mode: %q", errOut.String())
	}
}

func TestTable(t *testing.T) {
	out, _ := capture(t)
	long := strings.Repeat("x", 50)
	Table([]string{"kind", "subject"}, [][]string{
		{"create_table", "users"},
		{"create_trigger", long},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	for _, l := range lines[1:] {
		if len(l) != len(lines[0]) {
			t.Errorf("ragged line %q", l)
		}
	}
	if !strings.Contains(out.String(), strings.Repeat("x", 37)+"...") {
		t.Errorf("long cell not truncated:\n%s", out)
	}
}

func TestTableMultibyte(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "arrow cells",
			rows: [][]string{{"add_foreign_keys", "posts.user_id→users.id"}, {"create_table", "users"}},
			want: "posts.user_id→users.id",
		},
		{
			name: "truncated on rune boundary",
			rows: [][]string{{"add_foreign_keys", strings.Repeat("é→", 30)}},
			want: "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := capture(t)
			Table([]string{"kind", "subject"}, tt.rows)

			if !utf8.ValidString(out.String()) {
				t.Fatalf("output is not valid UTF-8: %q", out)
			}
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			want := runewidth.StringWidth(lines[0])
			for _, l := range lines[1:] {
				if w := runewidth.StringWidth(l); w != want {
					t.Errorf("line %q is %d columns wide, want %d", l, w, want)
				}
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestTableEmpty(t *testing.T) {
	out, _ := capture(t)
	Table([]string{"a"}, nil)
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out)
	}
}
