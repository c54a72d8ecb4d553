package schema

import (
	"fmt"
	"regexp"
	"strings"
)

var delimiterDirectiveRe = regexp.MustCompile(`(?i)DELIMITER\s+\S+\s*`)

// ParseTriggers extracts every CREATE TRIGGER statement of sql in source
// order. The body is rebuilt from the matched parts with DELIMITER
// directives removed and alternate terminators replaced by ";". The owner
// table keeps its raw name; Assemble rewrites it.
func ParseTriggers(sql string) []Trigger {
	delims := Delimiters(sql)
	var out []Trigger
	for _, s := range FindTriggers(sql) {
		body := fmt.Sprintf("CREATE TRIGGER `%s` %s %s ON `%s` FOR EACH ROW %s",
			s.Name, s.Timing, s.Event, s.RawTable, s.Action)
		out = append(out, Trigger{
			Name:   s.Name,
			Timing: s.Timing,
			Event:  s.Event,
			Table:  s.RawTable,
			Body:   normalizeTriggerBody(body, delims),
		})
	}
	return out
}

func normalizeTriggerBody(body string, delims []string) string {
	body = delimiterDirectiveRe.ReplaceAllString(body, "")
	for _, d := range delims {
		body = strings.ReplaceAll(body, d, ";")
	}
	body = strings.TrimRight(strings.TrimSpace(body), ";")
	return strings.TrimSpace(body) + ";"
}

// rewriteTriggerTable replaces the backtick-quoted raw owner table name in a
// trigger body with its normalized form.
func rewriteTriggerTable(t Trigger, prefix string) Trigger {
	clean := Normalize(t.Table, prefix)
	if clean != t.Table {
		t.Body = strings.ReplaceAll(t.Body, "`"+t.Table+"`", "`"+clean+"`")
	}
	return t
}
