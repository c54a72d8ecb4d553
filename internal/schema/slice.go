package schema

import (
	"regexp"
	"sort"
	"strings"
)

// ident matches an identifier that may be wrapped in backticks and captures
// the bare name. identNC is the non-capturing form.
const (
	ident   = "`?(\\w+)`?"
	identNC = "`?\\w+`?"
)

var (
	createTableRe = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` + ident + `\s*\((.*?)\)\s*(?:ENGINE|;)`)
	alterTableRe  = regexp.MustCompile(`(?is)ALTER\s+TABLE\s+` + ident + `(.*?)(?:;|\z)`)
	delimiterRe   = regexp.MustCompile(`(?im)^[ \t]*DELIMITER[ \t]+(\S+)`)

	createTableKeywordRe   = regexp.MustCompile(`(?i)\bCREATE\s+TABLE\b`)
	createTriggerKeywordRe = regexp.MustCompile(`(?i)\bCREATE\s+(?:DEFINER\s*=\s*\S+\s+)?TRIGGER\b`)
	foreignKeyKeywordRe    = regexp.MustCompile(`(?i)\bFOREIGN\s+KEY\b`)
)

// TableSlice is the raw text of one CREATE TABLE statement.
type TableSlice struct {
	RawName string
	Body    string // column and constraint block between the outer parentheses
}

// AlterSlice is the raw text of one ALTER TABLE statement.
type AlterSlice struct {
	RawTable string
	Text     string
}

// TriggerSlice is the raw text of one CREATE TRIGGER statement split into
// its header parts and the row action.
type TriggerSlice struct {
	Name     string
	Timing   string
	Event    string
	RawTable string
	Action   string // BEGIN ... END block or single statement, without terminator
	Text     string
}

// FindTables returns every CREATE TABLE statement in source order. The body
// is captured lazily up to the first ")" followed by ENGINE or ";", so a
// parenthesized default containing a literal ")" ends the body early.
func FindTables(sql string) []TableSlice {
	var out []TableSlice
	for _, m := range createTableRe.FindAllStringSubmatch(sql, -1) {
		out = append(out, TableSlice{RawName: m[1], Body: m[2]})
	}
	return out
}

// FindAlterStatements returns every ALTER TABLE statement in source order.
func FindAlterStatements(sql string) []AlterSlice {
	var out []AlterSlice
	for _, m := range alterTableRe.FindAllStringSubmatch(sql, -1) {
		out = append(out, AlterSlice{RawTable: m[1], Text: strings.TrimSpace(m[0])})
	}
	return out
}

// FindTriggers returns every CREATE TRIGGER statement in source order. A
// statement ends at ";", "//" or any token declared by a DELIMITER
// directive in the script. The BEGIN ... END form is preferred over the
// single statement form.
func FindTriggers(sql string) []TriggerSlice {
	re := triggerPattern(Delimiters(sql))
	var out []TriggerSlice
	for _, m := range re.FindAllStringSubmatch(sql, -1) {
		out = append(out, TriggerSlice{
			Name:     m[1],
			Timing:   strings.ToUpper(m[2]),
			Event:    strings.ToUpper(m[3]),
			RawTable: m[4],
			Action:   strings.TrimSpace(m[5]),
			Text:     m[0],
		})
	}
	return out
}

// Delimiters returns the alternate statement terminators usable in sql:
// "//" plus every non-";" token declared with DELIMITER, longest first.
func Delimiters(sql string) []string {
	seen := map[string]bool{"//": true}
	tokens := []string{"//"}
	for _, m := range delimiterRe.FindAllStringSubmatch(sql, -1) {
		tok := m[1]
		if tok == ";" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	sort.SliceStable(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
	return tokens
}

func triggerPattern(delims []string) *regexp.Regexp {
	alts := make([]string, 0, len(delims)+1)
	for _, d := range delims {
		alts = append(alts, regexp.QuoteMeta(d))
	}
	alts = append(alts, ";")
	term := `(?:` + strings.Join(alts, "|") + `)`
	return regexp.MustCompile(`(?is)CREATE\s+(?:DEFINER\s*=\s*\S+\s+)?TRIGGER\s+` + ident +
		`\s+(BEFORE|AFTER)\s+(INSERT|UPDATE|DELETE)\s+ON\s+` + ident +
		`\s+FOR\s+EACH\s+ROW\s+(BEGIN\s.*?\sEND|.*?)\s*` + term)
}

// countKeyword counts occurrences of a statement keyword, used to compare
// how many statements were seen with how many were parsed.
func countKeyword(re *regexp.Regexp, sql string) int {
	return len(re.FindAllStringIndex(sql, -1))
}
