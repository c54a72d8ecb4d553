package schema

import (
	"regexp"
	"strings"
)

var (
	// constraintLineRe recognizes key, index and constraint declarations by
	// their leading keyword.
	constraintLineRe = regexp.MustCompile(`(?i)^(?:CONSTRAINT\s+` + identNC + `\s+)?(?:UNIQUE|FULLTEXT|SPATIAL|FOREIGN\s+KEY|PRIMARY\s+KEY|KEY|INDEX|CHECK)\b`)
	columnRe         = regexp.MustCompile(`(?i)^` + ident + `\s+(\w+)(?:\s*\(\s*(\d+(?:\s*,\s*\d+)?)\s*\))?`)
	unsignedRe       = regexp.MustCompile(`(?i)\bUNSIGNED\b`)
	notNullRe        = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	autoIncrementRe  = regexp.MustCompile(`(?i)\bAUTO_INCREMENT\b`)
	primaryKeyRe     = regexp.MustCompile(`(?i)PRIMARY\s+KEY\s*\(\s*` + ident + `\s*\)`)
	spaceRe          = regexp.MustCompile(`\s+`)
)

// ParseColumns returns one Column per column declaration in a table body, in
// declaration order. Key, index and constraint lines are skipped, and so is
// any line that does not look like "<name> <type>[(<n>)] ...".
func ParseColumns(body string) []Column {
	var cols []Column
	for _, line := range splitDeclarations(body) {
		line = strings.Trim(line, ", \t\n\r\x00\x0B")
		if line == "" || constraintLineRe.MatchString(line) {
			continue
		}
		loc := columnRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		col := Column{
			Name: line[loc[2]:loc[3]],
			Type: strings.ToUpper(line[loc[4]:loc[5]]),
		}
		if loc[6] >= 0 {
			col.Constraint = spaceRe.ReplaceAllString(line[loc[6]:loc[7]], "")
		}
		rest := line[loc[1]:]
		col.Unsigned = unsignedRe.MatchString(rest)
		col.Nullable = !notNullRe.MatchString(rest)
		col.AutoIncrement = autoIncrementRe.MatchString(rest)
		cols = append(cols, col)
	}
	return cols
}

// ParsePrimaryKey returns the column of the first single-column
// PRIMARY KEY (...) declaration in body. Composite keys are not reported.
func ParsePrimaryKey(body string) (string, bool) {
	m := primaryKeyRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitDeclarations splits a table body on line breaks and on commas that
// sit outside parentheses and quotes, so "DECIMAL(10,2)" and "DEFAULT 'a,b'"
// stay in one piece.
func splitDeclarations(s string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	var quote byte
	flush := func() {
		if strings.TrimSpace(cur.String()) != "" {
			parts = append(parts, cur.String())
		}
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			cur.WriteByte(c)
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case ',':
			if depth == 0 {
				flush()
			} else {
				cur.WriteByte(c)
			}
		case '\n':
			if depth == 0 {
				flush()
			} else {
				cur.WriteByte(' ')
			}
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return parts
}

// ParseTables extracts every CREATE TABLE statement of sql into a Table.
func ParseTables(sql, prefix string) []Table {
	slices := FindTables(sql)
	tables := make([]Table, 0, len(slices))
	for _, s := range slices {
		t := Table{
			RawName: s.RawName,
			Name:    Normalize(s.RawName, prefix),
			Columns: ParseColumns(s.Body),
		}
		if pk, ok := ParsePrimaryKey(s.Body); ok {
			t.PrimaryKey = pk
		}
		tables = append(tables, t)
	}
	return tables
}
