// Package migration renders schema operations into CodeIgniter 4 migration
// classes and writes them to disk.
package migration

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/satyammistari/sql2migration/internal/schema"
)

// DefaultNamespace is the namespace CodeIgniter 4 scans for app migrations.
const DefaultNamespace = `App\Database\Migrations`

// File is one rendered migration.
type File struct {
	Name      string // <timestamp>_<ClassName>.php
	ClassName string
	Content   string
	Op        schema.Operation
}

// Renderer turns operations into migration source.
type Renderer struct {
	Namespace string
}

// NewRenderer returns a Renderer for namespace, or DefaultNamespace when
// namespace is empty.
func NewRenderer(namespace string) *Renderer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Renderer{Namespace: namespace}
}

// RenderSet renders every operation of set in order. File names carry
// timestamps derived from base so that sorting by name keeps the order.
func (r *Renderer) RenderSet(set *schema.OperationSet, base time.Time) ([]File, error) {
	keys := Sequence(base, len(set.Operations))
	files := make([]File, 0, len(set.Operations))
	for i, op := range set.Operations {
		f, err := r.Render(op)
		if err != nil {
			return nil, err
		}
		f.Name = FileName(keys[i], f.ClassName)
		files = append(files, f)
	}
	return files, nil
}

// Render renders a single operation. The returned File has no Name; use
// RenderSet or FileName to give it one.
func (r *Renderer) Render(op schema.Operation) (File, error) {
	var (
		tmpl *template.Template
		data = struct {
			Namespace string
			Class     string
			Op        schema.Operation
			Groups    []fkGroup
		}{Namespace: r.Namespace, Op: op}
	)
	switch op.Kind {
	case schema.OpCreateTable:
		if op.Table == nil {
			return File{}, fmt.Errorf("render %s: missing table", op.Kind)
		}
		tmpl = createTableTmpl
		data.Class = ClassName(op)
	case schema.OpAddForeignKeys:
		tmpl = addForeignKeysTmpl
		data.Class = ClassName(op)
		data.Groups = groupByTable(op.ForeignKeys)
	case schema.OpCreateTrigger:
		if op.Trigger == nil {
			return File{}, fmt.Errorf("render %s: missing trigger", op.Kind)
		}
		tmpl = createTriggerTmpl
		data.Class = ClassName(op)
	default:
		return File{}, fmt.Errorf("render: unknown operation kind %d", op.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return File{}, fmt.Errorf("render %s %s: %w", op.Kind, op.Subject(), err)
	}
	return File{ClassName: data.Class, Content: buf.String(), Op: op}, nil
}

// ClassName returns the migration class name for op.
func ClassName(op schema.Operation) string {
	switch op.Kind {
	case schema.OpCreateTable:
		return "Create" + ucfirst(op.Table.Name) + "Table"
	case schema.OpCreateTrigger:
		return "Create" + ucfirst(op.Trigger.Name) + "Trigger"
	}
	return "AddForeignKeys"
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// addslashes escapes s for a single-quoted PHP string the way PHP's
// addslashes does.
func addslashes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '\'', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// phpString escapes s for use inside a single-quoted PHP literal.
func phpString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

type fkGroup struct {
	Table string
	Keys  []schema.ForeignKey
}

// groupByTable groups foreign keys by owner table, keeping the order in
// which tables first appear.
func groupByTable(fks []schema.ForeignKey) []fkGroup {
	var groups []fkGroup
	index := map[string]int{}
	for _, fk := range fks {
		i, ok := index[fk.Table]
		if !ok {
			i = len(groups)
			index[fk.Table] = i
			groups = append(groups, fkGroup{Table: fk.Table})
		}
		groups[i].Keys = append(groups[i].Keys, fk)
	}
	return groups
}
