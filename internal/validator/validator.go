// Package validator cross-checks a parsed operation set for references
// that the DDL itself does not satisfy.
package validator

import (
	"fmt"

	"github.com/satyammistari/sql2migration/internal/schema"
)

// Category labels every diagnostic produced here.
const Category schema.Category = "consistency"

// Validate returns warnings for problems the generated migrations would hit
// at run time. It never fails.
func Validate(set *schema.OperationSet) []schema.Diagnostic {
	if set == nil {
		return nil
	}
	var diags []schema.Diagnostic
	warn := func(format string, args ...any) {
		diags = append(diags, schema.Diagnostic{
			Kind:     schema.PartialParse,
			Category: Category,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	seen := map[string]bool{}
	for _, t := range set.Tables() {
		if seen[t.Name] {
			warn("table %q is created more than once", t.Name)
			continue
		}
		seen[t.Name] = true
		if t.PrimaryKey == "" {
			warn("table %q has no single-column primary key", t.Name)
		}
	}

	constraints := map[string]bool{}
	for _, fk := range set.ForeignKeys() {
		if constraints[fk.Constraint] {
			warn("foreign key constraint %q is declared more than once", fk.Constraint)
		}
		constraints[fk.Constraint] = true

		owner := set.TableByName(fk.Table)
		switch {
		case owner == nil:
			warn("foreign key %q is added to table %q which is not created", fk.Constraint, fk.Table)
		case !owner.HasColumn(fk.Column):
			warn("foreign key %q uses column %q missing from table %q", fk.Constraint, fk.Column, fk.Table)
		}
		if set.TableByName(fk.ReferencedTable) == nil {
			warn("foreign key %q references table %q which is not created", fk.Constraint, fk.ReferencedTable)
		}
	}

	for _, tr := range set.Triggers() {
		name := schema.Normalize(tr.Table, set.Prefix)
		if set.TableByName(name) == nil {
			warn("trigger %q is defined on table %q which is not created", tr.Name, name)
		}
	}
	return diags
}
