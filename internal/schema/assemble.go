package schema

// Assemble orders parsed descriptors into an OperationSet: one create-table
// operation per table in source order, then a single add-foreign-keys
// operation when there is at least one foreign key, then one create-trigger
// operation per trigger in source order. Trigger bodies get their owner
// table rewritten to the normalized name.
//
// The inputs are copied; the returned set shares no memory with them.
func Assemble(tables []Table, fks []ForeignKey, triggers []Trigger, prefix string) *OperationSet {
	set := &OperationSet{
		Prefix:     prefix,
		Operations: make([]Operation, 0, len(tables)+len(triggers)+1),
	}
	for _, t := range tables {
		t := t
		t.Columns = append([]Column(nil), t.Columns...)
		set.Operations = append(set.Operations, Operation{Kind: OpCreateTable, Table: &t})
	}
	if len(fks) > 0 {
		set.Operations = append(set.Operations, Operation{
			Kind:        OpAddForeignKeys,
			ForeignKeys: append([]ForeignKey(nil), fks...),
		})
	}
	for _, tr := range triggers {
		tr := rewriteTriggerTable(tr, prefix)
		set.Operations = append(set.Operations, Operation{Kind: OpCreateTrigger, Trigger: &tr})
	}
	return set
}
