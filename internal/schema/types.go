package schema

// Column is one parsed column declaration of a CREATE TABLE body.
type Column struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`                                 // uppercased SQL type keyword
	Constraint    string `json:"constraint,omitempty" yaml:"constraint,omitempty"` // length or precision, e.g. "11" or "10,2"
	Unsigned      bool   `json:"unsigned" yaml:"unsigned"`
	Nullable      bool   `json:"nullable" yaml:"nullable"`
	AutoIncrement bool   `json:"auto_increment" yaml:"auto_increment"`
}

// Table is a parsed CREATE TABLE statement.
type Table struct {
	RawName    string   `json:"raw_name" yaml:"raw_name"`
	Name       string   `json:"name" yaml:"name"` // prefix stripped
	Columns    []Column `json:"columns" yaml:"columns"`
	PrimaryKey string   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// HasColumn reports whether the table declares a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ForeignKey is one FOREIGN KEY relationship added by an ALTER TABLE statement.
type ForeignKey struct {
	RawTable         string `json:"raw_table" yaml:"raw_table"`
	Table            string `json:"table" yaml:"table"`
	Constraint       string `json:"constraint" yaml:"constraint"`
	Column           string `json:"column" yaml:"column"`
	ReferencedTable  string `json:"referenced_table" yaml:"referenced_table"`
	ReferencedColumn string `json:"referenced_column" yaml:"referenced_column"`
	OnDelete         string `json:"on_delete" yaml:"on_delete"`
	OnUpdate         string `json:"on_update" yaml:"on_update"`
}

// Trigger is a parsed CREATE TRIGGER statement.
//
// Table keeps the name as written in the SQL; Body is the executable
// statement with client-side delimiter artifacts removed.
type Trigger struct {
	Name   string `json:"name" yaml:"name"`
	Timing string `json:"timing" yaml:"timing"` // BEFORE or AFTER
	Event  string `json:"event" yaml:"event"`   // INSERT, UPDATE or DELETE
	Table  string `json:"table" yaml:"table"`
	Body   string `json:"body" yaml:"body"`
}

// OpKind identifies the kind of a schema operation.
type OpKind int

const (
	OpCreateTable OpKind = iota
	OpAddForeignKeys
	OpCreateTrigger
)

func (k OpKind) String() string {
	switch k {
	case OpCreateTable:
		return "create_table"
	case OpAddForeignKeys:
		return "add_foreign_keys"
	case OpCreateTrigger:
		return "create_trigger"
	}
	return "unknown"
}

// MarshalText lets encoders print the kind by name.
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Operation is one schema change. Exactly one of Table, ForeignKeys or
// Trigger is set, matching Kind.
type Operation struct {
	Kind        OpKind       `json:"kind" yaml:"kind"`
	Table       *Table       `json:"table,omitempty" yaml:"table,omitempty"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Trigger     *Trigger     `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// Subject names what the operation acts on.
func (o Operation) Subject() string {
	switch o.Kind {
	case OpCreateTable:
		return o.Table.Name
	case OpCreateTrigger:
		return o.Trigger.Name
	}
	return "foreign keys"
}

// OperationSet is the ordered output of a parse run.
type OperationSet struct {
	// Prefix is the table prefix that was stripped from identifiers.
	Prefix     string      `json:"prefix" yaml:"prefix"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// Tables returns the tables of all create-table operations in order.
func (s *OperationSet) Tables() []*Table {
	var out []*Table
	for _, op := range s.Operations {
		if op.Kind == OpCreateTable {
			out = append(out, op.Table)
		}
	}
	return out
}

// ForeignKeys returns the foreign keys of the set, or nil.
func (s *OperationSet) ForeignKeys() []ForeignKey {
	for _, op := range s.Operations {
		if op.Kind == OpAddForeignKeys {
			return op.ForeignKeys
		}
	}
	return nil
}

// Triggers returns the triggers of all create-trigger operations in order.
func (s *OperationSet) Triggers() []*Trigger {
	var out []*Trigger
	for _, op := range s.Operations {
		if op.Kind == OpCreateTrigger {
			out = append(out, op.Trigger)
		}
	}
	return out
}

// TableByName returns the table with the given normalized name, or nil.
func (s *OperationSet) TableByName(name string) *Table {
	for _, t := range s.Tables() {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Empty reports whether the set carries no operations.
func (s *OperationSet) Empty() bool {
	return len(s.Operations) == 0
}
