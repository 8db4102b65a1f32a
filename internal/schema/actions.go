package schema

import "encoding/json"

// Action kinds produced by the AI interpreter. The interpreter is an
// untrusted producer: parameters may be malformed and names may reference
// tables that do not exist.
const (
	ActionCreateTable    = "create_table"
	ActionAddColumn      = "add_column"
	ActionCreateRelation = "create_relation"
	ActionUpdateTable    = "update_table"
	ActionDeleteTable    = "delete_table"
	ActionComplexSchema  = "complex_schema"
)

// Action is one symbolic instruction from the interpreter. Parameters stay
// raw until the resolver dispatches on Type; each kind has its own closed
// parameter struct below.
type Action struct {
	Type       string          `json:"type"`
	Parameters json.RawMessage `json:"parameters"`
}

// CreateTableParams carries raw creation input; no resolution needed.
type CreateTableParams struct {
	Name     string       `json:"name"`
	Columns  []ColumnSpec `json:"columns"`
	Position *Position    `json:"position,omitempty"`
}

// AddColumnParams targets a table by concrete ID.
type AddColumnParams struct {
	TableID string     `json:"tableId"`
	Column  ColumnSpec `json:"column"`
}

// CreateRelationParams identifies all four endpoints by name, not ID.
type CreateRelationParams struct {
	FromTable   string          `json:"fromTable"`
	FromColumn  string          `json:"fromColumn"`
	ToTable     string          `json:"toTable"`
	ToColumn    string          `json:"toColumn"`
	Cardinality Cardinality     `json:"cardinality,omitempty"`
	DeleteRule  ReferentialRule `json:"deleteRule,omitempty"`
	UpdateRule  ReferentialRule `json:"updateRule,omitempty"`
}

// UpdateTableParams renames a table addressed by concrete ID.
type UpdateTableParams struct {
	TableID string `json:"tableId"`
	NewName string `json:"newName"`
}

// DeleteTableParams removes a table addressed by concrete ID.
type DeleteTableParams struct {
	TableID string `json:"tableId"`
}

// ComplexSchemaParams delegates to the toolkit's bulk creation.
type ComplexSchemaParams ComplexSchemaSpec
