package schema

// Cardinality classifies the multiplicity of a relation.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// ReferentialRule describes the downstream data semantics of a relation
// (ON DELETE / ON UPDATE). It has no bearing on graph consistency; deleting
// a table always removes its relations regardless of the rule.
type ReferentialRule string

const (
	RuleCascade  ReferentialRule = "cascade"
	RuleRestrict ReferentialRule = "restrict"
	RuleSetNull  ReferentialRule = "set-null"
)

// Position is a canvas coordinate. Opaque to this package beyond assignment;
// layout belongs to the frontend.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ColumnRef addresses a column through its owning table.
type ColumnRef struct {
	TableID  string `json:"tableId"`
	ColumnID string `json:"columnId"`
}

// Column belongs to exactly one table. References is descriptive metadata
// only; the relation set is the authoritative record of foreign keys.
type Column struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	IsPrimary  bool       `json:"isPrimary,omitempty"`
	IsForeign  bool       `json:"isForeign,omitempty"`
	IsUnique   bool       `json:"isUnique,omitempty"`
	IsNullable bool       `json:"isNullable,omitempty"`
	References *ColumnRef `json:"references,omitempty"`
}

// Table is a node of the schema graph. Names are not required to be unique;
// name lookups are case-insensitive and return the first match.
type Table struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Columns  []Column `json:"columns"`
}

// Relation is an edge between two columns of the graph.
type Relation struct {
	ID          string          `json:"id"`
	From        ColumnRef       `json:"from"`
	To          ColumnRef       `json:"to"`
	Cardinality Cardinality     `json:"cardinality"`
	DeleteRule  ReferentialRule `json:"deleteRule"`
	UpdateRule  ReferentialRule `json:"updateRule"`
}

// Graph is the full schema of one editing session: every table and every
// relation. It is a passive container; all structural changes go through
// the Toolkit.
type Graph struct {
	Tables    []Table    `json:"tables"`
	Relations []Relation `json:"relations"`
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Tables:    []Table{},
		Relations: []Relation{},
	}
}
