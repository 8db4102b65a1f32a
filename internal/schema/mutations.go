package schema

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Fallback canvas placement bounds for tables created without a position.
const (
	fallbackPosMin  = 80
	fallbackPosSpan = 560
)

// Grid placement used by CreateComplexSchema for tables without a position.
const (
	gridColumns = 3
	gridStepX   = 300
	gridStepY   = 250
)

// ColumnSpec describes a column to create. IDs are assigned by the toolkit.
type ColumnSpec struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	IsPrimary  bool       `json:"isPrimary,omitempty"`
	IsForeign  bool       `json:"isForeign,omitempty"`
	IsUnique   bool       `json:"isUnique,omitempty"`
	IsNullable bool       `json:"isNullable,omitempty"`
	References *ColumnRef `json:"references,omitempty"`
}

// TableSpec describes a table to create inside a complex schema.
type TableSpec struct {
	Name     string       `json:"name"`
	Columns  []ColumnSpec `json:"columns"`
	Position *Position    `json:"position,omitempty"`
}

// RelationSpec describes a relation by table and column name rather than ID.
type RelationSpec struct {
	FromTable   string          `json:"fromTable"`
	FromColumn  string          `json:"fromColumn"`
	ToTable     string          `json:"toTable"`
	ToColumn    string          `json:"toColumn"`
	Cardinality Cardinality     `json:"cardinality,omitempty"`
	DeleteRule  ReferentialRule `json:"deleteRule,omitempty"`
	UpdateRule  ReferentialRule `json:"updateRule,omitempty"`
}

// ComplexSchemaSpec is the bulk-creation payload: a set of tables plus
// relations expressed by name against those tables.
type ComplexSchemaSpec struct {
	Tables    []TableSpec    `json:"tables"`
	Relations []RelationSpec `json:"relations,omitempty"`
}

// ComplexSchemaResult lists what a bulk creation actually produced.
type ComplexSchemaResult struct {
	Tables    []Table    `json:"tables"`
	Relations []Relation `json:"relations"`
}

// Toolkit is the only code path that mutates a Graph. Every operation either
// fully applies or returns a negative value (nil/false) leaving the graph
// untouched; lookup failures are never surfaced as errors.
//
// NewID and FallbackPosition are injectable so callers (and tests) can make
// ID allocation and placement deterministic.
type Toolkit struct {
	NewID            func() string
	FallbackPosition func() Position
}

// NewToolkit returns a toolkit with uuid IDs and pseudo-random placement.
func NewToolkit() *Toolkit {
	return &Toolkit{
		NewID: uuid.NewString,
		FallbackPosition: func() Position {
			return Position{
				X: fallbackPosMin + rand.Float64()*fallbackPosSpan,
				Y: fallbackPosMin + rand.Float64()*fallbackPosSpan,
			}
		},
	}
}

// CreateTable appends a new table built from the given column specs. Column
// IDs are freshly assigned. A nil position falls back to the toolkit's
// placement func. CreateTable has no failure mode; empty names and empty
// column lists are accepted as-is.
func (tk *Toolkit) CreateTable(g *Graph, name string, columns []ColumnSpec, position *Position) *Table {
	table := Table{
		ID:      tk.NewID(),
		Name:    name,
		Columns: make([]Column, 0, len(columns)),
	}
	if position != nil {
		table.Position = *position
	} else {
		table.Position = tk.FallbackPosition()
	}
	for _, spec := range columns {
		table.Columns = append(table.Columns, tk.newColumn(spec))
	}
	g.Tables = append(g.Tables, table)

	created := table
	return &created
}

// AddColumn appends a column to the table with the given ID. Returns nil and
// leaves the graph unchanged when the table does not exist.
func (tk *Toolkit) AddColumn(g *Graph, tableID string, spec ColumnSpec) *Column {
	table := g.TableByID(tableID)
	if table == nil {
		return nil
	}
	column := tk.newColumn(spec)
	table.Columns = append(table.Columns, column)

	created := column
	return &created
}

// CreateRelation connects two columns. Both tables must exist and each column
// must belong to its table, otherwise nil is returned and nothing changes.
// Cardinality and rule values outside the known sets (including empty ones)
// are normalized to one-to-many and cascade.
func (tk *Toolkit) CreateRelation(g *Graph, fromTableID, fromColumnID, toTableID, toColumnID string, cardinality Cardinality, deleteRule, updateRule ReferentialRule) *Relation {
	fromTable := g.TableByID(fromTableID)
	toTable := g.TableByID(toTableID)
	if fromTable == nil || toTable == nil {
		return nil
	}
	if fromTable.ColumnByID(fromColumnID) == nil || toTable.ColumnByID(toColumnID) == nil {
		return nil
	}

	relation := Relation{
		ID:          tk.NewID(),
		From:        ColumnRef{TableID: fromTableID, ColumnID: fromColumnID},
		To:          ColumnRef{TableID: toTableID, ColumnID: toColumnID},
		Cardinality: normalizeCardinality(cardinality),
		DeleteRule:  normalizeRule(deleteRule),
		UpdateRule:  normalizeRule(updateRule),
	}
	g.Relations = append(g.Relations, relation)

	created := relation
	return &created
}

// UpdateTableName renames a table in place. Returns false when the table
// does not exist.
func (tk *Toolkit) UpdateTableName(g *Graph, tableID, newName string) bool {
	table := g.TableByID(tableID)
	if table == nil {
		return false
	}
	table.Name = newName
	return true
}

// DeleteTable removes a table and every relation with an endpoint in it.
// The cascade ignores the relations' own delete rules; those describe data
// semantics, not graph consistency. Returns false when the table does not
// exist, leaving the graph unchanged.
func (tk *Toolkit) DeleteTable(g *Graph, tableID string) bool {
	index := -1
	for i := range g.Tables {
		if g.Tables[i].ID == tableID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	g.Tables = append(g.Tables[:index], g.Tables[index+1:]...)

	kept := g.Relations[:0]
	for _, rel := range g.Relations {
		if rel.From.TableID == tableID || rel.To.TableID == tableID {
			continue
		}
		kept = append(kept, rel)
	}
	g.Relations = kept
	return true
}

// CreateComplexSchema bulk-creates tables and then relations. Tables without
// a position are laid out on a three-per-row grid in creation order.
// Relations are resolved by name strictly against the tables created by this
// call; a relation naming anything outside that set is skipped, even when a
// matching table already exists elsewhere in the graph.
func (tk *Toolkit) CreateComplexSchema(g *Graph, spec ComplexSchemaSpec) ComplexSchemaResult {
	result := ComplexSchemaResult{
		Tables:    make([]Table, 0, len(spec.Tables)),
		Relations: make([]Relation, 0, len(spec.Relations)),
	}

	for i, tableSpec := range spec.Tables {
		position := tableSpec.Position
		if position == nil {
			position = &Position{
				X: float64(i%gridColumns) * gridStepX,
				Y: float64(i/gridColumns) * gridStepY,
			}
		}
		created := tk.CreateTable(g, tableSpec.Name, tableSpec.Columns, position)
		result.Tables = append(result.Tables, *created)
	}

	for _, relSpec := range spec.Relations {
		fromTable := tableFromSet(result.Tables, relSpec.FromTable)
		toTable := tableFromSet(result.Tables, relSpec.ToTable)
		if fromTable == nil || toTable == nil {
			continue
		}
		fromColumn := fromTable.ColumnByName(relSpec.FromColumn)
		toColumn := toTable.ColumnByName(relSpec.ToColumn)
		if fromColumn == nil || toColumn == nil {
			continue
		}
		created := tk.CreateRelation(g,
			fromTable.ID, fromColumn.ID,
			toTable.ID, toColumn.ID,
			relSpec.Cardinality, relSpec.DeleteRule, relSpec.UpdateRule,
		)
		if created != nil {
			result.Relations = append(result.Relations, *created)
		}
	}

	return result
}

func (tk *Toolkit) newColumn(spec ColumnSpec) Column {
	return Column{
		ID:         tk.NewID(),
		Name:       spec.Name,
		Type:       spec.Type,
		IsPrimary:  spec.IsPrimary,
		IsForeign:  spec.IsForeign,
		IsUnique:   spec.IsUnique,
		IsNullable: spec.IsNullable,
		References: spec.References,
	}
}

// normalizeCardinality maps anything outside the known cardinalities to
// one-to-many. Interpreter payloads use spellings like "1:N" that the graph
// must not store verbatim.
func normalizeCardinality(c Cardinality) Cardinality {
	switch c {
	case OneToOne, OneToMany, ManyToMany:
		return c
	default:
		return OneToMany
	}
}

// normalizeRule maps anything outside the known referential rules to cascade.
func normalizeRule(r ReferentialRule) ReferentialRule {
	switch r {
	case RuleCascade, RuleRestrict, RuleSetNull:
		return r
	default:
		return RuleCascade
	}
}

// tableFromSet does a case-insensitive first-match lookup within a bounded
// table set, mirroring Graph.TableByName.
func tableFromSet(tables []Table, name string) *Table {
	for i := range tables {
		if strings.EqualFold(tables[i].Name, name) {
			return &tables[i]
		}
	}
	return nil
}
