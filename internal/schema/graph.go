package schema

import "strings"

// TableByID returns a pointer into the graph's table slice, or nil.
func (g *Graph) TableByID(id string) *Table {
	for i := range g.Tables {
		if g.Tables[i].ID == id {
			return &g.Tables[i]
		}
	}
	return nil
}

// TableByName returns the first table whose name matches case-insensitively,
// or nil. Duplicate names are legal, so the first match is authoritative.
func (g *Graph) TableByName(name string) *Table {
	for i := range g.Tables {
		if strings.EqualFold(g.Tables[i].Name, name) {
			return &g.Tables[i]
		}
	}
	return nil
}

// RelationByID returns a pointer into the graph's relation slice, or nil.
func (g *Graph) RelationByID(id string) *Relation {
	for i := range g.Relations {
		if g.Relations[i].ID == id {
			return &g.Relations[i]
		}
	}
	return nil
}

// ColumnByID returns a pointer into the table's column slice, or nil.
func (t *Table) ColumnByID(id string) *Column {
	for i := range t.Columns {
		if t.Columns[i].ID == id {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnByName returns the first column whose name matches
// case-insensitively, or nil.
func (t *Table) ColumnByName(name string) *Column {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the graph. The copy shares no memory with the
// original, so it can be read or serialized while the original keeps mutating.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Tables:    make([]Table, len(g.Tables)),
		Relations: make([]Relation, len(g.Relations)),
	}
	copy(clone.Relations, g.Relations)
	for i, table := range g.Tables {
		columns := make([]Column, len(table.Columns))
		copy(columns, table.Columns)
		for j := range columns {
			if columns[j].References != nil {
				ref := *columns[j].References
				columns[j].References = &ref
			}
		}
		table.Columns = columns
		clone.Tables[i] = table
	}
	return clone
}
