package schema

import (
	"encoding/json"
	"log"
)

// Resolver turns interpreter actions into toolkit calls. Bad actions are
// skipped, good ones applied; one malformed action never aborts the rest of
// its batch.
type Resolver struct {
	toolkit *Toolkit
}

func NewResolver(toolkit *Toolkit) *Resolver {
	return &Resolver{toolkit: toolkit}
}

// Apply executes the actions in order against the graph and returns the
// subsequence that was actually applied, preserving input order.
func (r *Resolver) Apply(g *Graph, actions []Action) []Action {
	applied := make([]Action, 0, len(actions))
	for _, action := range actions {
		if r.applyOne(g, action) {
			applied = append(applied, action)
		}
	}
	return applied
}

func (r *Resolver) applyOne(g *Graph, action Action) bool {
	switch action.Type {
	case ActionCreateTable:
		var p CreateTableParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		return r.toolkit.CreateTable(g, p.Name, p.Columns, p.Position) != nil

	case ActionAddColumn:
		var p AddColumnParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		return r.toolkit.AddColumn(g, p.TableID, p.Column) != nil

	case ActionCreateRelation:
		var p CreateRelationParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		return r.createRelation(g, p)

	case ActionUpdateTable:
		var p UpdateTableParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		return r.toolkit.UpdateTableName(g, p.TableID, p.NewName)

	case ActionDeleteTable:
		var p DeleteTableParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		return r.toolkit.DeleteTable(g, p.TableID)

	case ActionComplexSchema:
		var p ComplexSchemaParams
		if err := json.Unmarshal(action.Parameters, &p); err != nil {
			log.Printf("skipping malformed %s action: %v", action.Type, err)
			return false
		}
		r.toolkit.CreateComplexSchema(g, ComplexSchemaSpec(p))
		return true

	default:
		log.Printf("skipping unrecognized action kind %q", action.Type)
		return false
	}
}

// createRelation resolves the four name-based endpoints before touching the
// toolkit. The interpreter may hallucinate names; any unresolved endpoint
// drops the action.
func (r *Resolver) createRelation(g *Graph, p CreateRelationParams) bool {
	fromTable := g.TableByName(p.FromTable)
	toTable := g.TableByName(p.ToTable)
	if fromTable == nil || toTable == nil {
		return false
	}
	fromColumn := fromTable.ColumnByName(p.FromColumn)
	toColumn := toTable.ColumnByName(p.ToColumn)
	if fromColumn == nil || toColumn == nil {
		return false
	}
	return r.toolkit.CreateRelation(g,
		fromTable.ID, fromColumn.ID,
		toTable.ID, toColumn.ID,
		p.Cardinality, p.DeleteRule, p.UpdateRule,
	) != nil
}
