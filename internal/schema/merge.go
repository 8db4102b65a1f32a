package schema

// MergeResult reports what an import added. LayoutNeeded tells the frontend
// that a re-layout pass is warranted: imported positions are not trusted to
// avoid overlap with existing tables.
type MergeResult struct {
	AddedTables    int  `json:"addedTables"`
	AddedRelations int  `json:"addedRelations"`
	LayoutNeeded   bool `json:"layoutNeeded"`
}

// Merge folds a foreign graph into the current one. Entities are keyed by
// ID and the local graph always wins: a foreign table or relation whose ID
// already exists is dropped. Name collisions between distinct IDs are not
// detected; such tables coexist. Merging the same foreign graph twice is a
// no-op the second time.
func Merge(g *Graph, foreign *Graph) MergeResult {
	var result MergeResult

	tableIDs := make(map[string]bool, len(g.Tables))
	for _, table := range g.Tables {
		tableIDs[table.ID] = true
	}
	for _, table := range foreign.Tables {
		if tableIDs[table.ID] {
			continue
		}
		tableIDs[table.ID] = true
		g.Tables = append(g.Tables, table)
		result.AddedTables++
	}

	relationIDs := make(map[string]bool, len(g.Relations))
	for _, rel := range g.Relations {
		relationIDs[rel.ID] = true
	}
	for _, rel := range foreign.Relations {
		if relationIDs[rel.ID] {
			continue
		}
		relationIDs[rel.ID] = true
		g.Relations = append(g.Relations, rel)
		result.AddedRelations++
	}

	result.LayoutNeeded = result.AddedTables > 0
	return result
}
