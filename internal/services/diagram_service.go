package services

import (
	"fmt"
	"strings"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
)

// DiagramService renders a schema graph as a Mermaid ER diagram for the
// frontend preview pane.
type DiagramService struct{}

func NewDiagramService() *DiagramService {
	return &DiagramService{}
}

// Mermaid renders the graph. Relationship lines come first, deduplicated by
// endpoint pair and cardinality, then one block per table with simplified
// column types and PK/FK annotations.
func (s *DiagramService) Mermaid(g *schema.Graph) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	seen := make(map[string]bool)
	wroteRelation := false
	for _, rel := range g.Relations {
		fromTable := g.TableByID(rel.From.TableID)
		toTable := g.TableByID(rel.To.TableID)
		if fromTable == nil || toTable == nil {
			continue
		}

		symbol := cardinalitySymbol(rel.Cardinality)
		key := fmt.Sprintf("%s:%s:%s", fromTable.ID, symbol, toTable.ID)
		if seen[key] {
			continue
		}
		seen[key] = true
		wroteRelation = true

		// Mermaid requires a label even when empty.
		sb.WriteString(fmt.Sprintf("    %s %s %s : \"\"\n",
			mermaidName(fromTable.Name),
			symbol,
			mermaidName(toTable.Name)))
	}
	if wroteRelation {
		sb.WriteString("\n")
	}

	for _, table := range g.Tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", mermaidName(table.Name)))
		for _, col := range table.Columns {
			annotations := ""
			if col.IsPrimary {
				annotations = " PK"
			}
			if col.IsForeign {
				annotations += " FK"
			}
			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				simplifyDataType(col.Type),
				col.Name,
				annotations))
		}
		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

func cardinalitySymbol(cardinality schema.Cardinality) string {
	switch cardinality {
	case schema.OneToOne:
		return "||--||"
	case schema.ManyToMany:
		return "}o--o{"
	default:
		return "||--o{"
	}
}

// mermaidName uppercases and strips characters Mermaid chokes on.
func mermaidName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if cleaned == "" {
		cleaned = "UNNAMED"
	}
	return strings.ToUpper(cleaned)
}

func simplifyDataType(dataType string) string {
	dt := strings.ToLower(strings.TrimSpace(dataType))

	switch {
	case dt == "":
		return "text"
	case dt == "integer", dt == "int":
		return "int"
	case strings.HasPrefix(dt, "character varying"), strings.HasPrefix(dt, "varchar"):
		return "varchar"
	case strings.HasPrefix(dt, "timestamp"):
		return "timestamp"
	case dt == "boolean", dt == "bool":
		return "boolean"
	case dt == "string":
		return "text"
	default:
		return dt
	}
}
