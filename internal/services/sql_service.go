package services

import (
	"fmt"
	"strings"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
)

// SQLService renders a schema graph as Postgres DDL. It only reads the
// graph; generation never mutates it.
type SQLService struct{}

func NewSQLService() *SQLService {
	return &SQLService{}
}

// Generate produces one CREATE TABLE statement per non-empty table followed
// by ALTER TABLE statements for every relation. Relations whose endpoints
// cannot be resolved (a looseness the graph tolerates for imported data)
// are skipped rather than producing broken SQL.
func (s *SQLService) Generate(g *schema.Graph) string {
	var sb strings.Builder

	for _, table := range g.Tables {
		if table.Name == "" || len(table.Columns) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", quoteIdentifier(table.Name)))
		for i, col := range table.Columns {
			def := fmt.Sprintf("  %s %s", quoteIdentifier(col.Name), normalizeColumnType(col.Type))
			if col.IsPrimary {
				def += " PRIMARY KEY"
			}
			if col.IsUnique && !col.IsPrimary {
				def += " UNIQUE"
			}
			if !col.IsNullable && !col.IsPrimary {
				def += " NOT NULL"
			}
			if i < len(table.Columns)-1 {
				def += ","
			}
			sb.WriteString(def + "\n")
		}
		sb.WriteString(");\n\n")
	}

	for _, rel := range g.Relations {
		fromTable := g.TableByID(rel.From.TableID)
		toTable := g.TableByID(rel.To.TableID)
		if fromTable == nil || toTable == nil {
			continue
		}
		fromColumn := fromTable.ColumnByID(rel.From.ColumnID)
		toColumn := toTable.ColumnByID(rel.To.ColumnID)
		if fromColumn == nil || toColumn == nil {
			continue
		}

		sb.WriteString(fmt.Sprintf("ALTER TABLE %s\n  ADD FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s ON UPDATE %s;\n\n",
			quoteIdentifier(fromTable.Name),
			quoteIdentifier(fromColumn.Name),
			quoteIdentifier(toTable.Name),
			quoteIdentifier(toColumn.Name),
			referentialAction(rel.DeleteRule),
			referentialAction(rel.UpdateRule),
		))
	}

	return sb.String()
}

// quoteIdentifier double-quotes an identifier so free-form names survive.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// normalizeColumnType maps common interpreter spellings onto Postgres types
// and passes everything else through uppercased. Declared types are
// free-form strings; this is cosmetic, not validation.
func normalizeColumnType(colType string) string {
	upper := strings.ToUpper(strings.TrimSpace(colType))
	switch upper {
	case "":
		return "TEXT"
	case "STRING":
		return "TEXT"
	case "INT":
		return "INTEGER"
	case "BOOL":
		return "BOOLEAN"
	case "DATETIME":
		return "TIMESTAMP"
	default:
		return upper
	}
}

func referentialAction(rule schema.ReferentialRule) string {
	switch rule {
	case schema.RuleRestrict:
		return "RESTRICT"
	case schema.RuleSetNull:
		return "SET NULL"
	default:
		return "CASCADE"
	}
}
