package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToolkit returns a toolkit with sequential IDs and a fixed fallback
// position so assertions can be exact.
func testToolkit() *Toolkit {
	n := 0
	return &Toolkit{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		FallbackPosition: func() Position {
			return Position{X: 100, Y: 100}
		},
	}
}

func TestCreateTable(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()

	table := tk.CreateTable(g, "users", []ColumnSpec{
		{Name: "id", Type: "UUID", IsPrimary: true},
		{Name: "email", Type: "TEXT", IsUnique: true},
	}, &Position{X: 40, Y: 60})

	require.NotNil(t, table)
	assert.Equal(t, "users", table.Name)
	assert.Equal(t, Position{X: 40, Y: 60}, table.Position)
	require.Len(t, table.Columns, 2)
	assert.NotEmpty(t, table.Columns[0].ID)
	assert.NotEqual(t, table.Columns[0].ID, table.Columns[1].ID)
	assert.True(t, table.Columns[0].IsPrimary)
	require.Len(t, g.Tables, 1)
	assert.Equal(t, table.ID, g.Tables[0].ID)
}

func TestCreateTableFallbackPosition(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()

	table := tk.CreateTable(g, "users", nil, nil)

	require.NotNil(t, table)
	assert.Equal(t, Position{X: 100, Y: 100}, table.Position)
	assert.Empty(t, table.Columns)
}

func TestAddColumn(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	table := tk.CreateTable(g, "users", nil, nil)

	column := tk.AddColumn(g, table.ID, ColumnSpec{Name: "email", Type: "TEXT"})

	require.NotNil(t, column)
	assert.Equal(t, "email", column.Name)
	require.Len(t, g.Tables[0].Columns, 1)
	assert.Equal(t, column.ID, g.Tables[0].Columns[0].ID)
}

func TestAddColumnMissingTable(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	tk.CreateTable(g, "users", nil, nil)
	before := *g

	column := tk.AddColumn(g, "nope", ColumnSpec{Name: "email", Type: "TEXT"})

	assert.Nil(t, column)
	assert.Equal(t, before, *g)
}

func TestCreateRelationDefaults(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	users := tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)
	posts := tk.CreateTable(g, "posts", []ColumnSpec{{Name: "user_id", Type: "UUID"}}, nil)

	rel := tk.CreateRelation(g, posts.ID, posts.Columns[0].ID, users.ID, users.Columns[0].ID, "", "", "")

	require.NotNil(t, rel)
	assert.Equal(t, OneToMany, rel.Cardinality)
	assert.Equal(t, RuleCascade, rel.DeleteRule)
	assert.Equal(t, RuleCascade, rel.UpdateRule)
	require.Len(t, g.Relations, 1)
}

func TestCreateRelationNormalizesUnknownValues(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	users := tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)
	posts := tk.CreateTable(g, "posts", []ColumnSpec{{Name: "user_id", Type: "UUID"}}, nil)

	// Interpreter spellings like "1:N" must not end up in the graph.
	rel := tk.CreateRelation(g, posts.ID, posts.Columns[0].ID, users.ID, users.Columns[0].ID, "1:N", "nuke", "1:1")

	require.NotNil(t, rel)
	assert.Equal(t, OneToMany, rel.Cardinality)
	assert.Equal(t, RuleCascade, rel.DeleteRule)
	assert.Equal(t, RuleCascade, rel.UpdateRule)

	rel = tk.CreateRelation(g, posts.ID, posts.Columns[0].ID, users.ID, users.Columns[0].ID, ManyToMany, RuleSetNull, RuleRestrict)

	require.NotNil(t, rel)
	assert.Equal(t, ManyToMany, rel.Cardinality)
	assert.Equal(t, RuleSetNull, rel.DeleteRule)
	assert.Equal(t, RuleRestrict, rel.UpdateRule)
}

func TestCreateRelationMissingTable(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	users := tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)

	rel := tk.CreateRelation(g, "ghost", "ghost-col", users.ID, users.Columns[0].ID, OneToMany, RuleCascade, RuleCascade)

	assert.Nil(t, rel)
	assert.Empty(t, g.Relations)
}

func TestCreateRelationColumnMustBelongToTable(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	users := tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)
	posts := tk.CreateTable(g, "posts", []ColumnSpec{{Name: "user_id", Type: "UUID"}}, nil)

	// users.id does not belong to posts.
	rel := tk.CreateRelation(g, posts.ID, users.Columns[0].ID, users.ID, users.Columns[0].ID, "", "", "")

	assert.Nil(t, rel)
	assert.Empty(t, g.Relations)
}

func TestUpdateTableName(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	table := tk.CreateTable(g, "users", nil, nil)

	assert.True(t, tk.UpdateTableName(g, table.ID, "accounts"))
	assert.Equal(t, "accounts", g.Tables[0].Name)

	assert.False(t, tk.UpdateTableName(g, "nope", "whatever"))
	assert.Equal(t, "accounts", g.Tables[0].Name)
}

func TestDeleteTableCascadesRelations(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	users := tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)
	posts := tk.CreateTable(g, "posts", []ColumnSpec{{Name: "user_id", Type: "UUID"}, {Name: "author_id", Type: "UUID"}}, nil)
	comments := tk.CreateTable(g, "comments", []ColumnSpec{{Name: "post_id", Type: "UUID"}}, nil)

	tk.CreateRelation(g, posts.ID, posts.Columns[0].ID, users.ID, users.Columns[0].ID, "", "", "")
	tk.CreateRelation(g, posts.ID, posts.Columns[1].ID, users.ID, users.Columns[0].ID, "", "", "")
	tk.CreateRelation(g, comments.ID, comments.Columns[0].ID, posts.ID, posts.Columns[0].ID, "", "", "")
	require.Len(t, g.Relations, 3)

	require.True(t, tk.DeleteTable(g, users.ID))

	assert.Len(t, g.Tables, 2)
	require.Len(t, g.Relations, 1)
	for _, rel := range g.Relations {
		assert.NotEqual(t, users.ID, rel.From.TableID)
		assert.NotEqual(t, users.ID, rel.To.TableID)
	}
}

func TestDeleteTableIdempotent(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	table := tk.CreateTable(g, "users", nil, nil)

	assert.True(t, tk.DeleteTable(g, table.ID))
	after := *g
	assert.False(t, tk.DeleteTable(g, table.ID))
	assert.Equal(t, after, *g)
}

func TestCreateComplexSchema(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()

	result := tk.CreateComplexSchema(g, ComplexSchemaSpec{
		Tables: []TableSpec{
			{Name: "users", Columns: []ColumnSpec{
				{Name: "id", Type: "UUID", IsPrimary: true},
				{Name: "email", Type: "TEXT"},
			}},
			{Name: "posts", Columns: []ColumnSpec{
				{Name: "id", Type: "UUID", IsPrimary: true},
				{Name: "user_id", Type: "UUID", IsForeign: true},
			}},
		},
		Relations: []RelationSpec{
			{FromTable: "posts", FromColumn: "user_id", ToTable: "users", ToColumn: "id"},
		},
	})

	require.Len(t, result.Tables, 2)
	require.Len(t, result.Relations, 1)
	assert.Len(t, g.Tables, 2)
	assert.Len(t, g.Relations, 1)

	users := g.TableByName("users")
	posts := g.TableByName("posts")
	require.NotNil(t, users)
	require.NotNil(t, posts)

	rel := result.Relations[0]
	assert.Equal(t, posts.ID, rel.From.TableID)
	assert.Equal(t, posts.ColumnByName("user_id").ID, rel.From.ColumnID)
	assert.Equal(t, users.ID, rel.To.TableID)
	assert.Equal(t, users.ColumnByName("id").ID, rel.To.ColumnID)
}

func TestCreateComplexSchemaGridPositions(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()

	specs := make([]TableSpec, 5)
	for i := range specs {
		specs[i] = TableSpec{Name: fmt.Sprintf("t%d", i)}
	}
	result := tk.CreateComplexSchema(g, ComplexSchemaSpec{Tables: specs})

	require.Len(t, result.Tables, 5)
	assert.Equal(t, Position{X: 0, Y: 0}, result.Tables[0].Position)
	assert.Equal(t, Position{X: 300, Y: 0}, result.Tables[1].Position)
	assert.Equal(t, Position{X: 600, Y: 0}, result.Tables[2].Position)
	assert.Equal(t, Position{X: 0, Y: 250}, result.Tables[3].Position)
	assert.Equal(t, Position{X: 300, Y: 250}, result.Tables[4].Position)
}

func TestCreateComplexSchemaResolvesOnlyOwnTables(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	// Pre-existing table with the name the relation will reference.
	tk.CreateTable(g, "users", []ColumnSpec{{Name: "id", Type: "UUID"}}, nil)

	result := tk.CreateComplexSchema(g, ComplexSchemaSpec{
		Tables: []TableSpec{
			{Name: "posts", Columns: []ColumnSpec{{Name: "user_id", Type: "UUID"}}},
		},
		Relations: []RelationSpec{
			{FromTable: "posts", FromColumn: "user_id", ToTable: "users", ToColumn: "id"},
		},
	})

	assert.Len(t, result.Tables, 1)
	assert.Empty(t, result.Relations)
	assert.Empty(t, g.Relations)
}

func TestCreateComplexSchemaSkipsUnknownColumn(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()

	result := tk.CreateComplexSchema(g, ComplexSchemaSpec{
		Tables: []TableSpec{
			{Name: "users", Columns: []ColumnSpec{{Name: "id", Type: "UUID"}}},
			{Name: "posts", Columns: []ColumnSpec{{Name: "user_id", Type: "UUID"}}},
		},
		Relations: []RelationSpec{
			{FromTable: "posts", FromColumn: "writer_id", ToTable: "users", ToColumn: "id"},
		},
	})

	assert.Len(t, result.Tables, 2)
	assert.Empty(t, result.Relations)
}

func TestNameLookupsCaseInsensitiveFirstMatch(t *testing.T) {
	tk := testToolkit()
	g := NewGraph()
	first := tk.CreateTable(g, "Users", []ColumnSpec{{Name: "Email", Type: "TEXT"}}, nil)
	tk.CreateTable(g, "users", nil, nil)

	found := g.TableByName("USERS")
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	column := found.ColumnByName("email")
	require.NotNil(t, column)
	assert.Equal(t, "Email", column.Name)
}
