package docs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/tablegen/schema"
)

var user = schema.RecordShape{
	Name: "User",
	Fields: []schema.FieldDescriptor{
		{Name: "id", DeclaredType: "i32"},
		{Name: "name", DeclaredType: "String"},
		{Name: "avatar", DeclaredType: "byte-sequence"},
	},
}

func TestMermaid(t *testing.T) {
	want := "# Database Schema ERD\n\n" +
		"```mermaid\nerDiagram\n" +
		"    users {\n" +
		"        INTEGER id PK\n" +
		"        TEXT name\n" +
		"        BLOB avatar\n" +
		"    }\n" +
		"```\n"
	require.Equal(t, want, Mermaid([]schema.RecordShape{user}))
}

func TestMarkdown(t *testing.T) {
	out := Markdown([]schema.RecordShape{user})

	require.Contains(t, out, "## users\n")
	require.Contains(t, out, "Record: `User`")
	require.Contains(t, out, "| id | i32 | INTEGER | yes |\n")
	require.Contains(t, out, "| avatar | byte-sequence | BLOB |  |\n")
	require.Contains(t, out, "```sql\nCREATE TABLE IF NOT EXISTS users (\n    id INTEGER PRIMARY KEY AUTOINCREMENT,\n    name TEXT,\n    avatar BLOB\n);\n```\n")
}

func TestRender(t *testing.T) {
	t.Parallel()

	for _, format := range Formats {
		out, err := Render(format, []schema.RecordShape{user})
		require.NoError(t, err, format)
		require.NotEmpty(t, out)
	}

	_, err := Render("plantuml", nil)
	require.ErrorContains(t, err, `unsupported docs format "plantuml"`)
}
