// Package docs renders human-readable descriptions of the tables records map
// to.
package docs

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/tablegen/generator"
	"github.com/ridoystarlord/tablegen/schema"
)

// Formats lists the supported output formats.
var Formats = []string{"mermaid", "markdown"}

// Render returns the documentation for shapes in the named format.
func Render(format string, shapes []schema.RecordShape) (string, error) {
	switch format {
	case "mermaid":
		return Mermaid(shapes), nil
	case "markdown":
		return Markdown(shapes), nil
	default:
		return "", fmt.Errorf("unsupported docs format %q (want %s)", format, strings.Join(Formats, ", "))
	}
}

// Mermaid renders an ERD with one entity per table.
func Mermaid(shapes []schema.RecordShape) string {
	var content strings.Builder

	content.WriteString("# Database Schema ERD\n\n")
	content.WriteString("```mermaid\nerDiagram\n")
	for _, shape := range shapes {
		desc := schema.BuildSchema(shape)
		content.WriteString(fmt.Sprintf("    %s {\n", desc.TableName))
		for _, col := range desc.Columns {
			line := fmt.Sprintf("        %s %s", col.StorageType, col.Name)
			if col.IsPrimaryKey {
				line += " PK"
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("    }\n")
	}
	content.WriteString("```\n")

	return content.String()
}

// Markdown renders a section per table with its columns and DDL.
func Markdown(shapes []schema.RecordShape) string {
	var content strings.Builder

	content.WriteString("# Tables\n")
	for _, shape := range shapes {
		desc := schema.BuildSchema(shape)

		content.WriteString(fmt.Sprintf("\n## %s\n\n", desc.TableName))
		content.WriteString(fmt.Sprintf("Record: `%s`\n\n", shape.Name))
		content.WriteString("| Column | Declared type | Storage type | Primary key |\n")
		content.WriteString("|--------|---------------|--------------|-------------|\n")
		for i, col := range desc.Columns {
			pk := ""
			if col.IsPrimaryKey {
				pk = "yes"
			}
			content.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				col.Name, shape.Fields[i].DeclaredType, col.StorageType, pk))
		}
		content.WriteString("\n```sql\n")
		content.WriteString(generator.Render(desc))
		content.WriteString("\n```\n")
	}

	return content.String()
}
