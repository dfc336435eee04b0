package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/ridoystarlord/tablegen/schema"
)

const (
	columnIndent     = "    "
	primaryKeySuffix = " PRIMARY KEY AUTOINCREMENT"
	checksumPrefix   = "-- Checksum: xxh3:"
)

// Statement is the rendered DDL for one record.
type Statement struct {
	Record string `json:"record"`
	Table  string `json:"table"`
	SQL    string `json:"sql"`
}

// Render converts a schema descriptor into an idempotent CREATE TABLE
// statement:
//
//	CREATE TABLE IF NOT EXISTS users (
//	    id INTEGER PRIMARY KEY AUTOINCREMENT,
//	    name TEXT
//	);
func Render(s schema.SchemaDescriptor) string {
	cols := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		col := columnIndent + c.Name + " " + c.StorageType.String()
		if c.IsPrimaryKey {
			col += primaryKeySuffix
		}
		cols = append(cols, col)
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(s.TableName)
	sb.WriteString(" (\n")
	sb.WriteString(strings.Join(cols, ",\n"))
	sb.WriteString("\n);")
	return sb.String()
}

// Generate builds and renders the DDL for a single record shape.
func Generate(shape schema.RecordShape) Statement {
	desc := schema.BuildSchema(shape)
	return Statement{
		Record: shape.Name,
		Table:  desc.TableName,
		SQL:    Render(desc),
	}
}

// GenerateAll renders every shape. Shapes are independent, so they are
// rendered concurrently; the result keeps the input order.
func GenerateAll(shapes []schema.RecordShape) []Statement {
	out := make([]Statement, len(shapes))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, shape := range shapes {
		g.Go(func() error {
			out[i] = Generate(shape)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Checksum returns the hex xxh3 digest of a schema body.
func Checksum(body string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(body))
}

func schemaBody(stmts []Statement) string {
	var sb strings.Builder
	for _, st := range stmts {
		fmt.Fprintf(&sb, "-- Table: %s (%s)\n", st.Table, st.Record)
		sb.WriteString(st.SQL)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteSchemaFile saves the statements into dir/<ULID>_schema.sql. The
// header carries a checksum of the body so ReadSchemaFile can detect edits.
func WriteSchemaFile(dir string, stmts []Statement) (string, error) {
	if len(stmts) == 0 {
		return "", fmt.Errorf("no statements to write")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating schema folder: %w", err)
	}

	id := ulid.Make()
	filename := filepath.Join(dir, fmt.Sprintf("%s_schema.sql", id))

	body := schemaBody(stmts)
	content := "-- Schema: " + id.String() + "\n"
	content += "-- Description: Auto-generated by tablegen\n"
	content += checksumPrefix + Checksum(body) + "\n\n"
	content += body

	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing schema file: %w", err)
	}

	return filename, nil
}

// ReadSchemaFile returns the SQL body of a file written by WriteSchemaFile,
// verifying its checksum.
func ReadSchemaFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading schema file: %w", err)
	}

	header, body, ok := strings.Cut(string(content), "\n\n")
	if !ok {
		return "", fmt.Errorf("schema file %s has no header", path)
	}

	var want string
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(line, checksumPrefix) {
			want = strings.TrimPrefix(line, checksumPrefix)
		}
	}
	if want == "" {
		return "", fmt.Errorf("schema file %s has no checksum", path)
	}
	if got := Checksum(body); got != want {
		return "", fmt.Errorf("schema file %s checksum mismatch: header %s, body %s", path, want, got)
	}

	return body, nil
}
