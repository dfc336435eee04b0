// Package structgen writes Go struct declarations for record shapes. The
// output carries tablegen tags, so the structs load back through
// loader.LoadRecordsFromSource into the same records.
package structgen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/ridoystarlord/tablegen/schema"
)

// FileName is the file Write creates in the output directory.
const FileName = "models.go"

// goTypes maps declared type tags back to Go types.
var goTypes = map[string]string{
	"i32":           "int32",
	"i64":           "int64",
	"u32":           "uint32",
	"u64":           "uint64",
	"isize":         "int",
	"usize":         "uint",
	"f32":           "float32",
	"f64":           "float64",
	"String":        "string",
	"string-slice":  "string",
	"bool":          "bool",
	"byte-sequence": "[]byte",
}

type fileData struct {
	Package string
	Records []recordData
}

type recordData struct {
	Name   string
	Table  string
	Record string // set when Name does not spell the record name
	Fields []fieldData
}

type fieldData struct {
	Name    string
	Type    string
	Column  string
	Comment string
}

var fileTemplate = template.Must(template.New("models").Parse(`// Code generated by tablegen generate-structs. DO NOT EDIT.

package {{.Package}}
{{range .Records}}
// {{.Name}} is stored in the {{.Table}} table.
{{- if .Record}}
//
//tablegen:record {{.Record}}
{{- end}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} ` + "`" + `tablegen:"{{.Column}}"` + "`" + `{{if .Comment}} // {{.Comment}}{{end}}
{{- end}}
}
{{end}}`))

// Generate renders gofmt-ed Go source declaring one struct per record.
// Records whose name is not a Go type name get a //tablegen:record directive
// so they load back under the same name. Names that collide once converted
// to Go identifiers are an error.
func Generate(pkg string, shapes []schema.RecordShape) ([]byte, error) {
	if !isIdentifier(pkg) {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	data := fileData{Package: pkg}
	typeNames := make(map[string]string, len(shapes))
	for _, shape := range shapes {
		rd := recordData{
			Name:  toPascalCase(shape.Name),
			Table: schema.TableName(shape.Name),
		}
		if rd.Name != shape.Name {
			if shape.Name == "" || strings.TrimSpace(shape.Name) != shape.Name || strings.ContainsAny(shape.Name, "\n\r") {
				return nil, fmt.Errorf("record name %q cannot be written as a directive", shape.Name)
			}
			rd.Record = shape.Name
		}
		if other, ok := typeNames[rd.Name]; ok {
			return nil, fmt.Errorf("records %q and %q both become Go type %s", other, shape.Name, rd.Name)
		}
		typeNames[rd.Name] = shape.Name

		fieldNames := make(map[string]string, len(shape.Fields))
		for _, f := range shape.Fields {
			fd := fieldData{
				Name:   toPascalCase(f.Name),
				Type:   goType(f.DeclaredType),
				Column: f.Name,
			}
			if other, ok := fieldNames[fd.Name]; ok {
				return nil, fmt.Errorf("record %q: fields %q and %q both become Go field %s", shape.Name, other, f.Name, fd.Name)
			}
			fieldNames[fd.Name] = f.Name
			if strings.ContainsAny(f.Name, "\"`") {
				return nil, fmt.Errorf("record %q: field name %q cannot be written as a struct tag", shape.Name, f.Name)
			}
			if _, ok := goTypes[f.DeclaredType]; !ok {
				fd.Comment = fmt.Sprintf("declared as %s", f.DeclaredType)
			}
			rd.Fields = append(rd.Fields, fd)
		}
		data.Records = append(data.Records, rd)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// Write generates the structs into dir/models.go and returns the file path.
func Write(dir, pkg string, shapes []schema.RecordShape) (string, error) {
	src, err := Generate(pkg, shapes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// goType returns the Go type for a declared type. Unmapped types are stored
// as TEXT, so they become strings.
func goType(declared string) string {
	if t, ok := goTypes[declared]; ok {
		return t
	}
	return "string"
}

// toPascalCase converts snake_case (or any punctuated name) to an exported
// Go identifier. "id" becomes "ID".
func toPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, part := range parts {
		if strings.EqualFold(part, "id") {
			sb.WriteString("ID")
			continue
		}
		runes := []rune(part)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}

	name := sb.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "X" + name
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
