package loader

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/ridoystarlord/tablegen/schema"
)

const (
	tagKey          = "tablegen"
	ignoreDirective = "//tablegen:ignore"
	// recordDirective overrides the record name, e.g. //tablegen:record line_item.
	recordDirective = "//tablegen:record "
)

// goTypeTags translates Go type spellings into declared type tags understood
// by schema.MapType. Types missing here keep their Go spelling and therefore
// map to TEXT.
var goTypeTags = map[string]string{
	"int32":   "i32",
	"int64":   "i64",
	"uint32":  "u32",
	"uint64":  "u64",
	"int":     "isize",
	"uint":    "usize",
	"float32": "f32",
	"float64": "f64",
	"string":  "String",
	"bool":    "bool",
}

// TagLoader loads record shapes from Go struct declarations. Source is read
// with go/ast, so nothing is reflected on at run time and the generated
// schema always matches the declared structs.
type TagLoader struct {
	modelsDir string
}

// NewTagLoader creates a new tag loader
func NewTagLoader(modelsDir string) *TagLoader {
	return &TagLoader{
		modelsDir: modelsDir,
	}
}

// LoadRecordsFromSource loads record shapes from the Go files in modelsDir.
func LoadRecordsFromSource(modelsDir string) ([]schema.RecordShape, error) {
	return NewTagLoader(modelsDir).Load(context.Background())
}

// Load parses every non-test .go file under the models directory. Files are
// parsed concurrently; records come back in file-name then declaration order.
func (tl *TagLoader) Load(ctx context.Context) ([]schema.RecordShape, error) {
	if _, err := os.Stat(tl.modelsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("models directory '%s' does not exist. Run 'tablegen init --go' first", tl.modelsDir)
	}

	var files []string
	err := filepath.WalkDir(tl.modelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk models: %w", err)
	}

	perFile := make([][]schema.RecordShape, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shapes, err := tl.parseGoFile(path)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			perFile[i] = shapes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var shapes []schema.RecordShape
	for _, s := range perFile {
		shapes = append(shapes, s...)
	}
	return shapes, nil
}

// parseGoFile parses a single Go file and extracts one record per struct type.
func (tl *TagLoader) parseGoFile(filePath string) ([]schema.RecordShape, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return tl.parseFile(node), nil
}

func (tl *TagLoader) parseFile(node *ast.File) []schema.RecordShape {
	var shapes []schema.RecordShape
	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if hasIgnoreDirective(gen.Doc) || hasIgnoreDirective(ts.Doc) {
				continue
			}
			name := ts.Name.Name
			if n, ok := recordName(ts.Doc); ok {
				name = n
			} else if n, ok := recordName(gen.Doc); ok && len(gen.Specs) == 1 {
				name = n
			}
			shapes = append(shapes, tl.parseStruct(name, st))
		}
	}
	return shapes
}

func hasIgnoreDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == ignoreDirective {
			return true
		}
	}
	return false
}

// recordName returns the name given by a //tablegen:record directive.
func recordName(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if name, ok := strings.CutPrefix(c.Text, recordDirective); ok {
			if name = strings.TrimSpace(name); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// parseStruct converts a struct declaration to a record shape.
func (tl *TagLoader) parseStruct(structName string, structType *ast.StructType) schema.RecordShape {
	shape := schema.RecordShape{Name: structName}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded
		}

		tagName, skip := tl.parseTag(field.Tag)
		if skip {
			continue
		}
		declared := tl.getFieldType(field.Type)

		for _, ident := range field.Names {
			if ident.Name == "_" {
				continue
			}
			name := tagName
			if name == "" || len(field.Names) > 1 {
				name = tl.toSnakeCase(ident.Name)
			}
			shape.Fields = append(shape.Fields, schema.FieldDescriptor{
				Name:         name,
				DeclaredType: declared,
			})
		}
	}

	return shape
}

// parseTag returns the column name from a `tablegen:"name"` tag and whether
// the field is excluded with `tablegen:"-"`.
func (tl *TagLoader) parseTag(tag *ast.BasicLit) (string, bool) {
	if tag == nil {
		return "", false
	}

	tagValue := strings.Trim(tag.Value, "`")
	value, ok := reflect.StructTag(tagValue).Lookup(tagKey)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "-" {
		return "", true
	}
	return value, false
}

// getFieldType returns the declared type tag for a field type expression.
func (tl *TagLoader) getFieldType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		if tag, ok := goTypeTags[t.Name]; ok {
			return tag
		}
		return t.Name
	case *ast.ArrayType:
		if elt, ok := t.Elt.(*ast.Ident); ok && t.Len == nil && (elt.Name == "byte" || elt.Name == "uint8") {
			return "byte-sequence"
		}
	}
	return types.ExprString(expr)
}

// toSnakeCase converts PascalCase to snake_case. An acronym run is one word
// until its last capital starts the next word: HTTPPort becomes http_port and
// UserID becomes user_id.
func (tl *TagLoader) toSnakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
