package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/tablegen/schema"
)

var wantUser = schema.RecordShape{
	Name: "User",
	Fields: []schema.FieldDescriptor{
		{Name: "id", DeclaredType: "i32"},
		{Name: "name", DeclaredType: "String"},
		{Name: "email", DeclaredType: "String"},
		{Name: "age", DeclaredType: "u32"},
		{Name: "is_active", DeclaredType: "bool"},
	},
}

var wantProduct = schema.RecordShape{
	Name: "Product",
	Fields: []schema.FieldDescriptor{
		{Name: "id", DeclaredType: "i32"},
		{Name: "name", DeclaredType: "String"},
		{Name: "price", DeclaredType: "f64"},
		{Name: "in_stock", DeclaredType: "bool"},
		{Name: "image_data", DeclaredType: "byte-sequence"},
	},
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRecordsFromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "records.yaml", `
records:
  - name: User
    fields:
      - {name: id, type: i32}
      - {name: name, type: String}
      - {name: email, type: String}
      - {name: age, type: u32}
      - {name: is_active, type: bool}
  - name: Product
    fields:
      - name: id
        type: i32
      - name: name
        type: String
      - name: price
        type: f64
      - name: in_stock
        type: bool
      - name: image_data
        type: byte-sequence
`)

	shapes, err := LoadRecords(path)
	require.NoError(t, err)
	require.Equal(t, []schema.RecordShape{wantUser, wantProduct}, shapes)
}

func TestLoadRecordsFromYAML_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRecordsFromYAML(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "reading records file")

	path := writeFile(t, dir, "bad.yaml", "records: {name: [\n")
	_, err = LoadRecordsFromYAML(path)
	require.ErrorContains(t, err, "unmarshalling YAML")
}

func TestLoadRecordsFromHCL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "records.hcl", `
record "User" {
  field "id" { type = "i32" }
  field "name" { type = "String" }
  field "email" { type = "String" }
  field "age" { type = "u32" }
  field "is_active" { type = "bool" }
}

record "Product" {
  field "id" { type = "i32" }
  field "name" { type = "String" }
  field "price" { type = "f64" }
  field "in_stock" { type = "bool" }
  field "image_data" { type = "byte-sequence" }
}
`)

	shapes, err := LoadRecords(path)
	require.NoError(t, err)
	require.Equal(t, []schema.RecordShape{wantUser, wantProduct}, shapes)
}

func TestLoadRecordsFromHCL_Errors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.hcl", `record "User" { field "id" {} }`)
	_, err := LoadRecordsFromHCL(path)
	require.ErrorContains(t, err, "decoding HCL")
}

func TestLoadRecords_UnsupportedExtension(t *testing.T) {
	_, err := LoadRecords("records.toml")
	require.ErrorContains(t, err, "unsupported records file")
}

func TestLoadRecordsFromSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_user.go", "package models\n\n"+
		"type User struct {\n"+
		"\tID       int32\n"+
		"\tName     string\n"+
		"\tEmail    string\n"+
		"\tAge      uint32\n"+
		"\tIsActive bool\n"+
		"}\n")
	writeFile(t, dir, "b_product.go", "package models\n\n"+
		"type Product struct {\n"+
		"\tID        int32   `tablegen:\"id\"`\n"+
		"\tName      string\n"+
		"\tPrice     float64\n"+
		"\tInStock   bool\n"+
		"\tImageData []byte\n"+
		"\tcache     map[string]int `tablegen:\"-\"`\n"+
		"}\n\n"+
		"//tablegen:ignore\n"+
		"type productCache struct{ hits int }\n\n"+
		"type Price float64\n")
	writeFile(t, dir, "b_product_test.go", "package models\n\ntype Fixture struct{ ID int32 }\n")

	shapes, err := LoadRecordsFromSource(dir)
	require.NoError(t, err)
	require.Equal(t, []schema.RecordShape{wantUser, wantProduct}, shapes)
}

func TestLoadRecordsFromSource_RecordDirective(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "models.go", "package models\n\n"+
		"// LineItem is stored in the line_items table.\n"+
		"//\n"+
		"//tablegen:record line_item\n"+
		"type LineItem struct {\n"+
		"\tID int32 `tablegen:\"id\"`\n"+
		"}\n\n"+
		"type (\n"+
		"\t//tablegen:record order_row\n"+
		"\tOrderRow struct{ ID int64 }\n"+
		"\tPlain    struct{ ID int64 }\n"+
		")\n")

	shapes, err := LoadRecordsFromSource(dir)
	require.NoError(t, err)
	require.Len(t, shapes, 3)
	require.Equal(t, "line_item", shapes[0].Name)
	require.Equal(t, "line_items", schema.TableName(shapes[0].Name))
	require.Equal(t, "order_row", shapes[1].Name)
	require.Equal(t, "Plain", shapes[2].Name)
}

func TestTagLoader_FieldTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nested/event.go", "package models\n\n"+
		"import \"time\"\n\n"+
		"type Event struct {\n"+
		"\tSeq, Offset  int64\n"+
		"\tWhen         time.Time\n"+
		"\tRaw          []uint8\n"+
		"\tTags         []string\n"+
		"\tSize         uint\n"+
		"\tCount        int\n"+
		"\tSmall        int8\n"+
		"\tRatio        float32\n"+
		"\tParent       *int64\n"+
		"\tUserID       uint64 `json:\"user\"`\n"+
		"\tEmbedded\n"+
		"}\n")

	shapes, err := LoadRecordsFromSource(dir)
	require.NoError(t, err)
	require.Equal(t, []schema.RecordShape{{
		Name: "Event",
		Fields: []schema.FieldDescriptor{
			{Name: "seq", DeclaredType: "i64"},
			{Name: "offset", DeclaredType: "i64"},
			{Name: "when", DeclaredType: "time.Time"},
			{Name: "raw", DeclaredType: "byte-sequence"},
			{Name: "tags", DeclaredType: "[]string"},
			{Name: "size", DeclaredType: "usize"},
			{Name: "count", DeclaredType: "isize"},
			{Name: "small", DeclaredType: "int8"},
			{Name: "ratio", DeclaredType: "f32"},
			{Name: "parent", DeclaredType: "*int64"},
			{Name: "user_id", DeclaredType: "u64"},
		},
	}}, shapes)
}

func TestLoadRecordsFromSource_Errors(t *testing.T) {
	_, err := LoadRecordsFromSource(filepath.Join(t.TempDir(), "nope"))
	require.ErrorContains(t, err, "does not exist")

	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package models\n\ntype User struct {\n")
	_, err = LoadRecordsFromSource(dir)
	require.ErrorContains(t, err, "failed to parse")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "models/user.go", "package models\n\ntype Note struct{ Body string }\n")
	path := writeFile(t, dir, "records.yaml", "records:\n  - name: Tag\n    fields:\n      - {name: id, type: i64}\n")

	shapes, err := Load(path, filepath.Join(dir, "models"))
	require.NoError(t, err)
	require.Equal(t, "Note", shapes[0].Name)

	shapes, err = Load(path, "")
	require.NoError(t, err)
	require.Equal(t, "Tag", shapes[0].Name)
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tl := NewTagLoader("")
	tests := map[string]string{
		"ID":        "id",
		"IsActive":  "is_active",
		"ImageData": "image_data",
		"UserID":    "user_id",
		"name":      "name",
		"HTTPPort":  "http_port",
		"Sha256Sum": "sha256_sum",
		"userName":  "user_name",
	}
	for in, want := range tests {
		require.Equal(t, want, tl.toSnakeCase(in), in)
	}
}
