package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const exampleYAML = `# Record declarations. Each record becomes a table named after the
# lower-cased record name plus "s". An integer field named "id" becomes the
# primary key.
#
# Types: i32 i64 u32 u64 isize usize -> INTEGER, f32 f64 -> REAL,
# String string-slice -> TEXT, bool -> INTEGER, byte-sequence -> BLOB.
# Anything else is stored as TEXT.
records:
  - name: User
    fields:
      - name: id
        type: i32
      - name: name
        type: String
      - name: email
        type: String
      - name: age
        type: u32
      - name: is_active
        type: bool

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
`

const exampleHCL = `# Record declarations. Each record becomes a table named after the
# lower-cased record name plus "s". An integer field named "id" becomes the
# primary key.

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
`

const exampleModels = `package models

// Each exported struct becomes a table named after the lower-cased struct
// name plus "s". Field names are converted to snake_case; override one with
// a tablegen:"column" tag or skip it with tablegen:"-".
//
// Structs preceded by a //tablegen:ignore comment are not tables.

// User is a registered account.
type User struct {
	ID       int32
	Name     string
	Email    string
	Age      uint32
	IsActive bool
}

// Product is something for sale.
type Product struct {
	ID        int32
	Name      string
	Price     float64
	InStock   bool
	ImageData []byte
	Notes     string ` + "`tablegen:\"-\"`" + `
}
`

var (
	initHCL bool
	initGo  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example record declaration file",
	Long: `Initialize a new tablegen project with example User and Product records.

By default a records.yaml file is written. Use --hcl for records.hcl or --go
for Go structs in models/models.go.

Examples:
  tablegen init             # Write records.yaml
  tablegen init --hcl       # Write records.hcl
  tablegen init --go        # Write models/models.go`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			path    string
			content string
			next    string
		)
		switch {
		case initGo:
			path, content, next = filepath.Join("models", "models.go"), exampleModels, "tablegen generate -m models"
		case initHCL:
			path, content, next = "records.hcl", exampleHCL, "tablegen generate -f records.hcl"
		default:
			path, content, next = "records.yaml", exampleYAML, "tablegen generate"
		}

		if err := writeExample(path, content); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Created %s example file.\n", path)
		fmt.Printf("📝 Edit %s to declare your records\n", path)
		fmt.Printf("🚀 Run '%s' to see the CREATE TABLE statements\n", next)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initHCL, "hcl", false, "Write an HCL declaration file")
	initCmd.Flags().BoolVar(&initGo, "go", false, "Write Go structs to models/models.go")
}

// writeExample writes content to path, refusing to overwrite an existing file.
func writeExample(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	return nil
}
