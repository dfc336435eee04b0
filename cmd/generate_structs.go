package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/tablegen/structgen"
)

var (
	structsOutputDir string
	structsPackage   string
)

func init() {
	generateStructsCmd.Flags().StringVarP(&structsOutputDir, "output", "o", "models", "Output directory for generated structs")
	generateStructsCmd.Flags().StringVarP(&structsPackage, "package", "p", "models", "Package name for generated structs")
}

var generateStructsCmd = &cobra.Command{
	Use:   "generate-structs",
	Short: "Generate Go structs from record declarations",
	Long: `Generate Go structs with tablegen tags from your YAML or HCL records.

The generated file can be used with --models in place of the declaration
file; it yields the same tables.

Examples:
  tablegen generate-structs                      # Write ./models/models.go
  tablegen generate-structs -o ./internal/models # Custom output directory
  tablegen generate-structs -p entities          # Custom package name
`,
	Run: func(cmd *cobra.Command, args []string) {
		_, shapes, err := loadRecords()
		if err != nil {
			fmt.Println("❌ Loading records:", err)
			os.Exit(1)
		}
		if err := checkRecords(shapes); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		path, err := structgen.Write(structsOutputDir, structsPackage, shapes)
		if err != nil {
			fmt.Println("❌ Generating structs:", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Generated %d struct(s) in %s\n", len(shapes), path)
	},
}
