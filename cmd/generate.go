package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/tablegen/config"
	"github.com/ridoystarlord/tablegen/generator"
)

var writeGenerate bool
var generateFormat string

func init() {
	generateCmd.Flags().BoolVarP(&writeGenerate, "write", "w", false, "Also write the statements to a schema file in the output directory")
	generateCmd.Flags().StringP("output", "o", "schemas", "Output directory for schema files")
	generateCmd.Flags().StringVar(&generateFormat, "format", "text", "Output format (text, json)")
	viper.BindPFlag(config.KeyOutput, generateCmd.Flags().Lookup("output"))
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print the CREATE TABLE statement for every record",
	Long: `Generate CREATE TABLE statements from your record declarations.

Records are read from records.yaml by default, from another YAML or HCL file
with --file, or from Go structs with --models.

Examples:
  tablegen generate                     # Print DDL for records.yaml
  tablegen generate -f records.hcl      # Use an HCL declaration file
  tablegen generate -m ./models         # Read Go structs from ./models
  tablegen generate --write             # Also write schemas/<id>_schema.sql
  tablegen generate --format json       # Machine-readable output
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, shapes, err := loadRecords()
		if err != nil {
			fmt.Println("❌ Loading records:", err)
			os.Exit(1)
		}
		if err := checkRecords(shapes); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		stmts := generator.GenerateAll(shapes)

		switch generateFormat {
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stmts); err != nil {
				fmt.Println("❌ Encoding statements:", err)
				os.Exit(1)
			}
		case "text":
			cyan := color.New(color.FgCyan)
			for _, st := range stmts {
				cyan.Printf("-- %s -> %s\n", st.Record, st.Table)
				fmt.Println(st.SQL)
				fmt.Println()
			}
		default:
			fmt.Printf("❌ Unsupported format: %s\n", generateFormat)
			os.Exit(1)
		}

		if !writeGenerate {
			return
		}

		filename, err := generator.WriteSchemaFile(cfg.Output, stmts)
		if err != nil {
			fmt.Println("❌ Writing schema file:", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "✅ Schema written:", filename)
	},
}
