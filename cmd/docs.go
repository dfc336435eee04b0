package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/tablegen/docs"
)

var (
	docsFormat string
	docsOutput string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate documentation for the record tables",
	Long: `Generate documentation of the tables your records map to.

Supported formats:
  - mermaid: Mermaid ERD diagram
  - markdown: one section per table with its columns and DDL

Examples:
  tablegen docs                                # Mermaid ERD on stdout
  tablegen docs --format markdown --output tables.md
`,
	Run: func(cmd *cobra.Command, args []string) {
		_, shapes, err := loadRecords()
		if err != nil {
			fmt.Printf("❌ Error loading records: %v\n", err)
			os.Exit(1)
		}

		content, err := docs.Render(docsFormat, shapes)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if docsOutput == "" {
			fmt.Print(content)
			return
		}
		if err := os.WriteFile(docsOutput, []byte(content), 0644); err != nil {
			fmt.Printf("❌ Error writing %s: %v\n", docsOutput, err)
			os.Exit(1)
		}
		fmt.Printf("✅ Documentation saved to: %s\n", docsOutput)
	},
}

func init() {
	docsCmd.Flags().StringVar(&docsFormat, "format", "mermaid", "Output format (mermaid, markdown)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Write to this file instead of stdout")
}
