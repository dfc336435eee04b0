package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/tablegen/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate record declarations before generating tables",
	Long: `Validate your record declarations without touching a database.

This command checks:
- Record and field names (empty names, names that are not plain identifiers)
- Duplicate fields within a record
- Records that would map to the same table name
- Declared types without an explicit mapping (stored as TEXT)
- Whether each table gets a primary key

Examples:
  tablegen validate                       # Validate records.yaml
  tablegen validate -f records.hcl        # Validate an HCL declaration file
  tablegen validate --strict              # Treat unmapped types as errors
  tablegen validate --format json         # Output validation results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		valid, err := validateRecords()
		if err != nil {
			fmt.Printf("❌ Record validation failed: %v\n", err)
			os.Exit(1)
		}
		if !valid {
			os.Exit(1)
		}
	},
}

var (
	validateStrict bool
	validateFormat string
)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Report types without an explicit mapping as errors")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func validateRecords() (bool, error) {
	_, shapes, err := loadRecords()
	if err != nil {
		return false, err
	}

	result := validator.ValidateRecords(shapes, validator.Options{Strict: validateStrict})

	switch validateFormat {
	case "json":
		return result.Valid, outputJSON(result)
	case "text":
		outputText(result)
		return result.Valid, nil
	default:
		return false, fmt.Errorf("unsupported format: %s", validateFormat)
	}
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) {
	if result.Valid {
		color.Green("✅ Record validation passed!")
	} else {
		color.Red("❌ Record validation failed!")
	}

	printIssues("🔴 Errors", result.Errors)
	printIssues("🟡 Warnings", result.Warnings)
	printIssues("🔵 Info", result.Info)

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Printf("\n🎉 Your records are valid and ready for 'tablegen apply'!\n")
	} else {
		fmt.Printf("\n💡 Fix the errors above before applying.\n")
	}
}

func printIssues(title string, issues []validator.ValidationError) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("\n%s (%d):\n", title, len(issues))
	for i, issue := range issues {
		fmt.Printf("  %d. %s\n", i+1, describeIssue(issue))
	}
}
