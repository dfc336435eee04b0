package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/tablegen/config"
)

var rootCmd = &cobra.Command{
	Use:   "tablegen",
	Short: "Generate SQLite tables from record declarations",
	Long: `tablegen derives CREATE TABLE statements from record declarations
(YAML, HCL or Go structs) and applies them to a SQLite database.

Table names are the lower-cased record name plus "s". An integer field named
"id" becomes the primary key. Every statement is CREATE TABLE IF NOT EXISTS,
so applying twice is safe.

Examples:

  tablegen init
  tablegen generate
  tablegen apply --db company.db
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return err
		}
		return config.Setup(viper.GetViper())
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "company.db", "SQLite database file or DSN")
	flags.StringP("file", "f", "records.yaml", "Records file (.yaml, .yml or .hcl)")
	flags.StringP("models", "m", "", "Directory of Go structs to load records from (overrides --file)")

	viper.BindPFlag(config.KeyDatabase, flags.Lookup("db"))
	viper.BindPFlag(config.KeyFile, flags.Lookup("file"))
	viper.BindPFlag(config.KeyModels, flags.Lookup("models"))

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(generateStructsCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(docsCmd)
}
