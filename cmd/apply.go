package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/tablegen/config"
	"github.com/ridoystarlord/tablegen/database"
	"github.com/ridoystarlord/tablegen/generator"
	"github.com/ridoystarlord/tablegen/runner"
)

var (
	dryRunApply  bool
	applySQLFile string
	applyTimeout time.Duration
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create a table for every record in the database",
	Long: `Create one table per record in the configured SQLite database.

Every statement is CREATE TABLE IF NOT EXISTS: tables that already exist are
left untouched, even if their columns differ from the declaration. A failing
record does not stop the others.

Examples:
  tablegen apply                              # Apply records.yaml to company.db
  tablegen apply --db app.db -m ./models      # Apply Go structs to app.db
  tablegen apply --dry-run                    # Preview the SQL only
  tablegen apply --sql schemas/01J..._schema.sql  # Apply a generated schema file
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
		defer cancel()

		if applySQLFile != "" {
			if err := applySchemaFile(ctx, applySQLFile); err != nil {
				fmt.Println("❌ Apply failed:", err)
				os.Exit(1)
			}
			return
		}

		cfg, shapes, err := loadRecords()
		if err != nil {
			fmt.Println("❌ Loading records:", err)
			os.Exit(1)
		}
		if err := checkRecords(shapes); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		if dryRunApply {
			fmt.Printf("🔍 Dry run against %s, nothing will be executed:\n\n", cfg.Database)
			for _, st := range generator.GenerateAll(shapes) {
				fmt.Println(st.SQL)
				fmt.Println()
			}
			return
		}

		db, err := database.GetDB()
		if err != nil {
			fmt.Println("❌ Database connection failed:", err)
			os.Exit(1)
		}
		defer database.Close()

		results := runner.New(db, os.Stdout).WithLocation(cfg.Database).CreateTables(ctx, shapes)
		failed := runner.Failed(results)
		if len(failed) > 0 {
			color.Red("❌ %d of %d table(s) failed", len(failed), len(results))
			// os.Exit skips the deferred Close.
			database.Close()
			os.Exit(1)
		}
		color.Green("🎉 %d table(s) ready in %s", len(results), cfg.Database)
	},
}

func init() {
	applyCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Preview the SQL that would be executed without touching the database")
	applyCmd.Flags().StringVar(&applySQLFile, "sql", "", "Apply a schema file written by 'generate --write' instead of the records")
	applyCmd.Flags().DurationVarP(&applyTimeout, "timeout", "t", 30*time.Second, "Timeout for the whole apply")
}

func applySchemaFile(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	body, err := generator.ReadSchemaFile(path)
	if err != nil {
		return err
	}
	if dryRunApply {
		fmt.Println(body)
		return nil
	}

	if err := runner.Apply(ctx, cfg.Database, body); err != nil {
		return err
	}
	color.Green("✅ Applied %s to %s", path, cfg.Database)
	return nil
}
