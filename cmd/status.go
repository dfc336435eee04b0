package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/tablegen/database"
	"github.com/ridoystarlord/tablegen/introspect"
	"github.com/ridoystarlord/tablegen/schema"
)

// TableStatus reports whether a record's table exists in the database.
type TableStatus struct {
	Record  string
	Table   string
	Present bool
	Columns []introspect.ExistingColumn
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which record tables exist in the database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, shapes, err := loadRecords()
		if err != nil {
			fmt.Println("❌ Loading records:", err)
			os.Exit(1)
		}

		db, err := database.GetDB()
		if err != nil {
			fmt.Println("❌ Database connection failed:", err)
			os.Exit(1)
		}
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		statuses, extra, err := tableStatus(ctx, db, shapes)
		if err != nil {
			fmt.Println("❌ Status error:", err)
			os.Exit(1)
		}

		fmt.Printf("📦 Database: %s\n\n", cfg.Database)
		fmt.Println("✅ Present tables:")
		for _, s := range statuses {
			if s.Present {
				fmt.Printf("   - %s (%s, %d columns)\n", s.Table, s.Record, len(s.Columns))
			}
		}

		fmt.Println("\n🕒 Missing tables:")
		for _, s := range statuses {
			if !s.Present {
				fmt.Printf("   - %s (%s)\n", s.Table, s.Record)
			}
		}

		if len(extra) > 0 {
			fmt.Println("\n📋 Other tables:")
			for _, t := range extra {
				fmt.Println("   -", t)
			}
		}
	},
}

// tableStatus matches each record's table against the database. Tables no
// record maps to are returned as extra.
func tableStatus(ctx context.Context, db database.Querier, shapes []schema.RecordShape) ([]TableStatus, []string, error) {
	existing, err := introspect.IntrospectDatabase(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	byName := make(map[string]introspect.ExistingTable, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.TableName)] = t
	}

	statuses := make([]TableStatus, 0, len(shapes))
	claimed := make(map[string]bool, len(shapes))
	for _, shape := range shapes {
		table := schema.TableName(shape.Name)
		s := TableStatus{Record: shape.Name, Table: table}
		if t, ok := byName[table]; ok {
			s.Present = true
			s.Columns = t.Columns
		}
		claimed[table] = true
		statuses = append(statuses, s)
	}

	var extra []string
	for _, t := range existing {
		if !claimed[strings.ToLower(t.TableName)] {
			extra = append(extra, t.TableName)
		}
	}

	return statuses, extra, nil
}
