package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/tablegen/config"
	"github.com/ridoystarlord/tablegen/database"
	"github.com/ridoystarlord/tablegen/studio"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Launch a web preview of records and tables",
	Long: `Launch tablegen studio, a read-only HTTP preview of your records.

Endpoints:
- GET /api/records          declared records
- GET /api/schema           CREATE TABLE statement per record
- GET /api/schema/:record   one record's statement and columns
- GET /api/tables           tables that already exist in the database
- GET /schema.sql           every statement as plain SQL

The server listens on http://localhost:8080 by default.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, shapes, err := loadRecords()
		if err != nil {
			log.Fatalf("❌ Loading records: %v", err)
		}

		server := studio.NewServer(shapes, nil)
		db, err := database.GetDB()
		if err != nil {
			fmt.Println("⚠️  Database unavailable, /api/tables is disabled:", err)
		} else {
			defer database.Close()
			server = studio.NewServer(shapes, db)
		}

		fmt.Printf("🚀 Starting tablegen studio on http://localhost:%s\n", cfg.StudioPort)
		fmt.Println("Press Ctrl+C to stop the server")

		if err := server.Run(":" + cfg.StudioPort); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	studioCmd.Flags().String("port", "8080", "Port to run the web server on")
	viper.BindPFlag(config.KeyStudioPort, studioCmd.Flags().Lookup("port"))
}
