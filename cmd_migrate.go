package main

import (
	"sick-fits/logging"
	"sick-fits/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := migrations.Run(db); err != nil {
			return err
		}
		logging.New("migrate").Info("schema migrated")
		return nil
	},
}
