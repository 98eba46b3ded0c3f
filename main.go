package main

import (
	"fmt"
	"os"

	"sick-fits/config"
	"sick-fits/infra"
	"sick-fits/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sick-fits",
	Short: "Sick Fits store backend",
	Long:  "Serves the Sick Fits GraphQL API, REST endpoints and storefront pages.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		infra.Initialize()
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Init(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(grantCmd)
}

func openDB() (*gorm.DB, error) {
	return infra.SetupDB(cfg.DB, cfg.IsProd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
