/*
Copyright © 2025 baotran
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/config"
	"github.com/baotran/docqa-be/database"
)

// initDBCmd represents the init-db command
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema",
	Long: `Creates the pgvector extension, the users, documents and chunks
tables and their indexes. With --reset, existing document data is dropped
first.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		reset, _ := cmd.Flags().GetBool("reset")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		store, err := database.NewPostgresStore(cfg.Postgres, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer store.Close()

		if err := store.InitSchema(context.Background(), reset); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
	initDBCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	initDBCmd.Flags().BoolP("reset", "r", false, "Drop existing tables first")
}
