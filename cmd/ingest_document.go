/*
Copyright © 2025 baotran
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/config"
	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/service"
)

// ingestDocumentCmd represents the ingest command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest local files for a user",
	Long: `Extracts text from one or more local files (.txt, .md or .pdf),
chunks and embeds it, and stores the result for the given user. Useful for
seeding a corpus without going through the HTTP upload endpoint.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		userID, _ := cmd.Flags().GetString("user")
		if userID == "" {
			log.Fatal("--user is required")
		}

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

		embedder := service.NewEmbeddingService(cfg.AIEndpoint, cfg.OpenAIAPIKey)
		chunker := service.NewChunker(cfg.Chunking)
		extractService := service.NewExtractService(logger)
		ingestService := service.NewIngestService(chunker, embedder, store, logger)

		ctx := context.Background()
		for _, path := range args {
			mimeType := mime.TypeByExtension(filepath.Ext(path))
			text, err := extractService.ExtractText(ctx, path, mimeType)
			if err != nil {
				log.Fatalf("Failed to extract text from %s: %v", path, err)
			}

			result, err := ingestService.IngestDocument(ctx, userID, filepath.Base(path), text)
			if err != nil {
				log.Fatalf("Failed to ingest %s: %v", path, err)
			}
			fmt.Printf("Ingested %s: document %s, %d chunks\n", path, result.DocumentID, result.ChunksCreated)
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)
	ingestDocumentCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	ingestDocumentCmd.Flags().StringP("user", "u", "", "Owner user id for the ingested documents")
}
