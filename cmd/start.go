/*
Copyright © 2025 baotran
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/config"
	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/handler"
	"github.com/baotran/docqa-be/middleware"
	"github.com/baotran/docqa-be/repository"
	"github.com/baotran/docqa-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Q&A server",
	Long:  `Starts the HTTP server handling uploads and questions`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		store, err := database.NewPostgresStore(cfg.Postgres, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer store.Close()

		aiService, err := newAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		// Initialize services
		embedder := service.NewEmbeddingService(cfg.AIEndpoint, cfg.OpenAIAPIKey)
		chunker := service.NewChunker(cfg.Chunking)
		extractService := service.NewExtractService(logger)
		ingestService := service.NewIngestService(chunker, embedder, store, logger)
		askService := service.NewAskService(embedder, store, aiService, logger)
		fileService := service.NewFileService(cfg.UploadDir, extractService, ingestService, logger)
		wsService := service.NewWebSocketService(askService, logger)

		userRepo := repository.NewUserRepo(store.DB(), logger)
		userService := service.NewUserService(userRepo)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		authHandler := handler.NewAuthHandler(userService)
		uploadHandler := handler.NewUploadHandler(fileService)
		askHandler := handler.NewAskHandler(askService)
		documentHandler := handler.NewDocumentHandler(store)
		wsHandler := handler.NewWebSocketHandler(wsService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/api/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		api := router.Group("/api")
		api.POST("/auth/register", authHandler.HandleRegister)
		api.POST("/auth/login", authHandler.HandleLogin)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware)
		{
			protected.POST("/upload", uploadHandler.HandleUpload)
			protected.GET("/documents", documentHandler.HandleListDocuments)
			protected.POST("/ask", askHandler.HandleAsk)
			protected.GET("/ws/ask", wsHandler.HandleAsk)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "gemini":
		return service.NewGeminiService(cfg.GeminiAPIKey, cfg.Model)
	case "openai", "":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
