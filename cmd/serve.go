package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/handler"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server exposing ask, search and a websocket chat",
	Long: `Serves the same pipeline the CLI uses over HTTP:

  POST /api/v1/ask      answer one question
  POST /api/v1/search   retrieve similar chunks
  GET  /api/v1/ws       interactive chat over a websocket
  GET  /healthz         liveness probe`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rag, err := buildRAGService(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}

		corsHandler := handler.NewCorsHandler()
		askHandler := handler.NewAskHandler(rag)
		searchHandler := handler.NewSearchHandler(rag)
		wsHandler := handler.NewWebsocketHandler(rag)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/ask", askHandler.HandleAsk)
			apiV1.POST("/search", searchHandler.HandleSearch)
			apiV1.GET("/ws", wsHandler.HandleChat)
		}
		router.GET("/healthz", wsHandler.Health)

		log.Printf("Starting server on port %s...", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
