package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/database"
	"github.com/tupi-ai/askpdf/service"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "askpdf",
	Short: "Ask questions about a PDF using retrieval-augmented generation",
	Long: `askpdf ingests a PDF into a vector store and answers questions about
its content. Answers are grounded strictly in the retrieved chunks; when the
document does not contain the answer, the assistant says so instead of
guessing.

Configuration comes from environment variables (a .env file is honoured).
GOOGLE_API_KEY, DATABASE_URL and PG_VECTOR_COLLECTION_NAME are required.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// buildRAGService wires the query-side pipeline once: config, AI provider
// and vector store, injected into a RAGService shared by every question.
func buildRAGService(ctx context.Context, cfg *config.Config) (*service.RAGService, error) {
	ai, err := service.NewAIService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := database.NewVectorStore(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewRAGService(ai, store, cfg.SearchK), nil
}
