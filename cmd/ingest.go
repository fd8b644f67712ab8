package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/database"
	"github.com/tupi-ai/askpdf/service"
	"github.com/tupi-ai/askpdf/types"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest the configured PDF into the vector store",
	Long: `Loads the PDF at PDF_PATH, splits it into overlapping chunks,
generates one embedding per chunk and stores everything in the vector
collection. Running it again for the same collection overwrites the
previously stored chunks.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := cmd.Context()
		ai, err := service.NewAIService(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}
		store, err := database.NewVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to vector store: %v", err)
		}

		chunker := service.NewChunker(types.ChunkerConfig{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		})
		ingest := service.NewIngestService(service.NewPDFService(), chunker, ai, store)

		divider := strings.Repeat("=", 60)
		fmt.Println(divider)
		fmt.Println("INICIANDO PROCESSO DE INGESTÃO")
		fmt.Println(divider)
		fmt.Printf("PDF: %s\n", cfg.PDFPath)
		fmt.Printf("Chunk Size: %d\n", cfg.ChunkSize)
		fmt.Printf("Chunk Overlap: %d\n", cfg.ChunkOverlap)
		fmt.Printf("Embedding Model: %s\n", cfg.EmbeddingModel)
		fmt.Println(divider)

		count, err := ingest.Ingest(ctx, cfg.PDFPath)
		if err != nil {
			if errors.Is(err, service.ErrNoChunks) {
				fmt.Println("Nenhum chunk foi gerado. Verifique o PDF.")
				os.Exit(1)
			}
			log.Fatalf("Ingestion failed: %v", err)
		}

		fmt.Printf("\n%d chunk(s) armazenado(s) com sucesso no banco de dados!\n", count)
		fmt.Println(divider)
		fmt.Println("INGESTÃO CONCLUÍDA COM SUCESSO!")
		fmt.Println(divider)
		fmt.Println("\nAgora você pode executar 'askpdf chat' para fazer perguntas sobre o PDF.")
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
