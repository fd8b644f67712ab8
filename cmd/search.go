package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/service"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one similarity search and print the retrieved chunks",
	Long: `Reads a single question, retrieves the most similar chunks from the
vector store and prints them with their distance scores. Useful to inspect
what the chat command would feed to the model.`,
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

		divider := strings.Repeat("=", 60)
		fmt.Println(divider)
		fmt.Println("Busca por similaridade")
		fmt.Println(divider)
		fmt.Print("\nDigite sua pergunta: ")

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			fmt.Println("Por favor, digite uma pergunta válida.")
			os.Exit(1)
		}

		results, err := rag.Search(ctx, query, cfg.SearchK)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		if len(results) == 0 {
			fmt.Println("\nNenhum resultado encontrado.")
			return
		}

		fmt.Println()
		fmt.Print(service.FormatSearchResults(results))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
