package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tupi-ai/askpdf/config"
)

var exitCommands = map[string]bool{
	"sair": true,
	"exit": true,
	"quit": true,
	"q":    true,
}

// isExitCommand reports whether the input ends the chat session. The match
// is case-insensitive.
func isExitCommand(input string) bool {
	return exitCommands[strings.ToLower(strings.TrimSpace(input))]
}

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-and-answer session over the ingested PDF",
	Long: `Starts a read-eval loop: each line is answered through the retrieval
pipeline. Type 'sair', 'exit', 'quit' or 'q' to leave; Ctrl+C also ends the
session. Errors on a single question are shown and the session continues.`,
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
		fmt.Println("CHAT RAG - Sistema de Perguntas e Respostas")
		fmt.Println(divider)
		fmt.Println("\nVocê pode fazer perguntas sobre o PDF ingerido.")
		fmt.Println("Digite 'sair' para encerrar o chat.")
		fmt.Println(divider)

		runChatLoop(ctx, rag, os.Stdin)
	},
}

// answerer is the part of the RAG pipeline the chat loop needs.
type answerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

// runChatLoop reads one question per iteration and answers it fully before
// reading the next. Input is read on a separate goroutine so an interrupt
// during the blocking read still ends the session cleanly.
func runChatLoop(ctx context.Context, rag answerer, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Print("\nFaça sua pergunta:\n\nPERGUNTA: ")

		var question string
		select {
		case <-ctx.Done():
			fmt.Println("\n\nEncerrando chat. Até logo!")
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println("\nEncerrando chat. Até logo!")
				return
			}
			question = strings.TrimSpace(line)
		}

		if isExitCommand(question) {
			fmt.Println("\nEncerrando chat. Até logo!")
			return
		}
		if question == "" {
			fmt.Println("Por favor, digite uma pergunta válida.")
			continue
		}

		fmt.Print("\nProcessando sua pergunta... ")
		answer, err := rag.Ask(ctx, question)
		if err != nil {
			fmt.Printf("\n✗ Erro ao processar pergunta: %v\n", err)
			continue
		}
		fmt.Println("✓")
		fmt.Printf("\nRESPOSTA: %s\n", answer)
		fmt.Println(strings.Repeat("-", 60))
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
