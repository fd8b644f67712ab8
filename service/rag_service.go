package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tupi-ai/askpdf/database"
	"github.com/tupi-ai/askpdf/types"
)

// RefusalAnswer is the fixed sentence returned whenever the question cannot
// be answered from the ingested context.
const RefusalAnswer = "Não tenho informações necessárias para responder sua pergunta."

// promptTemplate instructs the model to answer strictly from the retrieved
// context. %s placeholders: context block, then the user's question.
const promptTemplate = `Você é um assistente que responde perguntas baseado EXCLUSIVAMENTE nas informações fornecidas no CONTEXTO abaixo.
CONTEXTO:
%s

REGRAS:
- Responda somente com base no CONTEXTO.
- Se a informação não estiver explicitamente no CONTEXTO, responda:
  "Não tenho informações necessárias para responder sua pergunta."
- Nunca invente ou use conhecimento externo.
- Nunca produza opiniões ou interpretações além do que está escrito.

EXEMPLOS DE PERGUNTAS FORA DO CONTEXTO:
Pergunta: "Qual é a capital da França?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

Pergunta: "Quantos clientes temos em 2024?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

Pergunta: "Você acha isso bom ou ruim?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

PERGUNTA DO USUÁRIO:
%s

RESPONDA A "PERGUNTA DO USUÁRIO"
`

// RAGService answers questions grounded in the ingested document: it embeds
// the question, retrieves the nearest chunks and asks the model to answer
// only from them. The model's output is returned verbatim; whether it
// actually refused or answered is trusted to the model, there is no local
// verification against the context.
type RAGService struct {
	ai      AIService
	store   database.VectorStore
	searchK int
}

func NewRAGService(ai AIService, store database.VectorStore, searchK int) *RAGService {
	return &RAGService{
		ai:      ai,
		store:   store,
		searchK: searchK,
	}
}

// Search retrieves the k chunks nearest to the query. A k of zero or less
// falls back to the configured default.
func (s *RAGService) Search(ctx context.Context, query string, k int) ([]types.SearchResult, error) {
	if k <= 0 {
		k = s.searchK
	}
	vector, err := s.ai.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return s.store.SearchSimilar(ctx, vector, k)
}

// Ask answers a question from retrieved context. When nothing is retrieved,
// the fixed refusal sentence is returned without calling the model.
func (s *RAGService) Ask(ctx context.Context, question string) (string, error) {
	results, err := s.Search(ctx, question, s.searchK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return RefusalAnswer, nil
	}

	prompt := fmt.Sprintf(promptTemplate, buildContext(results), question)
	return s.ai.Generate(ctx, prompt)
}

// buildContext concatenates retrieved chunks nearest-first, each prefixed
// with its 1-based position and distance score.
func buildContext(results []types.SearchResult) string {
	parts := make([]string, 0, len(results))
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("[Trecho %d - Score: %.4f]:\n%s\n",
			i+1, result.Score, strings.TrimSpace(result.Chunk.Content)))
	}
	return strings.Join(parts, "\n")
}

// FormatSearchResults renders results as a human-readable report, one block
// per result in input order. Pure function, used by the search CLI.
func FormatSearchResults(results []types.SearchResult) string {
	var out strings.Builder
	divider := strings.Repeat("=", 60)

	for i, result := range results {
		fmt.Fprintf(&out, "%s\n", divider)
		fmt.Fprintf(&out, "Resultado %d (score: %.4f)\n", i+1, result.Score)
		fmt.Fprintf(&out, "%s\n", divider)
		fmt.Fprintf(&out, "\nTexto:\n%s\n", strings.TrimSpace(result.Chunk.Content))

		if len(result.Chunk.Metadata) > 0 {
			out.WriteString("\nMetadados:\n")
			keys := make([]string, 0, len(result.Chunk.Metadata))
			for key := range result.Chunk.Metadata {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(&out, "  %s: %v\n", key, result.Chunk.Metadata[key])
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}
