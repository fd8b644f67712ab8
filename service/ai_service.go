package service

import (
	"context"

	"github.com/tupi-ai/askpdf/config"
)

// AIService abstracts the remote embedding and text-generation provider.
// Embeddings from EmbedDocuments are index-aligned with the input texts.
type AIService interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewAIService builds the provider selected by AI_PROVIDER. Gemini is the
// default; "openai" targets any OpenAI-compatible endpoint.
func NewAIService(ctx context.Context, cfg *config.Config) (AIService, error) {
	if cfg.AIProvider == "openai" {
		return NewOpenAIService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.LLMModel, cfg.Temperature), nil
	}
	return NewGeminiService(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel, cfg.LLMModel, cfg.Temperature)
}
