package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIService implements AIService against any OpenAI-compatible endpoint,
// including locally hosted servers.
type OpenAIService struct {
	client         *openai.Client
	embeddingModel string
	model          string
	temperature    float32
}

func NewOpenAIService(baseURL, apiKey, embeddingModel, llmModel string, temperature float32) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	// The Gemini-style model defaults do not exist on OpenAI endpoints.
	if embeddingModel == "" || strings.HasPrefix(embeddingModel, "models/") {
		embeddingModel = string(openai.SmallEmbedding3)
	}
	if llmModel == "" || strings.HasPrefix(llmModel, "gemini") {
		llmModel = openai.GPT4oMini
	}

	return &OpenAIService{
		client:         openai.NewClientWithConfig(config),
		embeddingModel: embeddingModel,
		model:          llmModel,
		temperature:    temperature,
	}
}

func (s *OpenAIService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(s.embeddingModel),
	})
	if err != nil {
		return nil, err
	}

	// The API may return data out of order; Index restores alignment.
	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		vectors[data.Index] = data.Embedding
	}
	return vectors, nil
}

func (s *OpenAIService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vectors[0], nil
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	// The request marshals Temperature with omitempty, so an exact zero would
	// fall back to the server default instead of greedy decoding.
	temperature := s.temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}
