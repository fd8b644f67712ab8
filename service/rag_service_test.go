package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tupi-ai/askpdf/types"
)

// fakeAI is a test double for AIService. It records calls and returns
// canned vectors and answers.
type fakeAI struct {
	embedErr      error
	generateErr   error
	answer        string
	generateCalls int
	lastPrompt    string
}

func (f *fakeAI) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i), 1}
	}
	return vectors, nil
}

func (f *fakeAI) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2}, nil
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.generateCalls++
	f.lastPrompt = prompt
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.answer, nil
}

// fakeStore is a test double for database.VectorStore.
type fakeStore struct {
	results   []types.SearchResult
	searchErr error
	addErr    error

	addedChunks  []types.Chunk
	addedVectors [][]float32
	lastK        int
}

func (f *fakeStore) AddDocuments(_ context.Context, chunks []types.Chunk, vectors [][]float32) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addedChunks = append(f.addedChunks, chunks...)
	f.addedVectors = append(f.addedVectors, vectors...)
	return nil
}

func (f *fakeStore) SearchSimilar(_ context.Context, _ []float32, k int) ([]types.SearchResult, error) {
	f.lastK = k
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if k < len(f.results) {
		return f.results[:k], nil
	}
	return f.results, nil
}

func TestAskRefusesWithoutGenerationWhenNothingRetrieved(t *testing.T) {
	ai := &fakeAI{answer: "should not be used"}
	store := &fakeStore{}
	rag := NewRAGService(ai, store, 10)

	answer, err := rag.Ask(context.Background(), "Qual é a capital da França?")

	require.NoError(t, err)
	assert.Equal(t, RefusalAnswer, answer)
	assert.Zero(t, ai.generateCalls)
}

func TestAskBuildsContextNearestFirst(t *testing.T) {
	ai := &fakeAI{answer: "resposta do modelo"}
	store := &fakeStore{results: []types.SearchResult{
		{Chunk: types.Chunk{ID: "doc-0000", Content: "primeiro trecho"}, Score: 0.12},
		{Chunk: types.Chunk{ID: "doc-0001", Content: "segundo trecho"}, Score: 0.34},
	}}
	rag := NewRAGService(ai, store, 10)

	answer, err := rag.Ask(context.Background(), "pergunta qualquer")

	require.NoError(t, err)
	assert.Equal(t, "resposta do modelo", answer)
	require.Equal(t, 1, ai.generateCalls)

	first := strings.Index(ai.lastPrompt, "[Trecho 1 - Score: 0.1200]:\nprimeiro trecho")
	second := strings.Index(ai.lastPrompt, "[Trecho 2 - Score: 0.3400]:\nsegundo trecho")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.Contains(t, ai.lastPrompt, "pergunta qualquer")
	assert.Contains(t, ai.lastPrompt, "EXCLUSIVAMENTE")
}

func TestAskReturnsModelOutputVerbatim(t *testing.T) {
	// The model is the final authority on refusal vs. answer; nothing
	// post-validates its output against the context.
	ai := &fakeAI{answer: "  resposta com espaços  "}
	store := &fakeStore{results: []types.SearchResult{
		{Chunk: types.Chunk{Content: "trecho"}, Score: 0.1},
	}}
	rag := NewRAGService(ai, store, 10)

	answer, err := rag.Ask(context.Background(), "pergunta")
	require.NoError(t, err)
	assert.Equal(t, "  resposta com espaços  ", answer)
}

func TestAskPropagatesEmbeddingError(t *testing.T) {
	ai := &fakeAI{embedErr: errors.New("embedding API down")}
	rag := NewRAGService(ai, &fakeStore{}, 10)

	_, err := rag.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding API down")
	assert.Zero(t, ai.generateCalls)
}

func TestAskPropagatesSearchError(t *testing.T) {
	store := &fakeStore{searchErr: errors.New("database unreachable")}
	rag := NewRAGService(&fakeAI{}, store, 10)

	_, err := rag.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unreachable")
}

func TestAskPropagatesGenerationError(t *testing.T) {
	ai := &fakeAI{generateErr: errors.New("model overloaded")}
	store := &fakeStore{results: []types.SearchResult{
		{Chunk: types.Chunk{Content: "trecho"}, Score: 0.1},
	}}
	rag := NewRAGService(ai, store, 10)

	_, err := rag.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSearchUsesConfiguredKByDefault(t *testing.T) {
	store := &fakeStore{}
	rag := NewRAGService(&fakeAI{}, store, 7)

	_, err := rag.Search(context.Background(), "consulta", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, store.lastK)
}

func TestSearchHonorsExplicitK(t *testing.T) {
	store := &fakeStore{results: []types.SearchResult{
		{Chunk: types.Chunk{Content: "a"}, Score: 0.1},
		{Chunk: types.Chunk{Content: "b"}, Score: 0.2},
		{Chunk: types.Chunk{Content: "c"}, Score: 0.3},
	}}
	rag := NewRAGService(&fakeAI{}, store, 10)

	results, err := rag.Search(context.Background(), "consulta", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, store.lastK)
}

func TestFormatSearchResults(t *testing.T) {
	results := []types.SearchResult{
		{
			Chunk: types.Chunk{
				ID:       "doc-0000",
				Content:  "  conteúdo do trecho  ",
				Metadata: types.Metadata{"page": 3, "source": "document.pdf"},
			},
			Score: 0.0815,
		},
		{
			Chunk: types.Chunk{ID: "doc-0001", Content: "outro trecho"},
			Score: 0.25,
		},
	}

	out := FormatSearchResults(results)

	assert.Contains(t, out, "Resultado 1 (score: 0.0815)")
	assert.Contains(t, out, "Resultado 2 (score: 0.2500)")
	assert.Contains(t, out, "Texto:\nconteúdo do trecho")
	assert.Contains(t, out, "Metadados:")
	assert.Contains(t, out, "  page: 3")
	assert.Contains(t, out, "  source: document.pdf")
	// Results appear in input order.
	assert.Less(t, strings.Index(out, "Resultado 1"), strings.Index(out, "Resultado 2"))
}

func TestFormatSearchResultsEmpty(t *testing.T) {
	assert.Empty(t, FormatSearchResults(nil))
}
