package database

import (
	"context"
	"fmt"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/types"
)

// VectorStore defines the persistence layer for RAG operations: it keeps
// (vector, text, metadata, id) tuples and answers nearest-neighbor queries.
type VectorStore interface {
	// AddDocuments writes one batch of chunks with their index-aligned
	// vectors. Chunks whose IDs already exist in the collection are
	// overwritten, not duplicated.
	AddDocuments(ctx context.Context, chunks []types.Chunk, vectors [][]float32) error

	// SearchSimilar returns at most k chunks ordered by ascending distance
	// to the query vector (nearest first).
	SearchSimilar(ctx context.Context, vector []float32, k int) ([]types.SearchResult, error)
}

// NewVectorStore builds the store selected by VECTOR_STORE. Postgres with
// pgvector is the default; "weaviate" targets a Weaviate instance instead.
func NewVectorStore(cfg *config.Config) (VectorStore, error) {
	switch cfg.VectorStore {
	case "", "pgvector":
		return NewPgVectorStore(cfg)
	case "weaviate":
		return NewWeaviateStore(cfg)
	default:
		return nil, fmt.Errorf("unknown vector store %q", cfg.VectorStore)
	}
}
