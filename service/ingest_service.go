package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tupi-ai/askpdf/database"
	"github.com/tupi-ai/askpdf/types"
	"github.com/tupi-ai/askpdf/utils"
)

// ErrNoChunks is returned when splitting the PDF produced nothing to ingest.
var ErrNoChunks = errors.New("no chunks were produced from the document")

// PageLoader reads a document into one text unit per page.
type PageLoader interface {
	LoadPages(path string) ([]types.Page, error)
}

// IngestService runs the ingestion pipeline: load PDF pages, split them into
// overlapping chunks, embed each chunk and write the batch to the vector
// store. Any step failing aborts the whole run.
type IngestService struct {
	pdf     PageLoader
	chunker *Chunker
	ai      AIService
	store   database.VectorStore
}

func NewIngestService(pdf PageLoader, chunker *Chunker, ai AIService, store database.VectorStore) *IngestService {
	return &IngestService{
		pdf:     pdf,
		chunker: chunker,
		ai:      ai,
		store:   store,
	}
}

// Ingest processes the PDF at path and returns the number of stored chunks.
func (s *IngestService) Ingest(ctx context.Context, path string) (int, error) {
	resolved, err := utils.ResolvePath(path)
	if err != nil {
		return 0, err
	}

	log.Printf("Loading PDF %s", resolved)
	pages, err := s.pdf.LoadPages(resolved)
	if err != nil {
		return 0, fmt.Errorf("failed to load PDF: %w", err)
	}
	log.Printf("PDF loaded: %d page(s)", len(pages))

	chunks := AssignIDs(s.chunker.SplitPages(pages))
	if len(chunks) == 0 {
		return 0, ErrNoChunks
	}
	log.Printf("Document split into %d chunk(s)", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := s.ai.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	if err := s.store.AddDocuments(ctx, chunks, vectors); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}
	return len(chunks), nil
}

// AssignIDs gives every chunk a sequential zero-padded identifier in
// emission order: doc-0000, doc-0001, ... IDs restart at zero each run, so
// re-ingesting overwrites earlier chunks with the same IDs.
func AssignIDs(chunks []types.Chunk) []types.Chunk {
	for i := range chunks {
		chunks[i].ID = fmt.Sprintf("doc-%04d", i)
	}
	return chunks
}
