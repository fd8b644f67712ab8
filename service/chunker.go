package service

import (
	"github.com/tupi-ai/askpdf/types"
)

// Chunker splits page text into fixed-size overlapping windows. The window
// is ChunkSize characters wide and advances by ChunkSize-ChunkOverlap, so
// consecutive chunks share exactly ChunkOverlap characters. Splitting is
// deterministic: the same text and parameters always produce the same
// ordered chunk sequence.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunker(cfg types.ChunkerConfig) *Chunker {
	return &Chunker{
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}
}

// Split cuts text into overlapping windows. Sizes are measured in runes so
// multi-byte characters are never cut in half. Empty text yields no chunks.
func (c *Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.chunkSize {
		return []string{text}
	}

	step := c.chunkSize - c.chunkOverlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// SplitPages applies Split to every page in order. Each chunk inherits its
// page's metadata with empty-string and nil values dropped.
func (c *Chunker) SplitPages(pages []types.Page) []types.Chunk {
	var chunks []types.Chunk
	for _, page := range pages {
		metadata := page.Metadata.Clean()
		for _, text := range c.Split(page.Text) {
			chunks = append(chunks, types.Chunk{
				Content:  text,
				Metadata: metadata,
			})
		}
	}
	return chunks
}
