package types

// Metadata is the free-form payload stored alongside each chunk. Values are
// scalars; empty strings and nils are scrubbed before storage.
type Metadata map[string]any

// Clean returns a copy of the metadata without empty-string or nil values.
func (m Metadata) Clean() Metadata {
	cleaned := make(Metadata, len(m))
	for k, v := range m {
		if v == nil || v == "" {
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}

// Page is one page of a loaded PDF: its raw text plus source metadata.
type Page struct {
	Text     string
	Metadata Metadata
}

// Chunk is a fixed-size overlapping window of page text, the unit of storage
// and retrieval. The ID is assigned sequentially within one ingestion run
// (doc-0000, doc-0001, ...); re-ingesting with the same IDs overwrites.
type Chunk struct {
	ID       string
	Content  string
	Metadata Metadata
}

// SearchResult pairs a retrieved chunk with its distance to the query vector.
// Lower scores mean closer matches.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// ChunkerConfig holds the sliding-window parameters.
type ChunkerConfig struct {
	ChunkSize    int
	ChunkOverlap int
}
