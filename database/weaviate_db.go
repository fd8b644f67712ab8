package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/types"
)

const weaviateBatchSize = 200

// WeaviateStore implements VectorStore against a Weaviate instance. Vectors
// are supplied by the caller, so the class is created with no vectorizer.
type WeaviateStore struct {
	client *weaviate.Client
	class  string
}

func NewWeaviateStore(cfg *config.Config) (*WeaviateStore, error) {
	scheme := "http"
	if strings.HasPrefix(cfg.DatabaseURL, "https") {
		scheme = "https"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(cfg.DatabaseURL, "https://"), "http://")

	clientConfig := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.WeaviateAPIKey != "" {
		clientConfig.AuthConfig = auth.ApiKey{Value: cfg.WeaviateAPIKey}
	}

	client, err := weaviate.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	store := &WeaviateStore{
		client: client,
		class:  classNameFor(cfg.CollectionName),
	}
	if err := store.ensureClass(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// classNameFor maps a collection name onto a valid Weaviate class name,
// which must begin with an uppercase letter.
func classNameFor(collection string) string {
	name := strings.NewReplacer("-", "_", ".", "_").Replace(collection)
	if name == "" {
		return "Document"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (s *WeaviateStore) ensureClass(ctx context.Context) error {
	schema, err := s.client.Schema().Getter().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}
	for _, class := range schema.Classes {
		if class.Class == s.class {
			return nil
		}
	}

	classObj := &models.Class{
		Class: s.class,
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "metadata", DataType: []string{"text"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
	if err := s.client.Schema().ClassCreator().WithClass(classObj).Do(ctx); err != nil {
		return fmt.Errorf("failed to create class %s: %w", s.class, err)
	}
	return nil
}

// objectID derives a stable UUID from the chunk ID, so re-ingesting the same
// chunk IDs overwrites the stored objects instead of appending new ones.
func (s *WeaviateStore) objectID(chunkID string) strfmt.UUID {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(s.class+"/"+chunkID))
	return strfmt.UUID(id.String())
}

func (s *WeaviateStore) AddDocuments(ctx context.Context, chunks []types.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	for start := 0; start < len(chunks); start += weaviateBatchSize {
		end := start + weaviateBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for i := start; i < end; i++ {
			metadata, err := json.Marshal(chunks[i].Metadata)
			if err != nil {
				return fmt.Errorf("failed to marshal metadata for %s: %w", chunks[i].ID, err)
			}
			batcher = batcher.WithObjects(&models.Object{
				Class: s.class,
				ID:    s.objectID(chunks[i].ID),
				Properties: map[string]interface{}{
					"chunkId":  chunks[i].ID,
					"content":  chunks[i].Content,
					"metadata": string(metadata),
				},
				Vector: vectors[i],
			})
		}
		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (s *WeaviateStore) SearchSimilar(ctx context.Context, vector []float32, k int) ([]types.SearchResult, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "content"},
		{Name: "metadata"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	response, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("weaviate query failed: %s", response.Errors[0].Message)
	}

	var results []types.SearchResult
	data, ok := response.Data["Get"].(map[string]interface{})[s.class].([]interface{})
	if !ok {
		return results, nil
	}
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		chunk := types.Chunk{}
		if id, ok := obj["chunkId"].(string); ok {
			chunk.ID = id
		}
		if content, ok := obj["content"].(string); ok {
			chunk.Content = content
		}
		if raw, ok := obj["metadata"].(string); ok && raw != "" {
			var metadata types.Metadata
			if err := json.Unmarshal([]byte(raw), &metadata); err == nil {
				chunk.Metadata = metadata
			}
		}
		score := 0.0
		if additional, ok := obj["_additional"].(map[string]interface{}); ok {
			if distance, ok := additional["distance"].(float64); ok {
				score = distance
			}
		}
		results = append(results, types.SearchResult{Chunk: chunk, Score: score})
	}
	return results, nil
}
