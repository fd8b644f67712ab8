package database

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/tupi-ai/askpdf/config"
	"github.com/tupi-ai/askpdf/types"
)

// JSONMap stores chunk metadata in a jsonb column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	return json.Unmarshal(data, m)
}

// embeddingRecord is one stored chunk. The primary key spans (collection,
// id) so the same chunk IDs can coexist in different collections and a
// re-ingestion of one collection overwrites in place.
type embeddingRecord struct {
	Collection string          `gorm:"primaryKey;column:collection"`
	ID         string          `gorm:"primaryKey;column:id"`
	Content    string          `gorm:"column:content;not null"`
	Metadata   JSONMap         `gorm:"column:metadata;type:jsonb"`
	Embedding  pgvector.Vector `gorm:"column:embedding"`
}

func (embeddingRecord) TableName() string {
	return "askpdf_embeddings"
}

// PgVectorStore persists chunks in PostgreSQL using the pgvector extension.
// Similarity search uses the cosine distance operator.
type PgVectorStore struct {
	db         *gorm.DB
	collection string
}

func NewPgVectorStore(cfg *config.Config) (*PgVectorStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	store := &PgVectorStore{db: db, collection: cfg.CollectionName}
	if err := store.migrate(cfg.EmbeddingDimensions); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PgVectorStore) migrate(dimensions int) error {
	if err := s.db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %w", err)
	}
	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS askpdf_embeddings (
		collection text NOT NULL,
		id text NOT NULL,
		content text NOT NULL,
		metadata jsonb,
		embedding vector(%d),
		PRIMARY KEY (collection, id)
	)`, dimensions)
	if err := s.db.Exec(createTable).Error; err != nil {
		return fmt.Errorf("failed to create embeddings table: %w", err)
	}
	return nil
}

func (s *PgVectorStore) AddDocuments(ctx context.Context, chunks []types.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	records := make([]embeddingRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = embeddingRecord{
			Collection: s.collection,
			ID:         chunk.ID,
			Content:    chunk.Content,
			Metadata:   JSONMap(chunk.Metadata),
			Embedding:  pgvector.NewVector(vectors[i]),
		}
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		UpdateAll: true,
	}).Create(&records).Error
}

func (s *PgVectorStore) SearchSimilar(ctx context.Context, vector []float32, k int) ([]types.SearchResult, error) {
	var rows []struct {
		embeddingRecord
		Distance float64 `gorm:"column:distance"`
	}

	err := s.db.WithContext(ctx).
		Table("askpdf_embeddings").
		Select("*, embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Where("collection = ?", s.collection).
		Where("embedding IS NOT NULL").
		Order("distance ASC").
		Limit(k).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	results := make([]types.SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, types.SearchResult{
			Chunk: types.Chunk{
				ID:       row.ID,
				Content:  row.Content,
				Metadata: types.Metadata(row.Metadata),
			},
			Score: row.Distance,
		})
	}
	return results, nil
}
