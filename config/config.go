package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Required environment variables. Startup fails before any service is built
// when one of these is unset.
var requiredVars = []string{
	"GOOGLE_API_KEY",
	"DATABASE_URL",
	"PG_VECTOR_COLLECTION_NAME",
}

// Config holds every tunable of the pipeline. It is read once at process
// start and passed by reference; nothing mutates it afterwards.
type Config struct {
	GoogleAPIKey   string `mapstructure:"GOOGLE_API_KEY"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	CollectionName string `mapstructure:"PG_VECTOR_COLLECTION_NAME"`

	ChunkSize    int    `mapstructure:"CHUNK_SIZE"`
	ChunkOverlap int    `mapstructure:"CHUNK_OVERLAP"`
	PDFPath      string `mapstructure:"PDF_PATH"`

	EmbeddingModel string  `mapstructure:"GOOGLE_EMBEDDING_MODEL"`
	LLMModel       string  `mapstructure:"GOOGLE_LLM_MODEL"`
	SearchK        int     `mapstructure:"SEARCH_K"`
	Temperature    float32 `mapstructure:"TEMPERATURE"`

	// Provider selection. "gemini" is the default; "openai" switches the
	// embedding and generation calls to an OpenAI-compatible endpoint.
	AIProvider    string `mapstructure:"AI_PROVIDER"`
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	// Store selection. "pgvector" is the default; "weaviate" targets a
	// Weaviate instance at DATABASE_URL instead of Postgres.
	VectorStore         string `mapstructure:"VECTOR_STORE"`
	WeaviateAPIKey      string `mapstructure:"WEAVIATE_APIKEY"`
	EmbeddingDimensions int    `mapstructure:"EMBEDDING_DIMENSIONS"`

	Port string `mapstructure:"PORT"`
}

// Load reads the configuration from environment variables, applies defaults
// and validates it. It is the only place configuration is read.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("CHUNK_SIZE", 1000)
	v.SetDefault("CHUNK_OVERLAP", 150)
	v.SetDefault("PDF_PATH", "document.pdf")
	v.SetDefault("GOOGLE_EMBEDDING_MODEL", "models/embedding-001")
	v.SetDefault("GOOGLE_LLM_MODEL", "gemini-2.5-flash-lite")
	v.SetDefault("SEARCH_K", 10)
	v.SetDefault("TEMPERATURE", 0.0)
	v.SetDefault("AI_PROVIDER", "gemini")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("VECTOR_STORE", "pgvector")
	v.SetDefault("EMBEDDING_DIMENSIONS", 768)
	v.SetDefault("PORT", "8080")

	for _, key := range append(requiredVars,
		"OPENAI_API_KEY", "WEAVIATE_APIKEY") {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	for _, key := range requiredVars {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("environment variable %s is not set", key)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	// An overlap equal to or larger than the chunk size would make the
	// sliding window step zero or negative and never terminate.
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)",
			c.ChunkOverlap, c.ChunkSize)
	}
	if c.SearchK <= 0 {
		return fmt.Errorf("SEARCH_K must be positive, got %d", c.SearchK)
	}
	if c.AIProvider == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("environment variable OPENAI_API_KEY is not set")
	}
	return nil
}
