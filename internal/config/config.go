package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"fsebot"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"fsebot"`

	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"gemini-2.0-flash"`

	// Retrieval tuning. Single canonical definition; nothing else in the
	// codebase re-declares these. Defaults were tuned for 1200-char chunks
	// and should be re-validated whenever the embedding model or chunk
	// size changes.
	TopK                int     `envconfig:"TOP_K" default:"5"`
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.55"`
	ConfidenceHigh      float64 `envconfig:"CONFIDENCE_HIGH" default:"0.65"`
	ConfidenceMedium    float64 `envconfig:"CONFIDENCE_MEDIUM" default:"0.57"`

	NSQLookupd       string `envconfig:"NSQ_LOOKUPD" default:"nsqlookupd:4161"`
	NSQDHTTP         string `envconfig:"NSQD_HTTP" default:"nsqd:4151"`
	EnableNSQReloads bool   `envconfig:"ENABLE_NSQ_RELOADS" default:"false"`

	ServerPort      int    `envconfig:"SERVER_PORT" default:"5001"`
	URLMappingsPath string `envconfig:"URL_MAPPINGS_PATH" default:"url_mappings.json"`
	QueryLogPath    string `envconfig:"QUERY_LOG_PATH" default:"data/logs/query.log"`
	MigrationPath   string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Env vars might be set in the shell; .env files are optional.
	_ = godotenv.Load(".env")

	cwd, _ := os.Getwd()
	_ = godotenv.Load(filepath.Join(cwd, "../.env"))

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.TopK < 0 {
		return fmt.Errorf("invalid TOP_K: must be >= 0")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid SIMILARITY_THRESHOLD: must be within [0, 1]")
	}
	return nil
}
