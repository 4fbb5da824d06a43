package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted by EMBEDDING_PROVIDER and COMPLETION_PROVIDER.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DocumentsPath string
	DBPath        string

	IndexName       string
	VectorDimension int
	IndexInitDelay  time.Duration
	ChunkSize       int
	UpsertBatchSize int
	TopK            int
	MaxContextChars int

	QdrantURL    string
	QdrantAPIKey string

	EmbeddingProvider  string
	EmbeddingBaseURL   string
	EmbeddingModelName string

	CompletionProvider string
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	LLMTemperature     float32

	GoogleAPIKey     string
	GeminiEmbedModel string
	GeminiChatModel  string

	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicMaxTokens int
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads envFile instead of searching for .env when envFile is not empty.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		loadDotEnv()
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		DocumentsPath:      getEnv("DOCUMENTS_PATH", ""),
		DBPath:             getEnv("DB_PATH", "./data/ragdemo.db"),
		IndexName:          getEnv("INDEX_NAME", "docs"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		EmbeddingProvider:  strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderOpenAI)),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-ada-002"),
		CompletionProvider: strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderOpenAI)),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		GoogleAPIKey:       getEnv("GOOGLE_API_KEY", ""),
		GeminiEmbedModel:   getEnv("GEMINI_EMBED_MODEL", "gemini-embedding-001"),
		GeminiChatModel:    getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	// VECTOR_DIMENSION must match the output size of the embeddings model.
	// If it changes, the index must be recreated.
	if cfg.VectorDimension, err = requirePositiveInt("VECTOR_DIMENSION"); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = positiveIntOr("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.UpsertBatchSize, err = positiveIntOr("UPSERT_BATCH_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.TopK, err = positiveIntOr("TOP_K", 10); err != nil {
		return nil, err
	}
	if cfg.AnthropicMaxTokens, err = positiveIntOr("ANTHROPIC_MAX_TOKENS", 1024); err != nil {
		return nil, err
	}

	maxContext, err := strconv.Atoi(getEnv("MAX_CONTEXT_CHARS", "0"))
	if err != nil || maxContext < 0 {
		return nil, fmt.Errorf("MAX_CONTEXT_CHARS must be a non-negative integer")
	}
	cfg.MaxContextChars = maxContext

	delay, err := time.ParseDuration(getEnv("INDEX_INIT_DELAY", "180s"))
	if err != nil {
		return nil, fmt.Errorf("INDEX_INIT_DELAY must be a valid duration: %w", err)
	}
	if delay < 0 {
		return nil, fmt.Errorf("INDEX_INIT_DELAY must not be negative")
	}
	cfg.IndexInitDelay = delay

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a valid number: %w", err)
	}
	cfg.LLMTemperature = float32(temperature)

	if cfg.DocumentsPath == "" {
		return nil, fmt.Errorf("DOCUMENTS_PATH is required")
	}

	if err := cfg.validateProviders(); err != nil {
		return nil, err
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) validateProviders() error {
	switch c.EmbeddingProvider {
	case ProviderOpenAI:
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required when EMBEDDING_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.EmbeddingProvider)
	}

	switch c.CompletionProvider {
	case ProviderOpenAI:
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required when COMPLETION_PROVIDER=gemini")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when COMPLETION_PROVIDER=anthropic")
		}
	default:
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.CompletionProvider)
	}
	return nil
}

// loadDotEnv loads .env from the working directory or the nearest parent that has one.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}

func requirePositiveInt(key string) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	return parsePositiveInt(key, raw)
}

func positiveIntOr(key string, def int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	return parsePositiveInt(key, raw)
}

func parsePositiveInt(key, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
