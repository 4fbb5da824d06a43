package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"DOCUMENTS_PATH", "DB_PATH",
	"INDEX_NAME", "VECTOR_DIMENSION", "INDEX_INIT_DELAY",
	"CHUNK_SIZE", "UPSERT_BATCH_SIZE", "TOP_K", "MAX_CONTEXT_CHARS",
	"QDRANT_URL", "QDRANT_API_KEY",
	"EMBEDDING_PROVIDER", "EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
	"COMPLETION_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY", "LLM_TEMPERATURE",
	"GOOGLE_API_KEY", "GEMINI_EMBED_MODEL", "GEMINI_CHAT_MODEL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_MAX_TOKENS",
}

// clearEnv unsets every config variable for the duration of the test
// and runs the test from an empty directory so no .env file is picked up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		}
		_ = os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DOCUMENTS_PATH", t.TempDir())
	t.Setenv("VECTOR_DIMENSION", "1536")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "test.db"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "valid config with required fields",
			setupEnv: setRequired,
			checkConfig: func(cfg *Config) bool {
				return cfg.DocumentsPath != "" && cfg.VectorDimension == 1536
			},
		},
		{
			name: "missing DOCUMENTS_PATH",
			setupEnv: func(t *testing.T) {
				t.Setenv("VECTOR_DIMENSION", "1536")
			},
			wantErr: true,
		},
		{
			name: "missing VECTOR_DIMENSION",
			setupEnv: func(t *testing.T) {
				t.Setenv("DOCUMENTS_PATH", t.TempDir())
			},
			wantErr: true,
		},
		{
			name: "invalid VECTOR_DIMENSION",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("VECTOR_DIMENSION", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero VECTOR_DIMENSION",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("VECTOR_DIMENSION", "0")
			},
			wantErr: true,
		},
		{
			name: "negative UPSERT_BATCH_SIZE",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("UPSERT_BATCH_SIZE", "-1")
			},
			wantErr: true,
		},
		{
			name: "invalid INDEX_INIT_DELAY",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("INDEX_INIT_DELAY", "three minutes")
			},
			wantErr: true,
		},
		{
			name: "negative MAX_CONTEXT_CHARS",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("MAX_CONTEXT_CHARS", "-5")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name:     "default values for optional fields",
			setupEnv: setRequired,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.IndexName == "docs" &&
					cfg.IndexInitDelay == 180*time.Second &&
					cfg.ChunkSize == 1000 &&
					cfg.UpsertBatchSize == 100 &&
					cfg.TopK == 10 &&
					cfg.MaxContextChars == 0 &&
					cfg.QdrantURL == "http://localhost:6333" &&
					cfg.EmbeddingProvider == ProviderOpenAI &&
					cfg.CompletionProvider == ProviderOpenAI &&
					cfg.LLMModelName == "gpt-3.5-turbo" &&
					cfg.EmbeddingModelName == "text-embedding-ada-002" &&
					cfg.LLMTemperature == float32(0.7) &&
					cfg.AnthropicMaxTokens == 1024
			},
		},
		{
			name: "custom optional values",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("INDEX_NAME", "advisor")
				t.Setenv("INDEX_INIT_DELAY", "5s")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "json")
				t.Setenv("TOP_K", "4")
				t.Setenv("MAX_CONTEXT_CHARS", "8000")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.IndexName == "advisor" &&
					cfg.IndexInitDelay == 5*time.Second &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.TopK == 4 &&
					cfg.MaxContextChars == 8000
			},
		},
		{
			name: "gemini embeddings require GOOGLE_API_KEY",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("EMBEDDING_PROVIDER", "gemini")
			},
			wantErr: true,
		},
		{
			name: "gemini providers with key",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("EMBEDDING_PROVIDER", "Gemini")
				t.Setenv("COMPLETION_PROVIDER", "gemini")
				t.Setenv("GOOGLE_API_KEY", "key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.EmbeddingProvider == ProviderGemini && cfg.CompletionProvider == ProviderGemini
			},
		},
		{
			name: "anthropic completion requires ANTHROPIC_API_KEY",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("COMPLETION_PROVIDER", "anthropic")
			},
			wantErr: true,
		},
		{
			name: "unknown completion provider",
			setupEnv: func(t *testing.T) {
				setRequired(t)
				t.Setenv("COMPLETION_PROVIDER", "pinecone")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "db.db")

	t.Setenv("DOCUMENTS_PATH", t.TempDir())
	t.Setenv("VECTOR_DIMENSION", "8")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, "custom.env")
	content := "DOCUMENTS_PATH=" + dir + "\nVECTOR_DIMENSION=384\nINDEX_NAME=from-file\nDB_PATH=" + filepath.Join(dir, "db", "x.db") + "\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	for _, key := range []string{"DOCUMENTS_PATH", "VECTOR_DIMENSION", "INDEX_NAME", "DB_PATH"} {
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.IndexName != "from-file" || cfg.VectorDimension != 384 {
		t.Errorf("LoadFrom() IndexName = %q, VectorDimension = %d", cfg.IndexName, cfg.VectorDimension)
	}
}

func TestLoadFrom_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadFrom() with missing file should return error")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
