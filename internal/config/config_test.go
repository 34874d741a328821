package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_CONNS", "DB_AUTO_MIGRATE",
	"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY", "GEMINI_BASE_URL", "LLM_TIMEOUT",
	"SUGGESTION_MODEL", "SUGGESTION_MAX_TOKENS", "SUGGESTION_TEMPERATURE", "SUGGESTION_WINDOW_DAYS", "SUGGESTION_INCLUDE_ID",
}

// clearEnv blanks every key Load reads; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "postgres", cfg.Database.Name)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.False(t, cfg.Database.AutoMigrate)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)

	assert.Equal(t, DefaultOpenAIModel, cfg.Suggest.Model)
	assert.Equal(t, 100, cfg.Suggest.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Suggest.Temperature, 0.0001)
	assert.Equal(t, 7, cfg.Suggest.WindowDays)
	assert.False(t, cfg.Suggest.IncludeID)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SUGGESTION_MAX_TOKENS", "150")
	t.Setenv("SUGGESTION_TEMPERATURE", "0.9")
	t.Setenv("SUGGESTION_WINDOW_DAYS", "14")
	t.Setenv("SUGGESTION_INCLUDE_ID", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, DefaultGeminiModel, cfg.Suggest.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 150, cfg.Suggest.MaxTokens)
	assert.InDelta(t, 0.9, cfg.Suggest.Temperature, 0.0001)
	assert.Equal(t, 14, cfg.Suggest.WindowDays)
	assert.True(t, cfg.Suggest.IncludeID)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "not-a-port")
	t.Setenv("LLM_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:     5000,
			Database: Database{MaxConns: 5},
			LLM:      LLM{Provider: ProviderOpenAI, OpenAIKey: "k", Timeout: time.Second},
			Suggest:  Suggest{MaxTokens: 100, Temperature: 0.7, WindowDays: 7},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero window", func(c *Config) { c.Suggest.WindowDays = 0 }, "SUGGESTION_WINDOW_DAYS"},
		{"zero tokens", func(c *Config) { c.Suggest.MaxTokens = 0 }, "SUGGESTION_MAX_TOKENS"},
		{"zero temperature", func(c *Config) { c.Suggest.Temperature = 0 }, "SUGGESTION_TEMPERATURE"},
		{"hot temperature", func(c *Config) { c.Suggest.Temperature = 2.5 }, "SUGGESTION_TEMPERATURE"},
		{"missing openai key", func(c *Config) { c.LLM.OpenAIKey = "" }, "OPENAI_API_KEY"},
		{"missing gemini key", func(c *Config) { c.LLM.Provider = ProviderGemini }, "GEMINI_API_KEY"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "llama" }, "LLM_PROVIDER"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "db", Port: 5433, User: "postgres", Password: "p@ss word", Name: "fitness", SSLMode: "disable"}
	assert.Equal(t, "postgres://postgres:p%40ss%20word@db:5433/fitness?sslmode=disable", d.DSN())
}
