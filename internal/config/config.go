/*
Package config reads process configuration from the environment.
A local .env file is loaded first when present; real environment
variables always take precedence over it.
*/
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// Config holds everything the API process needs at startup.
type Config struct {
	Port     int
	AppEnv   string
	LogLevel string

	Database Database
	LLM      LLM
	Suggest  Suggest
}

// Database describes how to reach PostgreSQL.
type Database struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// LLM selects and authenticates the text-generation provider.
type LLM struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiBaseURL string
	Timeout       time.Duration
}

// Suggest tunes the suggestion pipeline.
type Suggest struct {
	Model       string
	MaxTokens   int
	Temperature float32
	WindowDays  int
	IncludeID   bool
}

// Load reads configuration from .env and the environment, applies
// defaults and validates the result.
func Load() (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	provider := getEnv("LLM_PROVIDER", ProviderOpenAI)
	defaultModel := DefaultOpenAIModel
	if provider == ProviderGemini {
		defaultModel = DefaultGeminiModel
	}

	cfg := &Config{
		Port:     getEnvInt("PORT", 5000),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        getEnv("DB_NAME", "postgres"),
			SSLMode:     getEnv("DB_SSLMODE", "require"),
			MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 10)),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		LLM: LLM{
			Provider:      provider,
			OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			GeminiKey:     os.Getenv("GEMINI_API_KEY"),
			GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
			Timeout:       getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Suggest: Suggest{
			Model:       getEnv("SUGGESTION_MODEL", defaultModel),
			MaxTokens:   getEnvInt("SUGGESTION_MAX_TOKENS", 100),
			Temperature: float32(getEnvFloat("SUGGESTION_TEMPERATURE", 0.7)),
			WindowDays:  getEnvInt("SUGGESTION_WINDOW_DAYS", 7),
			IncludeID:   getEnvBool("SUGGESTION_INCLUDE_ID", false),
		},
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be 1-65535, got %d", c.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.Database.MaxConns)
	}
	if c.Suggest.WindowDays < 1 {
		return fmt.Errorf("SUGGESTION_WINDOW_DAYS must be at least 1, got %d", c.Suggest.WindowDays)
	}
	if c.Suggest.MaxTokens < 1 {
		return fmt.Errorf("SUGGESTION_MAX_TOKENS must be at least 1, got %d", c.Suggest.MaxTokens)
	}
	if c.Suggest.Temperature <= 0 || c.Suggest.Temperature > 2 {
		return fmt.Errorf("SUGGESTION_TEMPERATURE must be in (0, 2], got %.2f", c.Suggest.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.LLM.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider)
	}
	return nil
}

// DSN builds a pgx connection string for the configured database.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
