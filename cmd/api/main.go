package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsuggest/internal/config"
	"fitsuggest/internal/database"
	"fitsuggest/internal/geminiservice"
	"fitsuggest/internal/llm"
	"fitsuggest/internal/server"
	"fitsuggest/internal/suggestion"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func newGenerator(cfg *config.Config) (llm.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return geminiservice.NewClient(cfg.LLM.GeminiKey, cfg.LLM.GeminiBaseURL, cfg.LLM.Timeout)
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(llm.ClientConfig{
			APIKey:  cfg.LLM.OpenAIKey,
			BaseURL: cfg.LLM.OpenAIBaseURL,
			Timeout: cfg.LLM.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}

func gracefulShutdown(ctx context.Context, stop context.CancelFunc, apiServer *http.Server) error {
	// Wait for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A database we cannot reach at boot is fatal.
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer dbService.Close()

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize suggestion model client")
	}

	aggregator := suggestion.New(dbService.Store(), generator, suggestion.Config{
		WindowDays:          cfg.Suggest.WindowDays,
		Model:               cfg.Suggest.Model,
		MaxTokens:           cfg.Suggest.MaxTokens,
		Temperature:         cfg.Suggest.Temperature,
		IncludeSuggestionID: cfg.Suggest.IncludeID,
	})

	apiServer := server.NewServer(cfg.Port, dbService, aggregator, cfg.LLM.Timeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("port", cfg.Port).Str("provider", cfg.LLM.Provider).Str("model", cfg.Suggest.Model).Msgf("Backend running on http://localhost:%d", cfg.Port)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return gracefulShutdown(gctx, stop, apiServer)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		stop()
		dbService.Close()
		os.Exit(1)
	}
	log.Info().Msg("Graceful shutdown complete.")
}
