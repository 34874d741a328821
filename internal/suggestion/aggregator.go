/*
Package suggestion turns a user's recent nutrition and workout records into
a short model-written suggestion and keeps the latest one per user.
*/
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitsuggest/internal/database"
	"fitsuggest/internal/llm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

var (
	// ErrUserNotFound means the username did not resolve. Nothing was written.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoSuggestion means the user exists but has no stored suggestion yet.
	ErrNoSuggestion = errors.New("no suggestion stored")
)

// Store is the data access the aggregator needs. *database.Store satisfies it.
type Store interface {
	GetUserIDByUsername(ctx context.Context, userUsername string) (int64, error)
	SumCaloriesInWindow(ctx context.Context, arg database.WindowParams) (int64, error)
	ListExercisesInWindow(ctx context.Context, arg database.WindowParams) ([]database.ListExercisesInWindowRow, error)
	GetGoalByUserID(ctx context.Context, userID int64) (database.GetGoalByUserIDRow, error)
	GetLatestSuggestionByUserID(ctx context.Context, userID int64) (database.Suggestion, error)
	ReplaceSuggestion(ctx context.Context, userID int64, content string) (database.Suggestion, error)
}

// Config tunes the pipeline.
type Config struct {
	WindowDays          int
	Model               string
	MaxTokens           int
	Temperature         float32
	IncludeSuggestionID bool
}

// DefaultConfig matches the behavior of the revised service.
func DefaultConfig() Config {
	return Config{
		WindowDays:  7,
		Model:       "gpt-4",
		MaxTokens:   100,
		Temperature: 0.7,
	}
}

// Result is what a caller gets back for a successful generation.
type Result struct {
	Suggestion   string `json:"suggestion"`
	SuggestionID *int64 `json:"suggestion_id,omitempty"`
}

// Stored is the user's live suggestion as read back from the database.
type Stored struct {
	SuggestionID int64     `json:"suggestion_id"`
	Suggestion   string    `json:"suggestion"`
	CreatedAt    time.Time `json:"created_at"`
}

type Aggregator struct {
	store Store
	gen   llm.Generator
	cfg   Config
	now   func() time.Time
}

type Option func(*Aggregator)

// WithClock replaces time.Now for window calculations.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func New(store Store, gen llm.Generator, cfg Config, opts ...Option) *Aggregator {
	if cfg.WindowDays < 1 {
		cfg.WindowDays = 7
	}
	a := &Aggregator{
		store: store,
		gen:   gen,
		cfg:   cfg,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate runs the whole pipeline for one request. Steps run strictly in
// order and the suggestion is only written after the model has answered.
func (a *Aggregator) Generate(ctx context.Context, username, question string) (Result, error) {
	log := zerolog.Ctx(ctx).With().Str("username", username).Logger()

	userID, err := a.resolveUser(ctx, username)
	if err != nil {
		return Result{}, err
	}

	prompt, err := a.buildPrompt(ctx, userID, question)
	if err != nil {
		return Result{}, err
	}
	log.Debug().Int64("user_id", userID).Str("prompt", prompt).Msg("Rendered suggestion prompt")

	text, err := a.gen.Generate(ctx, llm.Request{
		Model:       a.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("suggestion model call failed: %w", err)
	}
	if text == "" {
		return Result{}, fmt.Errorf("suggestion model call failed: %w", llm.ErrEmptyCompletion)
	}

	saved, err := a.store.ReplaceSuggestion(ctx, userID, text)
	if err != nil {
		return Result{}, fmt.Errorf("failed to store suggestion: %w", err)
	}
	log.Info().Int64("user_id", userID).Int64("suggestion_id", saved.SuggestionID).Msg("Suggestion stored")

	res := Result{Suggestion: text}
	if a.cfg.IncludeSuggestionID {
		id := saved.SuggestionID
		res.SuggestionID = &id
	}
	return res, nil
}

// Latest returns the user's current stored suggestion.
func (a *Aggregator) Latest(ctx context.Context, username string) (Stored, error) {
	userID, err := a.resolveUser(ctx, username)
	if err != nil {
		return Stored{}, err
	}

	s, err := a.store.GetLatestSuggestionByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Stored{}, ErrNoSuggestion
	}
	if err != nil {
		return Stored{}, fmt.Errorf("failed to fetch suggestion: %w", err)
	}

	return Stored{
		SuggestionID: s.SuggestionID,
		Suggestion:   s.SuggestionContent,
		CreatedAt:    s.SuggestionDate,
	}, nil
}

func (a *Aggregator) resolveUser(ctx context.Context, username string) (int64, error) {
	userID, err := a.store.GetUserIDByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

// buildPrompt gathers the window aggregates and goal context, then renders.
func (a *Aggregator) buildPrompt(ctx context.Context, userID int64, question string) (string, error) {
	start, end := Window(a.now(), a.cfg.WindowDays)
	window := database.WindowParams{
		UserID:    userID,
		StartDate: pgtype.Date{Time: start, Valid: true},
		EndDate:   pgtype.Date{Time: end, Valid: true},
	}

	totalCalories, err := a.store.SumCaloriesInWindow(ctx, window)
	if err != nil {
		return "", fmt.Errorf("failed to sum calories: %w", err)
	}

	exercises, err := a.store.ListExercisesInWindow(ctx, window)
	if err != nil {
		return "", fmt.Errorf("failed to list exercises: %w", err)
	}

	goal, err := a.store.GetGoalByUserID(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to fetch goal: %w", err)
	}

	return RenderPrompt(PromptData{
		Goal:          goal.GoalDescription,
		HealthNotes:   goal.HealthNotes,
		TotalCalories: totalCalories,
		WorkoutDays:   CountWorkoutDays(exercises),
		WorkoutNames:  WorkoutNames(exercises),
		Question:      question,
		WindowDays:    a.cfg.WindowDays,
	}), nil
}
