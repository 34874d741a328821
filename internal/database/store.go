package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Pool is a DBTX that can also open transactions.
type Pool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store bundles the read queries with the transactional writes.
type Store struct {
	*Queries
	pool Pool
}

func NewStore(pool Pool) *Store {
	return &Store{
		Queries: New(pool),
		pool:    pool,
	}
}

// ReplaceSuggestion swaps the user's live suggestion for a new one.
// The user row is locked first so two requests for the same user
// serialize instead of interleaving their delete and insert.
func (s *Store) ReplaceSuggestion(ctx context.Context, userID int64, content string) (Suggestion, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	qtx := s.Queries.WithTx(tx)

	if _, err := qtx.LockUser(ctx, userID); err != nil {
		return Suggestion{}, fmt.Errorf("failed to lock user %d: %w", userID, err)
	}

	if _, err := qtx.DeleteSuggestionsByUserID(ctx, userID); err != nil {
		return Suggestion{}, fmt.Errorf("failed to delete previous suggestion: %w", err)
	}

	saved, err := qtx.InsertSuggestion(ctx, InsertSuggestionParams{
		UserID:            userID,
		SuggestionContent: content,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to insert suggestion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Suggestion{}, fmt.Errorf("failed to commit suggestion: %w", err)
	}

	return saved, nil
}
