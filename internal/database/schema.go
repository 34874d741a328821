package database

import (
	"context"
	"fmt"
)

// schema mirrors the tables the suggestion flow reads and writes.
// Every statement is idempotent so it can run on each boot.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       BIGSERIAL PRIMARY KEY,
	user_username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS workouts (
	workout_id   BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	workout_date DATE NOT NULL DEFAULT CURRENT_DATE
);

CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, workout_date);

CREATE TABLE IF NOT EXISTS foods (
	food_id       BIGSERIAL PRIMARY KEY,
	workout_id    BIGINT NOT NULL REFERENCES workouts(workout_id) ON DELETE CASCADE,
	food_name     TEXT NOT NULL,
	food_calories BIGINT
);

CREATE TABLE IF NOT EXISTS exercises (
	exercise_id       BIGSERIAL PRIMARY KEY,
	workout_id        BIGINT NOT NULL REFERENCES workouts(workout_id) ON DELETE CASCADE,
	exercise_name     TEXT NOT NULL,
	exercise_type     TEXT,
	exercise_duration INTEGER
);

CREATE TABLE IF NOT EXISTS goals (
	goal_id          BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	goal_description TEXT,
	health_notes     TEXT
);

CREATE TABLE IF NOT EXISTS suggestions (
	suggestion_id      BIGSERIAL PRIMARY KEY,
	user_id            BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	suggestion_content TEXT NOT NULL,
	suggestion_date    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_suggestions_user ON suggestions(user_id);
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
