package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const getUserIDByUsername = `-- name: GetUserIDByUsername :one
SELECT user_id FROM users WHERE user_username = $1
`

func (q *Queries) GetUserIDByUsername(ctx context.Context, userUsername string) (int64, error) {
	row := q.db.QueryRow(ctx, getUserIDByUsername, userUsername)
	var user_id int64
	err := row.Scan(&user_id)
	return user_id, err
}

const sumCaloriesInWindow = `-- name: SumCaloriesInWindow :one
SELECT COALESCE(SUM(f.food_calories), 0)::bigint AS total_calories
FROM foods f
JOIN workouts w ON f.workout_id = w.workout_id
WHERE w.user_id = $1
  AND w.workout_date >= $2
  AND w.workout_date < $3
`

type WindowParams struct {
	UserID    int64       `json:"user_id"`
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
}

func (q *Queries) SumCaloriesInWindow(ctx context.Context, arg WindowParams) (int64, error) {
	row := q.db.QueryRow(ctx, sumCaloriesInWindow, arg.UserID, arg.StartDate, arg.EndDate)
	var total_calories int64
	err := row.Scan(&total_calories)
	return total_calories, err
}

const listExercisesInWindow = `-- name: ListExercisesInWindow :many
SELECT e.exercise_name,
       COALESCE(e.exercise_type, '') AS exercise_type,
       COALESCE(e.exercise_duration, 0)::int AS exercise_duration,
       w.workout_date
FROM exercises e
JOIN workouts w ON e.workout_id = w.workout_id
WHERE w.user_id = $1
  AND w.workout_date >= $2
  AND w.workout_date < $3
ORDER BY w.workout_date, e.exercise_id
`

type ListExercisesInWindowRow struct {
	ExerciseName     string    `json:"exercise_name"`
	ExerciseType     string    `json:"exercise_type"`
	ExerciseDuration int32     `json:"exercise_duration"`
	WorkoutDate      time.Time `json:"workout_date"`
}

func (q *Queries) ListExercisesInWindow(ctx context.Context, arg WindowParams) ([]ListExercisesInWindowRow, error) {
	rows, err := q.db.Query(ctx, listExercisesInWindow, arg.UserID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListExercisesInWindowRow{}
	for rows.Next() {
		var i ListExercisesInWindowRow
		if err := rows.Scan(
			&i.ExerciseName,
			&i.ExerciseType,
			&i.ExerciseDuration,
			&i.WorkoutDate,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getGoalByUserID = `-- name: GetGoalByUserID :one
SELECT COALESCE(goal_description, '') AS goal_description,
       COALESCE(health_notes, '') AS health_notes
FROM goals
WHERE user_id = $1
ORDER BY goal_id DESC
LIMIT 1
`

type GetGoalByUserIDRow struct {
	GoalDescription string `json:"goal_description"`
	HealthNotes     string `json:"health_notes"`
}

func (q *Queries) GetGoalByUserID(ctx context.Context, userID int64) (GetGoalByUserIDRow, error) {
	row := q.db.QueryRow(ctx, getGoalByUserID, userID)
	var i GetGoalByUserIDRow
	err := row.Scan(&i.GoalDescription, &i.HealthNotes)
	return i, err
}

const lockUser = `-- name: LockUser :one
SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE
`

func (q *Queries) LockUser(ctx context.Context, userID int64) (int64, error) {
	row := q.db.QueryRow(ctx, lockUser, userID)
	var user_id int64
	err := row.Scan(&user_id)
	return user_id, err
}

const deleteSuggestionsByUserID = `-- name: DeleteSuggestionsByUserID :execrows
DELETE FROM suggestions WHERE user_id = $1
`

func (q *Queries) DeleteSuggestionsByUserID(ctx context.Context, userID int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSuggestionsByUserID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const insertSuggestion = `-- name: InsertSuggestion :one
INSERT INTO suggestions (user_id, suggestion_content, suggestion_date)
VALUES ($1, $2, NOW())
RETURNING suggestion_id, user_id, suggestion_content, suggestion_date
`

type InsertSuggestionParams struct {
	UserID            int64  `json:"user_id"`
	SuggestionContent string `json:"suggestion_content"`
}

func (q *Queries) InsertSuggestion(ctx context.Context, arg InsertSuggestionParams) (Suggestion, error) {
	row := q.db.QueryRow(ctx, insertSuggestion, arg.UserID, arg.SuggestionContent)
	var i Suggestion
	err := row.Scan(
		&i.SuggestionID,
		&i.UserID,
		&i.SuggestionContent,
		&i.SuggestionDate,
	)
	return i, err
}

const getLatestSuggestionByUserID = `-- name: GetLatestSuggestionByUserID :one
SELECT suggestion_id, user_id, suggestion_content, suggestion_date
FROM suggestions
WHERE user_id = $1
ORDER BY suggestion_date DESC, suggestion_id DESC
LIMIT 1
`

func (q *Queries) GetLatestSuggestionByUserID(ctx context.Context, userID int64) (Suggestion, error) {
	row := q.db.QueryRow(ctx, getLatestSuggestionByUserID, userID)
	var i Suggestion
	err := row.Scan(
		&i.SuggestionID,
		&i.UserID,
		&i.SuggestionContent,
		&i.SuggestionDate,
	)
	return i, err
}
