package database

import (
	"time"
)

type User struct {
	UserID       int64  `json:"user_id"`
	UserUsername string `json:"user_username"`
}

type Workout struct {
	WorkoutID   int64     `json:"workout_id"`
	UserID      int64     `json:"user_id"`
	WorkoutDate time.Time `json:"workout_date"`
}

type Food struct {
	FoodID       int64  `json:"food_id"`
	WorkoutID    int64  `json:"workout_id"`
	FoodName     string `json:"food_name"`
	FoodCalories int64  `json:"food_calories"`
}

type Exercise struct {
	ExerciseID       int64  `json:"exercise_id"`
	WorkoutID        int64  `json:"workout_id"`
	ExerciseName     string `json:"exercise_name"`
	ExerciseType     string `json:"exercise_type"`
	ExerciseDuration int32  `json:"exercise_duration"`
}

type Goal struct {
	GoalID          int64  `json:"goal_id"`
	UserID          int64  `json:"user_id"`
	GoalDescription string `json:"goal_description"`
	HealthNotes     string `json:"health_notes"`
}

type Suggestion struct {
	SuggestionID      int64     `json:"suggestion_id"`
	UserID            int64     `json:"user_id"`
	SuggestionContent string    `json:"suggestion_content"`
	SuggestionDate    time.Time `json:"suggestion_date"`
}
