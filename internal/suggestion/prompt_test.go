package suggestion

import (
	"testing"
	"time"

	"fitsuggest/internal/database"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderPrompt_FullData(t *testing.T) {
	got := RenderPrompt(PromptData{
		Goal:          "Run a half marathon",
		HealthNotes:   "Asthma",
		TotalCalories: 12500,
		WorkoutDays:   3,
		WorkoutNames:  []string{"Run", "Squat", "Run"},
		Question:      "Should I rest tomorrow?",
		WindowDays:    7,
	})

	want := `The user has the following goal: Run a half marathon.
Health notes: Asthma.
They consumed a total of 12500 calories this week and worked out on 3 days.
Workouts done: Run, Squat, Run.
User's question: "Should I rest tomorrow?".
Based on this information, provide a suggestion in 2-3 sentences.`
	assert.Equal(t, want, got)
}

func TestRenderPrompt_Fallbacks(t *testing.T) {
	got := RenderPrompt(PromptData{Question: "What now?", WindowDays: 7})

	want := `The user has the following goal: No goal provided.
Health notes: No health notes.
They consumed a total of 0 calories this week and worked out on 0 days.
Workouts done: No workouts logged.
User's question: "What now?".
Based on this information, provide a suggestion in 2-3 sentences.`
	assert.Equal(t, want, got)
}

func TestRenderPrompt_Deterministic(t *testing.T) {
	d := PromptData{Goal: "g", HealthNotes: "n", TotalCalories: 10, WorkoutDays: 1, WorkoutNames: []string{"Row"}, Question: "q", WindowDays: 7}
	assert.Equal(t, RenderPrompt(d), RenderPrompt(d))
}

func TestRenderPrompt_OtherWindowLengths(t *testing.T) {
	assert.Contains(t, RenderPrompt(PromptData{WindowDays: 14}), "calories in the last 14 days and")
	assert.Contains(t, RenderPrompt(PromptData{WindowDays: 1}), "calories today and")
}

func TestCountWorkoutDays_SameDateCountsOnce(t *testing.T) {
	rows := []database.ListExercisesInWindowRow{
		{ExerciseName: "Run", WorkoutDate: day(2026, 10, 14)},
		{ExerciseName: "Squat", WorkoutDate: day(2026, 10, 14)},
		{ExerciseName: "Bench", WorkoutDate: day(2026, 10, 14)},
		{ExerciseName: "Swim", WorkoutDate: day(2026, 10, 17)},
	}
	assert.Equal(t, 2, CountWorkoutDays(rows))
	assert.Equal(t, []string{"Run", "Squat", "Bench", "Swim"}, WorkoutNames(rows))
}

func TestCountWorkoutDays_Empty(t *testing.T) {
	assert.Equal(t, 0, CountWorkoutDays(nil))
	assert.Empty(t, WorkoutNames(nil))
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

	start, end := Window(now, 7)
	assert.Equal(t, day(2026, 10, 13), start)
	assert.Equal(t, day(2026, 10, 20), end)

	start, end = Window(now, 1)
	assert.Equal(t, day(2026, 10, 19), start)
	assert.Equal(t, day(2026, 10, 20), end)
}

func TestWindow_UsesCalendarDayOfNowsLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-19 23:30 UTC is already the 20th in Tokyo.
	now := time.Date(2026, 10, 20, 8, 30, 0, 0, tokyo)

	start, end := Window(now, 7)
	assert.Equal(t, day(2026, 10, 14), start)
	assert.Equal(t, day(2026, 10, 21), end)
}
