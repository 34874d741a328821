package suggestion

import (
	"fmt"
	"strings"
	"time"

	"fitsuggest/internal/database"
)

// Fallback text used when the user has no goal row or logged no workouts.
const (
	NoGoalText        = "No goal provided"
	NoHealthNotesText = "No health notes"
	NoWorkoutsText    = "No workouts logged"
)

/*
userPromptTemplate is filled with fmt.Sprintf in this order: goal, health
notes, total calories, period phrase, workout days, workout names, question.
Keep the order stable; stored suggestions were produced from it.
*/
const userPromptTemplate = `The user has the following goal: %s.
Health notes: %s.
They consumed a total of %d calories %s and worked out on %d days.
Workouts done: %s.
User's question: "%s".
Based on this information, provide a suggestion in 2-3 sentences.`

// PromptData is everything the prompt is rendered from.
type PromptData struct {
	Goal          string
	HealthNotes   string
	TotalCalories int64
	WorkoutDays   int
	WorkoutNames  []string
	Question      string
	WindowDays    int
}

// RenderPrompt builds the model prompt. It is a pure function of its input.
func RenderPrompt(d PromptData) string {
	goal := d.Goal
	if strings.TrimSpace(goal) == "" {
		goal = NoGoalText
	}
	notes := d.HealthNotes
	if strings.TrimSpace(notes) == "" {
		notes = NoHealthNotesText
	}

	workouts := strings.Join(d.WorkoutNames, ", ")
	if workouts == "" {
		workouts = NoWorkoutsText
	}

	return fmt.Sprintf(userPromptTemplate,
		goal,
		notes,
		d.TotalCalories,
		periodPhrase(d.WindowDays),
		d.WorkoutDays,
		workouts,
		d.Question,
	)
}

func periodPhrase(days int) string {
	switch days {
	case 0, 7:
		return "this week"
	case 1:
		return "today"
	default:
		return fmt.Sprintf("in the last %d days", days)
	}
}

// CountWorkoutDays returns how many distinct calendar dates the rows cover.
func CountWorkoutDays(rows []database.ListExercisesInWindowRow) int {
	days := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		days[r.WorkoutDate.Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

// WorkoutNames lists exercise names in query order, duplicates included.
func WorkoutNames(rows []database.ListExercisesInWindowRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.ExerciseName)
	}
	return names
}

// Window returns the half-open date range [start, end) covering the
// trailing `days` calendar days including the day of now. The calendar
// day is taken in now's location; the returned dates are UTC midnights.
func Window(now time.Time, days int) (start, end time.Time) {
	if days < 1 {
		days = 1
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1)), today.AddDate(0, 0, 1)
}
