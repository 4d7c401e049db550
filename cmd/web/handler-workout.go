package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

const maxLoggedExercises = 10

type workoutTypeOption struct {
	Value string
	Label string
}

type workoutView struct {
	Type            string
	Difficulty      string
	DurationMinutes int
	CompletedAt     time.Time
	Exercises       []string
}

type workoutsTemplateData struct {
	BaseTemplateData
	Workouts     []workoutView
	WorkoutTypes []workoutTypeOption
	ExerciseRows []int
}

func workoutTypeOptions() []workoutTypeOption {
	return []workoutTypeOption{
		{Value: "chest", Label: "Chest day"},
		{Value: "back", Label: "Back day"},
		{Value: "shoulders", Label: "Shoulder day"},
		{Value: "arms", Label: "Arm day"},
		{Value: "legs", Label: "Leg day"},
		{Value: "core", Label: "Core session"},
		{Value: "strength", Label: "Mixed strength"},
		{Value: "cardio", Label: "Cardio"},
		{Value: "flexibility", Label: "Flexibility"},
	}
}

func (app *application) workoutsGET(w http.ResponseWriter, r *http.Request) {
	workouts, err := app.recoveryService.ListWorkouts(r.Context())
	if err != nil {
		app.serverError(w, r, fmt.Errorf("list workouts: %w", err))
		return
	}

	// Newest first for display.
	views := make([]workoutView, 0, len(workouts))
	for i := len(workouts) - 1; i >= 0; i-- {
		workout := workouts[i]
		exercises := make([]string, len(workout.Exercises))
		for j, exercise := range workout.Exercises {
			exercises[j] = fmt.Sprintf("%s (%d sets)", exercise.Name, exercise.Sets)
		}
		views = append(views, workoutView{
			Type:            workout.Type,
			Difficulty:      workout.Difficulty,
			DurationMinutes: workout.DurationMinutes,
			CompletedAt:     workout.CompletedAt,
			Exercises:       exercises,
		})
	}

	data := workoutsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Workouts:         views,
		WorkoutTypes:     workoutTypeOptions(),
		ExerciseRows:     exerciseRowIndexes(),
	}
	app.render(w, r, http.StatusOK, "workouts", data)
}

// exerciseRowIndexes numbers the exercise rows of the logging form, starting
// from one.
func exerciseRowIndexes() []int {
	rows := make([]int, maxLoggedExercises)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}

func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	workout, err := parseWorkoutForm(r)
	if err != nil {
		http.Error(w, "Please check the workout fields and try again.", http.StatusUnprocessableEntity)
		return
	}

	if err = app.recoveryService.LogWorkout(r.Context(), workout); err != nil {
		if errors.Is(err, recovery.ErrInvalidInput) {
			http.Error(w, "Please provide a workout type and a positive duration.", http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, fmt.Errorf("log workout: %w", err))
		return
	}

	redirect(w, r, "/workouts")
}

func parseWorkoutForm(r *http.Request) (recovery.Workout, error) {
	durationMinutes, _ := strconv.Atoi(r.Form.Get("duration_minutes"))

	var completedAt time.Time
	if completedAtStr := r.Form.Get("completed_at"); completedAtStr != "" {
		parsed, err := time.Parse("2006-01-02T15:04", completedAtStr)
		if err != nil {
			return recovery.Workout{}, fmt.Errorf("parse completed_at: %w", err)
		}
		completedAt = parsed
	}

	workout := recovery.Workout{
		Type:            r.Form.Get("workout_type"),
		Difficulty:      r.Form.Get("difficulty"),
		DurationMinutes: durationMinutes,
		CompletedAt:     completedAt,
	}

	for i := 1; i <= maxLoggedExercises; i++ {
		name := strings.TrimSpace(r.Form.Get(fmt.Sprintf("exercise_%d_name", i)))
		if name == "" {
			continue
		}
		sets, _ := strconv.Atoi(r.Form.Get(fmt.Sprintf("exercise_%d_sets", i)))

		exercise := recovery.Exercise{Name: name, Sets: sets}
		if rpeStr := r.Form.Get(fmt.Sprintf("exercise_%d_rpe", i)); rpeStr != "" {
			if rpe, err := strconv.ParseFloat(rpeStr, 64); err == nil {
				exercise.RPE = &rpe
			}
		}
		workout.Exercises = append(workout.Exercises, exercise)
	}

	return workout, nil
}
