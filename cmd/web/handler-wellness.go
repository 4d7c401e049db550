package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

type wellnessTemplateData struct {
	BaseTemplateData
	Sleep     []recovery.SleepSession
	Nutrition []recovery.NutritionDay
	Today     string
}

func (app *application) wellnessGET(w http.ResponseWriter, r *http.Request) {
	week, err := app.recoveryService.WellnessHistory(r.Context())
	if err != nil {
		app.serverError(w, r, fmt.Errorf("wellness history: %w", err))
		return
	}

	data := wellnessTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Sleep:            week.Sleep,
		Nutrition:        week.Nutrition,
		Today:            time.Now().Format("2006-01-02"),
	}
	app.render(w, r, http.StatusOK, "wellness", data)
}

func (app *application) sleepLogPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	sleptOn, err := time.Parse("2006-01-02", r.Form.Get("slept_on"))
	if err != nil {
		http.Error(w, "Please provide the night the sleep started.", http.StatusUnprocessableEntity)
		return
	}
	durationMinutes, _ := strconv.Atoi(r.Form.Get("duration_minutes"))
	qualityRating, _ := strconv.ParseFloat(r.Form.Get("quality_rating"), 64)

	session := recovery.SleepSession{
		SleptOn:         sleptOn,
		QualityRating:   qualityRating,
		DurationMinutes: durationMinutes,
	}
	if err = app.recoveryService.LogSleep(r.Context(), session); err != nil {
		if errors.Is(err, recovery.ErrInvalidInput) {
			http.Error(w, "Please provide a positive duration and a quality between 0 and 10.", http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, fmt.Errorf("log sleep: %w", err))
		return
	}

	redirect(w, r, "/wellness")
}

func (app *application) nutritionLogPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	day, err := time.Parse("2006-01-02", r.Form.Get("day"))
	if err != nil {
		http.Error(w, "Please provide the day the totals are for.", http.StatusUnprocessableEntity)
		return
	}
	totalProteinG, _ := strconv.ParseFloat(r.Form.Get("total_protein_g"), 64)
	totalCalories, _ := strconv.ParseFloat(r.Form.Get("total_calories"), 64)

	nutrition := recovery.NutritionDay{
		Day:           day,
		TotalProteinG: totalProteinG,
		TotalCalories: totalCalories,
	}
	if err = app.recoveryService.LogNutrition(r.Context(), nutrition); err != nil {
		if errors.Is(err, recovery.ErrInvalidInput) {
			http.Error(w, "Protein and calorie totals cannot be negative.", http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, fmt.Errorf("log nutrition: %w", err))
		return
	}

	redirect(w, r, "/wellness")
}
