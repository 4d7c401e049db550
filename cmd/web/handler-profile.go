package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

type fitnessLevelOption struct {
	Value recovery.FitnessLevel
	Label string
}

type lifestyleOption struct {
	Value string
	Label string
}

type profileTemplateData struct {
	BaseTemplateData
	HasProfile       bool
	Age              int
	WeightKg         float64
	FitnessLevel     recovery.FitnessLevel
	Lifestyle        string
	Injuries         string
	Supplements      string
	FitnessLevels    []fitnessLevelOption
	LifestyleOptions []lifestyleOption
	ValidationError  string
}

func fitnessLevelOptions() []fitnessLevelOption {
	return []fitnessLevelOption{
		{Value: recovery.FitnessBeginner, Label: "Beginner"},
		{Value: recovery.FitnessIntermediate, Label: "Intermediate"},
		{Value: recovery.FitnessAdvanced, Label: "Advanced"},
		{Value: recovery.FitnessExpert, Label: "Expert"},
	}
}

func lifestyleOptions() []lifestyleOption {
	return []lifestyleOption{
		{Value: "", Label: "Prefer not to say"},
		{Value: "office_worker", Label: "Office worker"},
		{Value: "physical_job", Label: "Physical job"},
		{Value: "student", Label: "Student"},
	}
}

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	data := profileTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		FitnessLevels:    fitnessLevelOptions(),
		LifestyleOptions: lifestyleOptions(),
	}

	info, err := app.recoveryService.ProfileInfo(r.Context())
	switch {
	case errors.Is(err, recovery.ErrNoProfile):
		// First visit, show an empty form.
	case err != nil:
		app.serverError(w, r, fmt.Errorf("profile info: %w", err))
		return
	default:
		data.HasProfile = true
		data.Age = info.Age
		data.WeightKg = info.WeightKg
		data.FitnessLevel = info.FitnessLevel
		data.Lifestyle = info.Lifestyle
		data.Injuries = strings.Join(info.Injuries, "\n")
		data.Supplements = strings.Join(info.Supplements, "\n")
	}

	app.render(w, r, http.StatusOK, "profile", data)
}

func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	age, _ := strconv.Atoi(r.Form.Get("age"))
	weightKg, _ := strconv.ParseFloat(r.Form.Get("weight_kg"), 64)

	info := recovery.UserInfo{
		Age:          age,
		WeightKg:     weightKg,
		FitnessLevel: recovery.FitnessLevel(r.Form.Get("fitness_level")),
		Lifestyle:    r.Form.Get("lifestyle"),
		Injuries:     splitFormLines(r.Form.Get("injuries")),
		Supplements:  splitFormLines(r.Form.Get("supplements")),
	}

	if err := app.recoveryService.SaveProfileInfo(r.Context(), info); err != nil {
		if errors.Is(err, recovery.ErrInvalidInput) {
			data := profileTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Age:              info.Age,
				WeightKg:         info.WeightKg,
				FitnessLevel:     info.FitnessLevel,
				Lifestyle:        info.Lifestyle,
				Injuries:         r.Form.Get("injuries"),
				Supplements:      r.Form.Get("supplements"),
				FitnessLevels:    fitnessLevelOptions(),
				LifestyleOptions: lifestyleOptions(),
				ValidationError:  "Please fill in a valid age, weight, and fitness level.",
			}
			app.render(w, r, http.StatusUnprocessableEntity, "profile", data)
			return
		}
		app.serverError(w, r, fmt.Errorf("save profile info: %w", err))
		return
	}

	redirect(w, r, "/")
}

// splitFormLines turns a textarea's content into a list, one entry per
// non-empty line.
func splitFormLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
