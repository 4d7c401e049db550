package main

import (
	"net/http"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

type muscleView struct {
	Group              recovery.MuscleGroup
	Status             recovery.Status
	RecoveryPercentage float64
	FatigueLevel       int
	SorenessLevel      int
	ReadinessScore     float64
}

type recommendationView struct {
	Group recovery.MuscleGroup
	Type  recovery.RecommendationType
	// Priority orders the list, high first.
	Priority recovery.Priority
	Message  string
	// DurationMinutes is zero when the recommendation has no duration.
	DurationMinutes int
	Actions         []string
}

type homeTemplateData struct {
	BaseTemplateData
	// HasProfile is false until the user has saved their profile; the
	// dashboard asks them to do that first.
	HasProfile       bool
	Muscles          []muscleView
	Recommendations  []recommendationView
	OverallScore     int
	MostRecovered    recovery.MuscleGroup
	LeastRecovered   recovery.MuscleGroup
	ReadyForTraining []recovery.MuscleGroup
	NeedsRest        []recovery.MuscleGroup
	OptimalWorkout   recovery.WorkoutShape
}

func toMuscleViews(muscles []recovery.MuscleRecovery) []muscleView {
	views := make([]muscleView, len(muscles))
	for i, m := range muscles {
		views[i] = muscleView{
			Group:              m.MuscleGroup,
			Status:             m.Status,
			RecoveryPercentage: m.RecoveryPercentage,
			FatigueLevel:       m.FatigueLevel,
			SorenessLevel:      m.SorenessLevel,
			ReadinessScore:     m.ReadinessScore,
		}
	}
	return views
}

func toRecommendationViews(recs []recovery.Recommendation) []recommendationView {
	views := make([]recommendationView, len(recs))
	for i, rec := range recs {
		views[i] = recommendationView{
			Group:    rec.MuscleGroup,
			Type:     rec.Type,
			Priority: rec.Priority,
			Message:  rec.Message,
			Actions:  rec.Actions,
		}
		if rec.DurationMinutes != nil {
			views[i].DurationMinutes = *rec.DurationMinutes
		}
	}
	return views
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	// Only fetch the recovery snapshot for authenticated users.
	if data.Authenticated {
		snapshot, err := app.recoveryService.Current(r.Context())
		switch {
		case errors.Is(err, recovery.ErrNoProfile):
			// Fresh account, the dashboard prompts for the profile.
		case err != nil:
			app.serverError(w, r, err)
			return
		default:
			data.HasProfile = true
			data.Muscles = toMuscleViews(snapshot.Muscles)
			data.Recommendations = toRecommendationViews(snapshot.Recommendations)
			data.OverallScore = snapshot.Metrics.OverallRecoveryScore
			data.MostRecovered = snapshot.Metrics.MostRecoveredMuscle
			data.LeastRecovered = snapshot.Metrics.LeastRecoveredMuscle
			data.ReadyForTraining = snapshot.Metrics.ReadyForTraining
			data.NeedsRest = snapshot.Metrics.NeedsRest
			data.OptimalWorkout = snapshot.Metrics.OptimalWorkoutType
		}
	}

	app.render(w, r, http.StatusOK, "home", data)
}
