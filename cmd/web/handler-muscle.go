package main

import (
	"fmt"
	"net/http"
)

type muscleTemplateData struct {
	BaseTemplateData
	DisplayName string
	Guidance    string
	State       *muscleView
}

func (app *application) muscleGET(w http.ResponseWriter, r *http.Request) {
	group, ok := app.parseMuscleGroupParam(w, r)
	if !ok {
		return
	}

	guide, state, err := app.recoveryService.MuscleGuide(r.Context(), group)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("muscle guide: %w", err))
		return
	}

	data := muscleTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		DisplayName:      guide.DisplayName,
		Guidance:         guide.GuidanceMarkdown,
	}
	if state != nil {
		data.State = &muscleView{
			Group:              state.MuscleGroup,
			Status:             state.Status,
			RecoveryPercentage: state.RecoveryPercentage,
			FatigueLevel:       state.FatigueLevel,
			SorenessLevel:      state.SorenessLevel,
			ReadinessScore:     state.ReadinessScore,
		}
	}

	app.render(w, r, http.StatusOK, "muscle", data)
}
