package main

import (
	"fmt"
	"net/http"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

type insightsTemplateData struct {
	BaseTemplateData
	Insight string
}

func (app *application) insightsGET(w http.ResponseWriter, r *http.Request) {
	insight, err := app.recoveryService.WeeklyInsight(r.Context())
	if err != nil {
		if errors.Is(err, recovery.ErrNoProfile) {
			redirect(w, r, "/profile")
			return
		}
		app.serverError(w, r, fmt.Errorf("weekly insight: %w", err))
		return
	}

	data := insightsTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Insight:          insight,
	}
	app.render(w, r, http.StatusOK, "insights", data)
}
