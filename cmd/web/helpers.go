package main

import (
	"log/slog"
	"net/http"

	"github.com/mlinna/recoverly/internal/recovery"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.render(w, r, http.StatusInternalServerError, "error", nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseMuscleGroupParam parses the "group" path parameter from the request URL.
// Returns the muscle group and true if it names a tracked muscle, or zero and
// false after sending an HTTP 404 response.
func (app *application) parseMuscleGroupParam(w http.ResponseWriter, r *http.Request) (recovery.MuscleGroup, bool) {
	group := r.PathValue("group")
	if !recovery.ValidMuscleGroup(group) {
		app.notFound(w, r)
		return "", false
	}
	return recovery.MuscleGroup(group), true
}
