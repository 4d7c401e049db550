package main

import (
	"fmt"
	"net/http"

	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/recovery"
)

// recoveryRefreshPOST recomputes the recovery snapshot from the stored
// workouts and wellness inputs.
func (app *application) recoveryRefreshPOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.recoveryService.Refresh(r.Context()); err != nil {
		if errors.Is(err, recovery.ErrNoProfile) {
			redirect(w, r, "/profile")
			return
		}
		app.serverError(w, r, fmt.Errorf("refresh recovery: %w", err))
		return
	}

	redirect(w, r, "/")
}
