package main

import (
	"fmt"
	"net/http"

	"github.com/mlinna/recoverly/internal/auth"
	"github.com/mlinna/recoverly/internal/errors"
)

// sessionPOST signs the user in by name, creating the account on first use.
func (app *application) sessionPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	name := r.Form.Get("name")
	if err := app.authHandler.SignIn(r.Context(), name); err != nil {
		if errors.Is(err, auth.ErrInvalidName) {
			http.Error(w, "Please provide a name between 1 and 64 characters.", http.StatusUnprocessableEntity)
			return
		}
		app.serverError(w, r, fmt.Errorf("sign in: %w", err))
		return
	}

	redirect(w, r, "/")
}

func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.authHandler.Logout(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("logout: %w", err))
		return
	}

	redirect(w, r, "/")
}
