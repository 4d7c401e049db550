package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authHandler.AuthenticateMiddleware(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /recovery/refresh", mustSession(http.HandlerFunc(app.recoveryRefreshPOST)))
	mux.Handle("GET /muscles/{group}", mustSession(http.HandlerFunc(app.muscleGET)))

	mux.Handle("GET /workouts", mustSession(http.HandlerFunc(app.workoutsGET)))
	mux.Handle("POST /workouts/log", mustSession(http.HandlerFunc(app.workoutLogPOST)))

	mux.Handle("GET /wellness", mustSession(http.HandlerFunc(app.wellnessGET)))
	mux.Handle("POST /wellness/sleep", mustSession(http.HandlerFunc(app.sleepLogPOST)))
	mux.Handle("POST /wellness/nutrition", mustSession(http.HandlerFunc(app.nutritionLogPOST)))

	mux.Handle("GET /profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("POST /profile", mustSession(http.HandlerFunc(app.profilePOST)))

	mux.Handle("GET /insights", mustSession(http.HandlerFunc(app.insightsGET)))

	mux.Handle("POST /api/session", session(http.HandlerFunc(app.sessionPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))
	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))
	mux.Handle("POST /api/csp-violation", noAuth(http.HandlerFunc(app.cspViolation)))
	mux.Handle("POST /api/reports", noAuth(http.HandlerFunc(app.reportingAPI)))
	mux.Handle("GET /api/test/timeout", noAuth(http.HandlerFunc(app.testTimeout)))

	// Home route (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler()
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
