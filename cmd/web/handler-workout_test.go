package main

import (
	"strings"
	"testing"

	"github.com/mlinna/recoverly/internal/e2etest"
	"github.com/mlinna/recoverly/internal/testhelpers"
)

func Test_application_logWorkout(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()
	signInWithProfile(t, ctx, client, "Ville")

	t.Run("Logged workout shows up in the history", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/workouts")
		if err != nil {
			t.Fatalf("Failed to get workouts page: %v", err)
		}

		doc, err = client.SubmitForm(ctx, doc, "/workouts/log", map[string]string{
			"Type":       "legs",
			"Difficulty": "intermediate",
			"Duration":   "60",
		})
		if err != nil {
			t.Fatalf("Failed to submit workout form: %v", err)
		}

		history := doc.Find("section.workout-history").Text()
		if !strings.Contains(history, "legs") {
			t.Errorf("Expected workout history to contain the logged workout, got: %s", history)
		}
	})

	t.Run("Dashboard reflects the fresh leg workout", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}

		// A workout completed moments ago leaves the leg muscles fully
		// fatigued.
		row := doc.Find("table tbody tr.status-overworked")
		if row.Length() == 0 {
			t.Error("Expected at least one overworked muscle after a fresh workout")
		}
		if !strings.Contains(doc.Find("table tbody").Text(), "quadriceps") {
			t.Error("Expected quadriceps row on the dashboard")
		}
	})

	t.Run("Workout without a duration is rejected", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/workouts")
		if err != nil {
			t.Fatalf("Failed to get workouts page: %v", err)
		}

		_, err = client.SubmitForm(ctx, doc, "/workouts/log", map[string]string{
			"Type":     "chest",
			"Duration": "0",
		})
		if err == nil {
			t.Error("Expected workout without duration to be rejected, but it succeeded")
		}
		if !containsStatusError(err, 422) {
			t.Errorf("Expected status error 422 for invalid workout, got: %v", err)
		}
	})
}
