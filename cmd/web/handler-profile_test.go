package main

import (
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlinna/recoverly/internal/e2etest"
	"github.com/mlinna/recoverly/internal/testhelpers"
)

// signInWithProfile signs in with the given name and saves a basic profile,
// returning the dashboard document. Shared by the tests that need an account
// with recovery data.
func signInWithProfile(
	t *testing.T,
	ctx context.Context,
	client *e2etest.Client,
	name string,
) *goquery.Document {
	t.Helper()

	doc, err := client.SignIn(ctx, name)
	if err != nil {
		t.Fatalf("Failed to sign in: %v", err)
	}

	if doc, err = client.GetDoc(ctx, "/profile"); err != nil {
		t.Fatalf("Failed to get profile page: %v", err)
	}

	doc, err = client.SubmitForm(ctx, doc, "/profile", map[string]string{
		"Age":          "30",
		"Weight":       "80",
		"Intermediate": "intermediate",
		"Student":      "student",
	})
	if err != nil {
		t.Fatalf("Failed to submit profile form: %v", err)
	}
	return doc
}

func Test_application_profile(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Saving the profile lands on the dashboard", func(t *testing.T) {
		doc := signInWithProfile(t, ctx, client, "Pekka")

		heading := doc.Find("h1").First().Text()
		if heading != "Recovery dashboard" {
			t.Errorf("Expected dashboard heading after saving profile, got: %s", heading)
		}

		// All tracked muscle groups start fully recovered.
		rows := doc.Find("table tbody tr").Length()
		if rows != 14 {
			t.Errorf("Expected 14 muscle rows on the dashboard, got %d", rows)
		}
	})

	t.Run("Profile form shows the saved values", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/profile")
		if err != nil {
			t.Fatalf("Failed to get profile page: %v", err)
		}

		age, _ := doc.Find("input#age").Attr("value")
		if age != "30" {
			t.Errorf("Expected age input to show 30, got: %s", age)
		}
		checked := doc.Find("input[name='fitness_level'][value='intermediate'][checked]").Length()
		if checked != 1 {
			t.Errorf("Expected intermediate fitness level to be checked, found %d", checked)
		}
	})

	t.Run("Missing age is rejected", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/profile")
		if err != nil {
			t.Fatalf("Failed to get profile page: %v", err)
		}

		_, err = client.SubmitForm(ctx, doc, "/profile", map[string]string{
			"Age":      "",
			"Weight":   "80",
			"Beginner": "beginner",
		})
		if err == nil {
			t.Error("Expected invalid profile submission to fail, but it succeeded")
		}
		if !containsStatusError(err, 422) {
			t.Errorf("Expected status error 422 for invalid profile, got: %v", err)
		}
	})
}
