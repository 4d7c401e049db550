package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlinna/recoverly/internal/e2etest"
	"github.com/mlinna/recoverly/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "RECOVERLY_SQLITE_URL":
		return ":memory:", true
	case "RECOVERLY_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func Test_application_home(t *testing.T) {
	var (
		ctx = t.Context()
		doc *goquery.Document
	)
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Initial state", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}

		checkButtonPresence(t, doc, "Sign in", 1)
	})

	t.Run("After sign-in", func(t *testing.T) {
		doc, err = client.SignIn(ctx, "Maija")
		if err != nil {
			t.Fatalf("Failed to sign in: %v", err)
		}

		checkButtonPresence(t, doc, "Sign in", 0)

		// A fresh account is asked to set up a profile before the dashboard
		// shows anything.
		if doc.Find("a[href='/profile']").Length() == 0 {
			t.Error("Expected a link to profile setup for a fresh account")
		}
	})

	t.Run("After logout", func(t *testing.T) {
		doc, err = client.Logout(ctx)
		if err != nil {
			t.Fatalf("Failed to logout: %v", err)
		}

		checkButtonPresence(t, doc, "Sign in", 1)
	})

	t.Run("After second sign-in", func(t *testing.T) {
		doc, err = client.SignIn(ctx, "Maija")
		if err != nil {
			t.Fatalf("Failed to sign in again: %v", err)
		}

		checkButtonPresence(t, doc, "Sign in", 0)
	})
}

func checkButtonPresence(t *testing.T, doc *goquery.Document, buttonText string, expectedCount int) {
	t.Helper()
	count := doc.Find("button:contains('" + buttonText + "')").Length()
	if count != expectedCount {
		t.Errorf("Expected %d '%s' button(s), but found %d", expectedCount, buttonText, count)
	}
}

func Test_crossOriginProtection(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	// Simulate a browser making cross-origin requests.
	maliciousClient, err := e2etest.NewClientWithSecFetchSite(server.URL(), "cross-site")
	if err != nil {
		t.Fatalf("Failed to create malicious client: %v", err)
	}

	doc, err := maliciousClient.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get home page: %v", err)
	}

	// The sign-in form must reject cross-origin submissions.
	_, err = maliciousClient.SubmitForm(ctx, doc, "/api/session", map[string]string{"Name": "Mallory"})
	if err == nil {
		t.Error("Expected cross-origin form submission to be blocked, but it succeeded")
	}

	if !containsStatusError(err, 403) && !containsStatusError(err, 400) {
		t.Errorf("Expected status error 403 or 400 for blocked request, got: %v", err)
	}
}

// containsStatusError checks if the error contains a specific HTTP status code.
func containsStatusError(err error, statusCode int) bool {
	return err != nil &&
		(err.Error() == fmt.Sprintf("unexpected status code: %d", statusCode) ||
			strings.Contains(err.Error(), fmt.Sprintf("status code: %d", statusCode)))
}
