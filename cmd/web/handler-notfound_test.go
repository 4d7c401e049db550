package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlinna/recoverly/internal/e2etest"
	"github.com/mlinna/recoverly/internal/testhelpers"
)

func Test_application_notFound(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Nonexistent path returns custom 404", func(t *testing.T) {
		resp, err := client.Get(ctx, "/nonexistent")
		if err != nil {
			t.Fatalf("Failed to get nonexistent path: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d for nonexistent path, got %d", http.StatusNotFound, resp.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			t.Fatalf("Failed to parse 404 document: %v", err)
		}

		heading := doc.Find("h1").First().Text()
		if !strings.Contains(heading, "Page not found") {
			t.Errorf("Expected custom 404 heading, got: %s", heading)
		}

		if doc.Find("a[href='/']").Length() == 0 {
			t.Error("Expected 404 page to link back to the front page")
		}
	})

	t.Run("Unknown muscle path returns custom 404", func(t *testing.T) {
		if _, err := client.SignIn(ctx, "Tuomas"); err != nil {
			t.Fatalf("Failed to sign in: %v", err)
		}

		resp, err := client.Get(ctx, "/muscles/spleen")
		if err != nil {
			t.Fatalf("Failed to get unknown muscle path: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status code %d for unknown muscle, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})
}
