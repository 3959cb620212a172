//go:build integration

package countrystatecity

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestClient_GetStates_Integration(t *testing.T) {
	apiKey := os.Getenv("STOREFRONT_PROVIDERS_COUNTRYSTATECITY_APIKEY")
	if apiKey == "" {
		t.Skip("STOREFRONT_PROVIDERS_COUNTRYSTATECITY_APIKEY not set")
	}

	client := NewClient(DefaultBaseURL, apiKey, 10*time.Second, slog.Default())

	t.Logf("Making API call to CountryStateCity API...")

	states, err := client.GetStates(context.Background(), "IN")
	if err != nil {
		t.Fatalf("Failed to get states: %v", err)
	}

	t.Logf("Fetched %d states for IN", len(states))

	if len(states) == 0 {
		t.Fatal("Expected at least one state for IN")
	}

	for _, s := range states {
		if s.Iso2 == "DL" {
			t.Logf("✓ Found %s (%s)", s.Name, s.Iso2)
			return
		}
	}
	t.Error("Expected Delhi (DL) among the states of IN")
}
