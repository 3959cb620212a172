//go:build integration

package timezone

import "testing"

func TestNewService_Integration(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService() unexpected error = %v", err)
	}

	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{name: "New Delhi", lat: 28.6139, lng: 77.2090, want: "Asia/Kolkata"},
		{name: "Aspen", lat: 39.1911, lng: -106.8175, want: "America/Denver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Lookup(tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("Lookup() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Lookup() = %q, want %q", got, tt.want)
			}
		})
	}
}
