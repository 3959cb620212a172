package timezone

import "testing"

type fakeFinder struct {
	gotLng, gotLat float64
	name           string
}

func (f *fakeFinder) GetTimezoneName(lng, lat float64) string {
	f.gotLng, f.gotLat = lng, lat
	return f.name
}

func TestService_Lookup(t *testing.T) {
	finder := &fakeFinder{name: "Asia/Kolkata"}
	svc := NewServiceWithFinder(finder)

	got, err := svc.Lookup(28.6139, 77.2090)
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	if got != "Asia/Kolkata" {
		t.Errorf("Lookup() = %q, want Asia/Kolkata", got)
	}
	if finder.gotLng != 77.2090 || finder.gotLat != 28.6139 {
		t.Errorf("finder called with lng=%v lat=%v, want lng=77.2090 lat=28.6139", finder.gotLng, finder.gotLat)
	}
}

func TestService_LookupUnknown(t *testing.T) {
	svc := NewServiceWithFinder(&fakeFinder{})

	if _, err := svc.Lookup(0, -160); err == nil {
		t.Fatal("Lookup() expected error for an unresolvable coordinate")
	}
}
