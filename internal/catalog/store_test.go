package catalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"storefront-location/internal/types"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "catalog.sqlite3"), ttl, logger)
	if err != nil {
		t.Fatalf("Open() unexpected error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGet(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	states := []types.State{{ID: 10, Name: "Delhi", Iso2: "DL"}, {ID: 11, Name: "Goa", Iso2: "GA"}}
	if err := store.Put(ctx, "states:IN", states); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}

	var got []types.State
	found, err := store.Get(ctx, "states:IN", &got)
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if diff := cmp.Diff(states, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	found, err = store.Get(ctx, "states:US", &got)
	if err != nil || found {
		t.Errorf("Get(missing) = %v, %v; want false, nil", found, err)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	if err := store.Put(ctx, "countries", []types.Country{{ID: 1, Name: "India"}}); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}
	if err := store.Put(ctx, "countries", []types.Country{{ID: 2, Name: "USA"}}); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}

	var got []types.Country
	if _, err := store.Get(ctx, "countries", &got); err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "USA" {
		t.Errorf("Get() = %+v, want the replaced list", got)
	}
}

func TestStore_Expiry(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Put(ctx, "cities:IN:DL", []types.City{{ID: 100, Name: "New Delhi"}}); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}
	if err := store.Put(ctx, "countries", []types.Country{{ID: 1, Name: "India"}}); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}

	now = now.Add(30 * time.Minute)
	if err := store.Put(ctx, "countries", []types.Country{{ID: 1, Name: "India"}}); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}

	now = now.Add(45 * time.Minute)
	var cities []types.City
	found, err := store.Get(ctx, "cities:IN:DL", &cities)
	if err != nil || found {
		t.Errorf("Get(expired) = %v, %v; want false, nil", found, err)
	}

	removed, err := store.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge() unexpected error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Purge() removed %d entries, want 1", removed)
	}

	var countries []types.Country
	if found, _ := store.Get(ctx, "countries", &countries); !found {
		t.Error("fresh entry was purged")
	}
}

func TestStore_DecodeError(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	if err := store.Put(ctx, "countries", "not a list"); err != nil {
		t.Fatalf("Put() unexpected error = %v", err)
	}
	var got []types.Country
	if _, err := store.Get(ctx, "countries", &got); err == nil {
		t.Error("Get() expected a decode error")
	}
}
