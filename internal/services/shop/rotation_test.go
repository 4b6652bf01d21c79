package shop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marketdex/economy/internal/repos/assets"
)

// fakeDefinitions serves a fixed catalog and counts how many times the
// rarity-bounded listing was hit.
type fakeDefinitions struct {
	defs  []assets.Definition
	calls atomic.Int64
}

func (f *fakeDefinitions) ListEnabled(_ context.Context) ([]assets.Definition, error) {
	return f.defs, nil
}

func (f *fakeDefinitions) ListEnabledInRange(_ context.Context, minRarity, maxRarity int) ([]assets.Definition, error) {
	f.calls.Add(1)

	var out []assets.Definition
	for _, d := range f.defs {
		if d.Enabled && d.RarityRank >= minRarity && d.RarityRank <= maxRarity {
			out = append(out, d)
		}
	}

	return out, nil
}

func testConfig() Config {
	return Config{
		RotationSize:    5,
		RefreshInterval: 6 * time.Hour,
		MinRarity:       1,
		MaxRarity:       200,
		MinPrice:        2,
		MaxPrice:        50,
	}
}

func fixtureCatalog(n int) []assets.Definition {
	defs := make([]assets.Definition, 0, n)
	for i := range n {
		defs = append(defs, assets.Definition{
			ID:          int64(i + 1),
			DisplayName: "Fixture",
			RarityRank:  (i*17)%200 + 1,
			Enabled:     true,
		})
	}

	return defs
}

func TestRotation_RefreshSamplesWithoutReplacement(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{defs: fixtureCatalog(20)}
	rot := NewRotation(defs, testConfig())

	snap, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if len(snap.Items) != 5 {
		t.Fatalf("want 5 items, got %d", len(snap.Items))
	}

	seen := map[int64]bool{}
	for _, it := range snap.Items {
		if seen[it.Definition.ID] {
			t.Fatalf("definition %d sampled twice", it.Definition.ID)
		}
		seen[it.Definition.ID] = true

		want := Price(it.Definition.RarityRank, 1, 200, 2, 50)
		if it.Price != want {
			t.Fatalf("item %d price mismatch: want %d, got %d", it.Definition.ID, want, it.Price)
		}
	}
}

func TestRotation_SmallPoolYieldsAllItems(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{defs: fixtureCatalog(3)}
	rot := NewRotation(defs, testConfig())

	snap, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	if len(snap.Items) != 3 {
		t.Fatalf("want 3 items, got %d", len(snap.Items))
	}
}

func TestRotation_EmptyPoolStaysFresh(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{} // nothing enabled
	rot := NewRotation(defs, testConfig())

	snap, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("want empty snapshot, got %d items", len(snap.Items))
	}

	// Second view must reuse the empty snapshot, not hammer the catalog.
	_, err = rot.Current(context.Background())
	if err != nil {
		t.Fatalf("second current: %v", err)
	}
	if got := defs.calls.Load(); got != 1 {
		t.Fatalf("want 1 refresh for empty pool, got %d", got)
	}
}

func TestRotation_FreshSnapshotReused(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{defs: fixtureCatalog(20)}
	rot := NewRotation(defs, testConfig())

	first, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("first current: %v", err)
	}

	second, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("second current: %v", err)
	}

	if first != second {
		t.Fatal("fresh snapshot was regenerated")
	}
}

func TestRotation_ExpiredSnapshotRefreshes(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{defs: fixtureCatalog(20)}
	rot := NewRotation(defs, testConfig())

	// Pin the clock so the first snapshot is born already expired.
	base := time.Now()
	rot.now = func() time.Time { return base }

	first, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("first current: %v", err)
	}

	rot.now = func() time.Time { return base.Add(7 * time.Hour) }

	second, err := rot.Current(context.Background())
	if err != nil {
		t.Fatalf("second current: %v", err)
	}

	if first == second {
		t.Fatal("expired snapshot was not refreshed")
	}
	if got := defs.calls.Load(); got != 2 {
		t.Fatalf("want 2 refreshes, got %d", got)
	}
}

func TestRotation_ConcurrentStaleViewsSingleFlight(t *testing.T) {
	t.Parallel()

	defs := &fakeDefinitions{defs: fixtureCatalog(50)}
	rot := NewRotation(defs, testConfig())

	const n = 32

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, n)
	errs := make([]error, n)

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snaps[i], errs[i] = rot.Current(context.Background())
		}()
	}
	wg.Wait()

	for i := range n {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if snaps[i] != snaps[0] {
			t.Fatalf("caller %d observed a different snapshot", i)
		}
	}

	if got := defs.calls.Load(); got != 1 {
		t.Fatalf("want exactly 1 refresh, got %d", got)
	}
}

func TestSnapshot_ItemLookup(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{Items: []Item{
		{Definition: assets.Definition{ID: 4, RarityRank: 10}, Price: 40},
	}}

	it, ok := snap.Item(4)
	if !ok || it.Price != 40 {
		t.Fatalf("lookup failed: ok=%v item=%+v", ok, it)
	}

	_, ok = snap.Item(99)
	if ok {
		t.Fatal("unknown id reported as available")
	}
}
