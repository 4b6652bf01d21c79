package assets

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/marketdex/economy/internal/infra/pgtestutil"
)

func seedDefs(t *testing.T, db *sql.DB) {
	t.Helper()

	rows := []struct {
		id      int64
		rank    int
		enabled bool
	}{
		{1, 5, true},
		{2, 80, true},
		{3, 200, true},
		{4, 50, false},
		{5, 250, true}, // above range
	}

	for _, r := range rows {
		_, err := db.Exec(`
			INSERT INTO asset_definitions (id, display_name, rarity_rank, enabled)
			VALUES ($1, 'Seeded', $2, $3)
		`, r.id, r.rank, r.enabled)
		if err != nil {
			t.Fatalf("seed definition(%d): %v", r.id, err)
		}
	}
}

func TestDefinitions_ListEnabled(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedDefs(t, db)

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	defs, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("list enabled: %v", err)
	}
	if len(defs) != 4 {
		t.Fatalf("want 4 enabled definitions, got %d", len(defs))
	}
	for _, d := range defs {
		if !d.Enabled {
			t.Fatalf("disabled definition returned: %+v", d)
		}
	}
}

func TestDefinitions_ListEnabledInRange(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedDefs(t, db)

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	defs, err := repo.ListEnabledInRange(ctx, 1, 200)
	if err != nil {
		t.Fatalf("list in range: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("want 3 definitions in range, got %d", len(defs))
	}
	for _, d := range defs {
		if d.RarityRank < 1 || d.RarityRank > 200 || !d.Enabled {
			t.Fatalf("out-of-range or disabled definition returned: %+v", d)
		}
	}
}
