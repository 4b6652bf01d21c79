package listings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/infra/pgtestutil"
)

func TestListings_DeleteByInstance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	_, err := db.Exec(`INSERT INTO accounts (id) VALUES (5)`)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO asset_definitions (id, display_name, rarity_rank, enabled)
		VALUES (1, 'Test Relic', 10, TRUE)
	`)
	if err != nil {
		t.Fatalf("seed definition: %v", err)
	}

	target := uuid.New()
	other := uuid.New()

	for _, id := range []uuid.UUID{target, other} {
		_, err = db.Exec(`
			INSERT INTO asset_instances (id, owner_id, definition_id, attr_bonus_a, attr_bonus_b)
			VALUES ($1, 5, 1, 0, 0)
		`, id)
		if err != nil {
			t.Fatalf("seed instance: %v", err)
		}
	}

	// Two listings on the target, one on the other instance.
	for _, id := range []uuid.UUID{target, target, other} {
		_, err = db.Exec(`INSERT INTO trade_listings (instance_id, seller_id) VALUES ($1, 5)`, id)
		if err != nil {
			t.Fatalf("seed listing: %v", err)
		}
	}

	repo := New(db)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func(tx *sql.Tx) { _ = tx.Rollback() }(tx)

	purged, err := repo.DeleteByInstance(tx, target)
	if err != nil {
		t.Fatalf("delete by instance: %v", err)
	}
	if purged != 2 {
		t.Fatalf("want 2 purged listings, got %d", purged)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	var remaining int
	err = db.QueryRow(`SELECT COUNT(*) FROM trade_listings`).Scan(&remaining)
	if err != nil {
		t.Fatalf("count listings: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("unrelated listing affected: %d remaining", remaining)
	}
}
