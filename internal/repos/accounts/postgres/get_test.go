package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marketdex/economy/internal/infra/pgtestutil"
	"github.com/marketdex/economy/internal/repos/accounts"
)

func TestAccounts_GetOrCreate_LazyCreation(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	// Unknown account comes into existence with a zero balance and an
	// epoch claim stamp.
	acct, err := repo.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if acct.ID != 42 || acct.Balance != 0 {
		t.Fatalf("unexpected new account: %+v", acct)
	}
	if !acct.LastClaimAt.Before(time.Now().Add(-365 * 24 * time.Hour)) {
		t.Fatalf("new account claim stamp not at epoch: %v", acct.LastClaimAt)
	}

	// A second call must not reset anything.
	seedAccount(t, db, 42, 777)

	acct, err = repo.GetOrCreate(ctx, 42)
	if err != nil {
		t.Fatalf("second get or create: %v", err)
	}
	if acct.Balance != 777 {
		t.Fatalf("existing balance clobbered: %+v", acct)
	}
}

func TestAccounts_Get_NotFound(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_, err := repo.Get(ctx, 31337)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}

func TestAccounts_Credit_Basic(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedAccount(t, db, 7, 100)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = repo.Credit(tx, 7, 250)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	acct, err := repo.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if acct.Balance != 350 {
		t.Fatalf("balance mismatch: want 350, got %d", acct.Balance)
	}
}
