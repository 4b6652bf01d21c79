package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marketdex/economy/internal/repos/accounts"
)

func (r *accountsRepo) Get(ctx context.Context, accountID uint64) (accounts.Account, error) {
	var acct accounts.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, balance, last_claim_at
		FROM accounts
		WHERE id = $1
	`, accountID).Scan(&acct.ID, &acct.Balance, &acct.LastClaimAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acct, nil
}

func (r *accountsRepo) GetOrCreate(ctx context.Context, accountID uint64) (accounts.Account, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, accountID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("create account: %w", err)
	}

	return r.Get(ctx, accountID)
}
