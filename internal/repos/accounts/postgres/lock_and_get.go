package accounts

import (
	"database/sql"
	"fmt"

	"github.com/marketdex/economy/internal/repos/accounts"
)

// LockAndGet reads the account row under FOR UPDATE. Every mutation on the
// same account goes through this lock first, so per-account changes are
// serialized while unrelated accounts proceed in parallel.
func (r *accountsRepo) LockAndGet(tx *sql.Tx, accountID uint64) (accounts.Account, error) {
	var acct accounts.Account

	err := tx.QueryRow(`
		SELECT id, balance, last_claim_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, accountID).Scan(&acct.ID, &acct.Balance, &acct.LastClaimAt)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("lock/get account: %w", err)
	}

	return acct, nil
}
