package accounts

import (
	"database/sql"
	"fmt"

	"github.com/marketdex/economy/internal/repos/accounts"
)

// Debit subtracts amount only if the balance stays non-negative. Zero rows
// affected means the guard rejected the debit (or the account is missing);
// both map to ErrInsufficientFunds.
func (r *accountsRepo) Debit(tx *sql.Tx, accountID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, accountID, amount)
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientFunds
	}

	return nil
}
