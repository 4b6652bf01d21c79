package accounts

import (
	"database/sql"
	"fmt"
)

// Ensure creates the account row with a zero balance if it does not exist yet.
// Accounts are created lazily on first reference and never deleted.
func (r *accountsRepo) Ensure(tx *sql.Tx, accountID uint64) error {
	_, err := tx.Exec(`
		INSERT INTO accounts (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, accountID)
	if err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}

	return nil
}
