package accounts

import (
	"database/sql"
	"fmt"
)

func (r *accountsRepo) Credit(tx *sql.Tx, accountID uint64, amount int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance + $2
		WHERE id = $1
	`, accountID, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}

	return nil
}
