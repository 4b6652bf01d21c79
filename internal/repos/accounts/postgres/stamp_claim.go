package accounts

import (
	"database/sql"
	"fmt"
	"time"
)

// StampClaim advances last_claim_at. The WHERE guard keeps the timestamp
// monotonic even if callers race with a stale value.
func (r *accountsRepo) StampClaim(tx *sql.Tx, accountID uint64, claimedAt time.Time) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET last_claim_at = $2
		WHERE id = $1
		  AND last_claim_at < $2
	`, accountID, claimedAt)
	if err != nil {
		return fmt.Errorf("stamp claim: %w", err)
	}

	return nil
}
