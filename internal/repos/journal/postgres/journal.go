package journal

import (
	"database/sql"
	"fmt"

	"github.com/marketdex/economy/internal/repos/journal"
)

var _ journal.Journal = (*journalRepo)(nil)

type journalRepo struct{ db *sql.DB }

func New(db *sql.DB) *journalRepo {
	return &journalRepo{db: db}
}

func (r *journalRepo) Insert(tx *sql.Tx, entry journal.Entry) error {
	_, err := tx.Exec(`
		INSERT INTO ledger_entries (entry_id, account_id, kind, amount)
		VALUES ($1, $2, $3, $4)
	`, entry.EntryID, entry.AccountID, string(entry.Kind), entry.Amount)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}
