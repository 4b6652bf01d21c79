package journal

import (
	"database/sql"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPurchase Kind = "purchase"
	KindClaim    Kind = "claim"
	KindGrant    Kind = "grant"
)

// Entry records one balance movement. Entries are written in the same
// transaction as the movement, so the journal never disagrees with balances.
type Entry struct {
	EntryID   uuid.UUID
	AccountID uint64
	Kind      Kind
	Amount    int64
}

type Journal interface {
	Insert(tx *sql.Tx, entry Entry) error
}
