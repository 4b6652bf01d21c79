package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrAccountNotFound = errors.New("account not found")

type Account struct {
	ID          uint64
	Balance     int64
	LastClaimAt time.Time
}

type Accounts interface {
	Ensure(tx *sql.Tx, accountID uint64) error
	Get(ctx context.Context, accountID uint64) (Account, error)
	GetOrCreate(ctx context.Context, accountID uint64) (Account, error)
	LockAndGet(tx *sql.Tx, accountID uint64) (Account, error)
	Credit(tx *sql.Tx, accountID uint64, amount int64) error
	Debit(tx *sql.Tx, accountID uint64, amount int64) error
	StampClaim(tx *sql.Tx, accountID uint64, claimedAt time.Time) error
}
