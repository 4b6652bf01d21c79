package instances

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrInstanceNotOwned = errors.New("asset instance not found or not owned")

// Instance is one owned unit of an asset definition with per-instance
// randomized attribute bonuses.
type Instance struct {
	ID           uuid.UUID
	OwnerID      uint64
	DefinitionID int64
	AttrBonusA   int
	AttrBonusB   int
}

type Instances interface {
	Insert(tx *sql.Tx, inst Instance) error
	LockOwned(tx *sql.Tx, instanceID uuid.UUID, ownerID uint64) (Instance, error)
	Delete(tx *sql.Tx, instanceID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]Instance, error)
}
