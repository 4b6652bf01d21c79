package listings

import (
	"database/sql"

	"github.com/google/uuid"
)

// Listings are dependent records owned by the trading feature. The economy
// core only purges the ones pointing at an instance it is about to delete.
type Listings interface {
	DeleteByInstance(tx *sql.Tx, instanceID uuid.UUID) (int64, error)
}
