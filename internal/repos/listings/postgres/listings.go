package listings

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/repos/listings"
)

var _ listings.Listings = (*listingsRepo)(nil)

type listingsRepo struct{ db *sql.DB }

func New(db *sql.DB) *listingsRepo {
	return &listingsRepo{db: db}
}

func (r *listingsRepo) DeleteByInstance(tx *sql.Tx, instanceID uuid.UUID) (int64, error) {
	res, err := tx.Exec(`
		DELETE FROM trade_listings
		WHERE instance_id = $1
	`, instanceID)
	if err != nil {
		return 0, fmt.Errorf("delete listings: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
