package instances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/repos/instances"
)

var _ instances.Instances = (*instancesRepo)(nil)

type instancesRepo struct{ db *sql.DB }

func New(db *sql.DB) *instancesRepo {
	return &instancesRepo{db: db}
}

func (r *instancesRepo) Insert(tx *sql.Tx, inst instances.Instance) error {
	_, err := tx.Exec(`
		INSERT INTO asset_instances (id, owner_id, definition_id, attr_bonus_a, attr_bonus_b)
		VALUES ($1, $2, $3, $4, $5)
	`, inst.ID, inst.OwnerID, inst.DefinitionID, inst.AttrBonusA, inst.AttrBonusB)
	if err != nil {
		return fmt.Errorf("insert instance: %w", err)
	}

	return nil
}

// LockOwned reads the instance under FOR UPDATE, verifying ownership in the
// same statement. A missing row and a row owned by someone else are
// indistinguishable to the caller on purpose.
func (r *instancesRepo) LockOwned(tx *sql.Tx, instanceID uuid.UUID, ownerID uint64) (instances.Instance, error) {
	var inst instances.Instance

	err := tx.QueryRow(`
		SELECT id, owner_id, definition_id, attr_bonus_a, attr_bonus_b
		FROM asset_instances
		WHERE id = $1
		  AND owner_id = $2
		FOR UPDATE
	`, instanceID, ownerID).Scan(
		&inst.ID, &inst.OwnerID, &inst.DefinitionID, &inst.AttrBonusA, &inst.AttrBonusB,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return instances.Instance{}, instances.ErrInstanceNotOwned
		}

		return instances.Instance{}, fmt.Errorf("lock instance: %w", err)
	}

	return inst, nil
}

func (r *instancesRepo) Delete(tx *sql.Tx, instanceID uuid.UUID) error {
	_, err := tx.Exec(`
		DELETE FROM asset_instances
		WHERE id = $1
	`, instanceID)
	if err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}

	return nil
}

func (r *instancesRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]instances.Instance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, definition_id, attr_bonus_a, attr_bonus_b
		FROM asset_instances
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	defer rows.Close()

	var out []instances.Instance

	for rows.Next() {
		var inst instances.Instance

		err = rows.Scan(&inst.ID, &inst.OwnerID, &inst.DefinitionID, &inst.AttrBonusA, &inst.AttrBonusB)
		if err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}

		out = append(out, inst)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate instances: %w", err)
	}

	return out, nil
}
