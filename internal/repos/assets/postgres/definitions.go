package assets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marketdex/economy/internal/repos/assets"
)

var _ assets.Definitions = (*definitionsRepo)(nil)

type definitionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *definitionsRepo {
	return &definitionsRepo{db: db}
}

func (r *definitionsRepo) ListEnabled(ctx context.Context) ([]assets.Definition, error) {
	return r.list(ctx, `
		SELECT id, display_name, rarity_rank, enabled
		FROM asset_definitions
		WHERE enabled
		ORDER BY id
	`)
}

func (r *definitionsRepo) ListEnabledInRange(ctx context.Context, minRarity, maxRarity int) ([]assets.Definition, error) {
	return r.list(ctx, `
		SELECT id, display_name, rarity_rank, enabled
		FROM asset_definitions
		WHERE enabled
		  AND rarity_rank BETWEEN $1 AND $2
		ORDER BY id
	`, minRarity, maxRarity)
}

func (r *definitionsRepo) list(ctx context.Context, query string, args ...any) ([]assets.Definition, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []assets.Definition

	for rows.Next() {
		var d assets.Definition

		err = rows.Scan(&d.ID, &d.DisplayName, &d.RarityRank, &d.Enabled)
		if err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}

		defs = append(defs, d)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}

	return defs, nil
}
