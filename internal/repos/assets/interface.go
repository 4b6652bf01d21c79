package assets

import "context"

// Definition is reference data owned by the asset authoring pipeline.
// This core only reads it.
type Definition struct {
	ID          int64
	DisplayName string
	RarityRank  int
	Enabled     bool
}

type Definitions interface {
	ListEnabled(ctx context.Context) ([]Definition, error)
	ListEnabledInRange(ctx context.Context, minRarity, maxRarity int) ([]Definition, error)
}
