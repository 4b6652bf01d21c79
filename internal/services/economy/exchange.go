package economy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/infra/pgutils"
	"github.com/marketdex/economy/internal/repos/instances"
)

// Exchange swaps an owned instance for a fresh instance of a uniformly random
// enabled definition. Inside one transaction: purge dependent trade listings,
// create the replacement, then delete the original — in that order, so a
// failure partway through never leaves a listing pointing at a deleted
// instance.
func (s *Service) Exchange(ctx context.Context, accountID uint64, instanceID uuid.UUID) (instances.Instance, error) {
	remaining, ok := s.cooldown.Try(accountID)
	if !ok {
		return instances.Instance{}, &CooldownError{Remaining: remaining}
	}

	pool, err := s.assets.ListEnabled(ctx)
	if err != nil {
		return instances.Instance{}, fmt.Errorf("exchange: list enabled: %w", err)
	}

	if len(pool) == 0 {
		return instances.Instance{}, ErrNoEligibleAssets
	}

	newDef := pool[rand.IntN(len(pool))]

	replacement := instances.Instance{
		ID:           uuid.New(),
		OwnerID:      accountID,
		DefinitionID: newDef.ID,
		AttrBonusA:   s.rollBonus(),
		AttrBonusB:   s.rollBonus(),
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Ensure(tx, accountID)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		// Account lock serializes all asset mutations for this account.
		_, err = s.accounts.LockAndGet(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		old, err := s.instances.LockOwned(tx, instanceID, accountID)
		if err != nil {
			return fmt.Errorf("lock instance: %w", err)
		}

		purged, err := s.listings.DeleteByInstance(tx, old.ID)
		if err != nil {
			return fmt.Errorf("purge listings: %w", err)
		}

		if purged > 0 {
			slog.Info("purged listings for exchanged instance",
				"account_id", accountID, "instance_id", old.ID, "listings", purged)
		}

		err = s.instances.Insert(tx, replacement)
		if err != nil {
			return fmt.Errorf("create replacement: %w", err)
		}

		err = s.instances.Delete(tx, old.ID)
		if err != nil {
			return fmt.Errorf("delete original: %w", err)
		}

		return nil
	})
	if err != nil {
		return instances.Instance{}, fmt.Errorf("exchange instance %s: %w", instanceID, err)
	}

	return replacement, nil
}
