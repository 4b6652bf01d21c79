package economy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/infra/pgutils"
	"github.com/marketdex/economy/internal/repos/instances"
	"github.com/marketdex/economy/internal/repos/journal"
)

// Purchase buys one item from the current rotation. Debit and instance
// creation commit together or not at all; a failed debit reports the exact
// shortfall and leaves no trace.
func (s *Service) Purchase(ctx context.Context, accountID uint64, itemID int64) (instances.Instance, error) {
	snap, err := s.shop.Current(ctx)
	if err != nil {
		return instances.Instance{}, fmt.Errorf("purchase: %w", err)
	}

	item, ok := snap.Item(itemID)
	if !ok {
		return instances.Instance{}, ErrItemNotAvailable
	}

	inst := instances.Instance{
		ID:           uuid.New(),
		OwnerID:      accountID,
		DefinitionID: item.Definition.ID,
		AttrBonusA:   s.rollBonus(),
		AttrBonusB:   s.rollBonus(),
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Ensure(tx, accountID)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		acct, err := s.accounts.LockAndGet(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		if acct.Balance < item.Price {
			return &ShortfallError{Shortfall: item.Price - acct.Balance}
		}

		err = s.accounts.Debit(tx, accountID, item.Price)
		if err != nil {
			return fmt.Errorf("debit price: %w", err)
		}

		err = s.instances.Insert(tx, inst)
		if err != nil {
			return fmt.Errorf("create instance: %w", err)
		}

		err = s.journal.Insert(tx, journal.Entry{
			EntryID:   uuid.New(),
			AccountID: accountID,
			Kind:      journal.KindPurchase,
			Amount:    -item.Price,
		})
		if err != nil {
			return fmt.Errorf("journal purchase: %w", err)
		}

		return nil
	})
	if err != nil {
		return instances.Instance{}, fmt.Errorf("purchase item %d: %w", itemID, err)
	}

	return inst, nil
}
