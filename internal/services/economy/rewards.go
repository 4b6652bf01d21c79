package economy

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/marketdex/economy/internal/infra/pgutils"
	"github.com/marketdex/economy/internal/repos/accounts"
	"github.com/marketdex/economy/internal/repos/journal"
)

// ClaimDaily credits a random reward once per claim window. The window check,
// the credit and the timestamp advance share one transaction under the
// account row lock, so two racing claims yield exactly one credit.
func (s *Service) ClaimDaily(ctx context.Context, accountID uint64) (int64, accounts.Account, error) {
	amount := s.cfg.ClaimMin + rand.Int64N(s.cfg.ClaimMax-s.cfg.ClaimMin+1)

	var acct accounts.Account

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Ensure(tx, accountID)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		locked, err := s.accounts.LockAndGet(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		now := s.now()
		if now.Sub(locked.LastClaimAt) < s.cfg.ClaimWindow {
			return ErrAlreadyClaimed
		}

		err = s.accounts.Credit(tx, accountID, amount)
		if err != nil {
			return fmt.Errorf("credit reward: %w", err)
		}

		err = s.accounts.StampClaim(tx, accountID, now)
		if err != nil {
			return fmt.Errorf("advance claim stamp: %w", err)
		}

		err = s.journal.Insert(tx, journal.Entry{
			EntryID:   uuid.New(),
			AccountID: accountID,
			Kind:      journal.KindClaim,
			Amount:    amount,
		})
		if err != nil {
			return fmt.Errorf("journal claim: %w", err)
		}

		acct = locked
		acct.Balance += amount
		acct.LastClaimAt = now

		return nil
	})
	if err != nil {
		return 0, accounts.Account{}, fmt.Errorf("claim daily: %w", err)
	}

	return amount, acct, nil
}

// AdminGrant applies a signed balance adjustment, bypassing the claim window.
// The caller must hold the admin capability. Negative grants go through the
// guarded debit, so a grant can never drive a balance below zero.
func (s *Service) AdminGrant(ctx context.Context, accountID uint64, amount int64, callerID uint64) (accounts.Account, error) {
	isAdmin, err := s.auth.IsAdmin(ctx, callerID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("authorize grant: %w", err)
	}

	if !isAdmin {
		return accounts.Account{}, ErrPermissionDenied
	}

	var acct accounts.Account

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Ensure(tx, accountID)
		if err != nil {
			return fmt.Errorf("ensure account: %w", err)
		}

		locked, err := s.accounts.LockAndGet(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		if amount >= 0 {
			err = s.accounts.Credit(tx, accountID, amount)
			if err != nil {
				return fmt.Errorf("credit grant: %w", err)
			}
		} else {
			if locked.Balance+amount < 0 {
				return &ShortfallError{Shortfall: -amount - locked.Balance}
			}

			err = s.accounts.Debit(tx, accountID, -amount)
			if err != nil {
				return fmt.Errorf("debit grant: %w", err)
			}
		}

		err = s.journal.Insert(tx, journal.Entry{
			EntryID:   uuid.New(),
			AccountID: accountID,
			Kind:      journal.KindGrant,
			Amount:    amount,
		})
		if err != nil {
			return fmt.Errorf("journal grant: %w", err)
		}

		acct = locked
		acct.Balance += amount

		return nil
	})
	if err != nil {
		return accounts.Account{}, fmt.Errorf("admin grant: %w", err)
	}

	return acct, nil
}
