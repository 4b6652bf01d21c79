package economy

import (
	"errors"
	"fmt"
	"time"

	"github.com/marketdex/economy/internal/repos/accounts"
)

var (
	ErrItemNotAvailable = errors.New("item not available in current rotation")
	ErrAlreadyClaimed   = errors.New("daily reward already claimed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNoEligibleAssets = errors.New("no enabled asset definitions")
)

// ShortfallError reports how many coins the account is short. It unwraps to
// accounts.ErrInsufficientFunds so callers can match either.
type ShortfallError struct {
	Shortfall int64
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("insufficient funds: short %d", e.Shortfall)
}

func (e *ShortfallError) Unwrap() error {
	return accounts.ErrInsufficientFunds
}

// CooldownError reports time left until the next exchange attempt is allowed.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %ds remaining", int(e.Remaining.Seconds()))
}
