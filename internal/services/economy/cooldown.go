package economy

import (
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// Cooldown is a process-local, best-effort throttle on repeated exchange
// attempts. It is not a safety mechanism: double-spend protection comes from
// the per-account row lock, and the tracker is neither durable nor shared
// across instances.
type Cooldown struct {
	window time.Duration
	now    func() time.Time
	last   *xsync.Map[uint64, time.Time]
}

func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		now:    time.Now,
		last:   xsync.NewMap[uint64, time.Time](),
	}
}

// Try arms the cooldown for the account and reports whether the attempt is
// allowed. When it is not, the remaining wait is returned.
func (c *Cooldown) Try(accountID uint64) (time.Duration, bool) {
	now := c.now()

	if at, ok := c.last.Load(accountID); ok {
		if elapsed := now.Sub(at); elapsed < c.window {
			return c.window - elapsed, false
		}
	}

	c.last.Store(accountID, now)

	return 0, true
}
