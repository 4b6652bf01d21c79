package economy

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/marketdex/economy/internal/repos/accounts"
	pgaccounts "github.com/marketdex/economy/internal/repos/accounts/postgres"
	"github.com/marketdex/economy/internal/repos/assets"
	pgassets "github.com/marketdex/economy/internal/repos/assets/postgres"
	"github.com/marketdex/economy/internal/repos/instances"
	pginstances "github.com/marketdex/economy/internal/repos/instances/postgres"
	"github.com/marketdex/economy/internal/repos/journal"
	pgjournal "github.com/marketdex/economy/internal/repos/journal/postgres"
	"github.com/marketdex/economy/internal/repos/listings"
	pglistings "github.com/marketdex/economy/internal/repos/listings/postgres"
	"github.com/marketdex/economy/internal/services/shop"
)

// Authorizer answers whether a caller may use administrative operations.
// Identity and role management live outside the core.
type Authorizer interface {
	IsAdmin(ctx context.Context, callerID uint64) (bool, error)
}

type Config struct {
	ExchangeCooldown time.Duration `env:"EXCHANGE_COOLDOWN" envDefault:"30s"`
	ClaimWindow      time.Duration `env:"CLAIM_WINDOW" envDefault:"24h"`
	ClaimMin         int64         `env:"CLAIM_MIN" envDefault:"50"`
	ClaimMax         int64         `env:"CLAIM_MAX" envDefault:"150"`
	BonusSpread      int           `env:"BONUS_SPREAD" envDefault:"20"`
}

// Service is the transactional core: every mutating operation is one database
// transaction that takes the account row lock before touching anything else.
type Service struct {
	db        *sql.DB
	cfg       Config
	accounts  accounts.Accounts
	assets    assets.Definitions
	instances instances.Instances
	listings  listings.Listings
	journal   journal.Journal
	shop      *shop.Rotation
	auth      Authorizer
	cooldown  *Cooldown
	now       func() time.Time
}

func New(db *sql.DB, rotation *shop.Rotation, auth Authorizer, cfg Config) *Service {
	return &Service{
		db:        db,
		cfg:       cfg,
		accounts:  pgaccounts.New(db),
		assets:    pgassets.New(db),
		instances: pginstances.New(db),
		listings:  pglistings.New(db),
		journal:   pgjournal.New(db),
		shop:      rotation,
		auth:      auth,
		cooldown:  NewCooldown(cfg.ExchangeCooldown),
		now:       time.Now,
	}
}

// GetBalance returns the account view, creating the account lazily.
func (s *Service) GetBalance(ctx context.Context, accountID uint64) (accounts.Account, error) {
	acct, err := s.accounts.GetOrCreate(ctx, accountID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("get balance: %w", err)
	}

	return acct, nil
}

// ViewShop returns the current rotation snapshot, refreshing it when stale.
func (s *Service) ViewShop(ctx context.Context) (*shop.Snapshot, error) {
	return s.shop.Current(ctx)
}

// Collection lists the asset instances the account currently owns.
func (s *Service) Collection(ctx context.Context, accountID uint64) ([]instances.Instance, error) {
	owned, err := s.instances.ListByOwner(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}

	return owned, nil
}

func (s *Service) rollBonus() int {
	return rand.IntN(2*s.cfg.BonusSpread+1) - s.cfg.BonusSpread
}
