package shop

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marketdex/economy/internal/repos/assets"
)

type Config struct {
	RotationSize    int           `env:"SHOP_ROTATION_SIZE" envDefault:"5"`
	RefreshInterval time.Duration `env:"SHOP_REFRESH_INTERVAL" envDefault:"6h"`
	MinRarity       int           `env:"SHOP_MIN_RARITY" envDefault:"1"`
	MaxRarity       int           `env:"SHOP_MAX_RARITY" envDefault:"200"`
	MinPrice        int64         `env:"SHOP_MIN_PRICE" envDefault:"2"`
	MaxPrice        int64         `env:"SHOP_MAX_PRICE" envDefault:"50"`
}

type Item struct {
	Definition assets.Definition
	Price      int64
}

// Snapshot is one rotation window of the shop. It is replaced wholesale on
// refresh and never mutated afterwards, so readers may hold it freely.
type Snapshot struct {
	Items       []Item
	GeneratedAt time.Time
}

// Item returns the snapshot entry for a definition id, if it is on offer in
// this window.
func (s *Snapshot) Item(definitionID int64) (Item, bool) {
	for _, it := range s.Items {
		if it.Definition.ID == definitionID {
			return it, true
		}
	}

	return Item{}, false
}

// Rotation owns the time-windowed shop inventory. Refresh is lazy: the first
// caller to observe a stale snapshot regenerates it; concurrent observers are
// collapsed onto that one refresh via singleflight, so a window is sampled
// exactly once.
type Rotation struct {
	defs assets.Definitions
	cfg  Config
	now  func() time.Time

	mu    sync.RWMutex
	snap  *Snapshot
	group singleflight.Group
}

func NewRotation(defs assets.Definitions, cfg Config) *Rotation {
	return &Rotation{
		defs: defs,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Current returns the fresh snapshot, refreshing first if the window expired.
func (r *Rotation) Current(ctx context.Context) (*Snapshot, error) {
	snap := r.fresh()
	if snap != nil {
		return snap, nil
	}

	v, err, _ := r.group.Do("refresh", func() (any, error) {
		// Losers of the race land here after the winner finished; the
		// re-check hands them the winner's snapshot.
		if s := r.fresh(); s != nil {
			return s, nil
		}

		return r.refresh(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("refresh rotation: %w", err)
	}

	return v.(*Snapshot), nil
}

func (r *Rotation) fresh() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snap == nil {
		return nil
	}

	if r.now().Sub(r.snap.GeneratedAt) >= r.cfg.RefreshInterval {
		return nil
	}

	return r.snap
}

// refresh samples up to RotationSize enabled definitions uniformly without
// replacement from the rarity-bounded pool and prices each one. An empty pool
// yields an empty but still fresh snapshot, so an empty catalog does not turn
// every view into a refresh.
func (r *Rotation) refresh(ctx context.Context) (*Snapshot, error) {
	pool, err := r.defs.ListEnabledInRange(ctx, r.cfg.MinRarity, r.cfg.MaxRarity)
	if err != nil {
		return nil, fmt.Errorf("list eligible definitions: %w", err)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := min(r.cfg.RotationSize, len(pool))

	snap := &Snapshot{
		Items:       make([]Item, 0, count),
		GeneratedAt: r.now(),
	}

	for _, def := range pool[:count] {
		snap.Items = append(snap.Items, Item{
			Definition: def,
			Price:      Price(def.RarityRank, r.cfg.MinRarity, r.cfg.MaxRarity, r.cfg.MinPrice, r.cfg.MaxPrice),
		})
	}

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()

	slog.Info("shop rotation refreshed", "items", len(snap.Items), "generated_at", snap.GeneratedAt)

	return snap, nil
}
