package pokeapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meur/pokedex/internal/models"
)

// Source is what Cache wraps
type Source interface {
	Pokemons(ctx context.Context) ([]models.PokemonSummary, error)
	Pokemon(ctx context.Context, id string) (*models.PokemonDetail, error)
}

// Cache reuses the collection for ttl and coalesces concurrent collection
// fetches. Details always go to the source.
type Cache struct {
	src   Source
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.RWMutex
	items   []models.PokemonSummary
	expires time.Time
}

// NewCache wraps src. A non-positive ttl still coalesces concurrent calls
// but keeps nothing afterwards.
func NewCache(src Source, ttl time.Duration) *Cache {
	return &Cache{src: src, ttl: ttl, now: time.Now}
}

// Pokemons returns the cached collection or fetches it. The shared fetch
// is detached from any one caller's cancellation; each caller stops
// waiting when its own ctx is done.
func (c *Cache) Pokemons(ctx context.Context) ([]models.PokemonSummary, error) {
	if items, ok := c.cached(); ok {
		return items, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("pokemons", func() (any, error) {
		items, err := c.src.Pokemons(fetchCtx)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.items = items
			c.expires = c.now().Add(c.ttl)
			c.mu.Unlock()
		}
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.PokemonSummary), nil
	}
}

// Pokemon passes through to the source
func (c *Cache) Pokemon(ctx context.Context, id string) (*models.PokemonDetail, error) {
	return c.src.Pokemon(ctx, id)
}

// Invalidate drops the cached collection
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) cached() ([]models.PokemonSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil || !c.now().Before(c.expires) {
		return nil, false
	}
	return c.items, true
}
