package internal

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const catalogKey = "items"

// Catalog holds the normalized item list shown in the catalog view.
// Load failures are logged and leave the catalog as it was.
type Catalog struct {
	inventory  Inventory
	normalizer *Normalizer
	cache      *cache.Cache

	mu     sync.RWMutex
	items  []ItemRecord
	loaded bool
}

// NewCatalog creates a catalog whose fetched list stays fresh for ttl
func NewCatalog(inventory Inventory, ttl time.Duration) *Catalog {
	return &Catalog{
		inventory:  inventory,
		normalizer: NewNormalizer(),
		// no janitor: the single entry expires lazily on read
		cache: cache.New(ttl, 0),
	}
}

// Load fetches the full item list unless a fresh copy is cached
func (c *Catalog) Load(ctx context.Context) {
	if cached, ok := c.cache.Get(catalogKey); ok {
		c.set(cached.([]ItemRecord))
		return
	}

	raws, err := c.inventory.Items(ctx)
	if err != nil {
		LogError("Error fetching items: %v", err)
		return
	}

	items := c.normalizer.NormalizeAll(raws)
	c.cache.Set(catalogKey, items, cache.DefaultExpiration)
	c.set(items)
	LogDebug("Loaded %d catalog items", len(items))
}

// Refresh drops the cached list and loads again
func (c *Catalog) Refresh(ctx context.Context) {
	c.cache.Delete(catalogKey)
	c.Load(ctx)
}

func (c *Catalog) set(items []ItemRecord) {
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
}

// Items returns the catalog in service order
func (c *Catalog) Items() []ItemRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ItemRecord, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of catalog items
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded reports whether a load has ever succeeded
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Search runs a filtered search on the service
func (c *Catalog) Search(ctx context.Context, q ItemQuery) ([]ItemRecord, error) {
	raws, err := c.inventory.SearchItems(ctx, q)
	if err != nil {
		return nil, err
	}
	return c.normalizer.NormalizeAll(raws), nil
}

// Get fetches a single item by id
func (c *Catalog) Get(ctx context.Context, id string) (ItemRecord, error) {
	raw, err := c.inventory.Item(ctx, id)
	if err != nil {
		return ItemRecord{}, err
	}
	return c.normalizer.Normalize(raw), nil
}
