package internal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInventory serves a fixed item list and counts fetches
type stubInventory struct {
	mu    sync.Mutex
	items []RawItem
	err   error
	calls int
}

func (s *stubInventory) Items(context.Context) ([]RawItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubInventory) SearchItems(_ context.Context, q ItemQuery) ([]RawItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items[:1], nil
}

func (s *stubInventory) Item(_ context.Context, id string) (RawItem, error) {
	for _, item := range s.items {
		if item["item_id"] == id {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *stubInventory) fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestCatalogLoad(t *testing.T) {
	inv := &stubInventory{items: []RawItem{
		{"item_id": "A", "item_name": "Alpha", "price": 1.0},
		{"id": "B", "name": "Beta", "item_price": 2.0},
	}}
	c := NewCatalog(inv, time.Minute)
	assert.False(t, c.Loaded())

	c.Load(context.Background())

	require.True(t, c.Loaded())
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha", items[0].Name)
	assert.Equal(t, 2.0, items[1].Price)
	assert.Equal(t, 2, c.Len())
}

func TestCatalogLoadUsesCache(t *testing.T) {
	inv := &stubInventory{items: []RawItem{{"name": "Alpha"}}}
	c := NewCatalog(inv, time.Minute)

	c.Load(context.Background())
	c.Load(context.Background())
	assert.Equal(t, 1, inv.fetches())

	c.Refresh(context.Background())
	assert.Equal(t, 2, inv.fetches())
}

func TestCatalogLoadFailureKeepsState(t *testing.T) {
	inv := &stubInventory{err: errors.New("offline")}
	c := NewCatalog(inv, time.Minute)

	c.Load(context.Background())
	assert.False(t, c.Loaded())
	assert.Empty(t, c.Items())

	inv.err = nil
	inv.items = []RawItem{{"name": "Alpha"}}
	c.Load(context.Background())
	assert.Equal(t, 1, c.Len())

	inv.err = errors.New("offline again")
	c.Refresh(context.Background())
	assert.Equal(t, 1, c.Len(), "a failed refresh keeps the previous list")
}

func TestCatalogSearchAndGet(t *testing.T) {
	inv := &stubInventory{items: []RawItem{{"item_id": "A", "item_name": "Alpha", "maximum_discount": 0.5}}}
	c := NewCatalog(inv, time.Minute)

	found, err := c.Search(context.Background(), ItemQuery{SearchQuery: "al"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alpha", found[0].Name)

	rec, err := c.Get(context.Background(), "A")
	require.NoError(t, err)
	require.NotNil(t, rec.MaximumDiscount)
	assert.Equal(t, 0.5, *rec.MaximumDiscount)

	_, err = c.Get(context.Background(), "Z")
	assert.True(t, errors.Is(err, ErrItemNotFound))
}
