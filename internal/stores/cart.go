package stores

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
)

// CartStore mirrors the server-side cart. The item slice is a cache of
// server truth: every mutating method awaits remote confirmation before
// touching it, so a failed call never diverges local state from the server.
type CartStore struct {
	mu     sync.RWMutex
	api    *api.CartAPI
	logger *slog.Logger

	items   []domain.CartItem
	loading bool
}

// NewCartStore creates an empty cart mirror.
func NewCartStore(cartAPI *api.CartAPI, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStore{api: cartAPI, logger: logger}
}

// Items returns a snapshot of the cached item sequence.
func (c *CartStore) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a Fetch is in flight.
func (c *CartStore) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// TotalQuantity is the sum of all item quantities, recomputed on every read.
func (c *CartStore) TotalQuantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// SelectedItems returns the items flagged for checkout.
func (c *CartStore) SelectedItems() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.CartItem
	for _, item := range c.items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// TotalAmount is the checkout total over the selected items.
func (c *CartStore) TotalAmount() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, item := range c.items {
		if item.Selected {
			total += item.Subtotal()
		}
	}
	return total
}

// AllSelected reports whether the cart is non-empty and every item is
// selected.
func (c *CartStore) AllSelected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.items) == 0 {
		return false
	}
	for _, item := range c.items {
		if !item.Selected {
			return false
		}
	}
	return true
}

// Fetch replaces the local mirror with server state. A failed fetch keeps
// the last known items rather than blanking the view; the error is logged
// and returned for callers that care.
func (c *CartStore) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	payload, err := c.api.Get(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Error("failed to fetch cart", "error", err)
		return err
	}
	c.items = payload.Items
	return nil
}

// AddItem adds a product, then resynchronizes fully: only the server knows
// whether the new line merged into an existing item or created a new one.
func (c *CartStore) AddItem(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := c.api.Add(ctx, productID, quantity); err != nil {
		return err
	}
	// A failed refetch keeps the pre-add snapshot; it never shows a
	// half-applied list.
	_ = c.Fetch(ctx)
	return nil
}

// UpdateQuantity sets one item's quantity. The server does not change item
// identity here, so this is safe to patch locally after confirmation.
func (c *CartStore) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	if err := c.api.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return err
	}
	c.patch(itemID, func(item *domain.CartItem) { item.Quantity = quantity })
	return nil
}

// ToggleSelected sets one item's selection flag.
func (c *CartStore) ToggleSelected(ctx context.Context, itemID int, selected bool) error {
	if err := c.api.UpdateSelected(ctx, itemID, selected); err != nil {
		return err
	}
	c.patch(itemID, func(item *domain.CartItem) { item.Selected = selected })
	return nil
}

// ToggleSelectAll sets every item's selection flag with one remote call.
func (c *CartStore) ToggleSelectAll(ctx context.Context, selected bool) error {
	if err := c.api.SelectAll(ctx, selected); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Selected = selected
	}
	return nil
}

// RemoveItem deletes one item remotely, then locally.
func (c *CartStore) RemoveItem(ctx context.Context, itemID int) error {
	if err := c.api.Delete(ctx, itemID); err != nil {
		return err
	}
	c.filter(func(item domain.CartItem) bool { return item.ID != itemID })
	return nil
}

// RemoveSelected deletes every selected item remotely, then locally.
func (c *CartStore) RemoveSelected(ctx context.Context) error {
	if err := c.api.DeleteSelected(ctx); err != nil {
		return err
	}
	c.filter(func(item domain.CartItem) bool { return !item.Selected })
	return nil
}

// Clear empties the cart remotely, then locally.
func (c *CartStore) Clear(ctx context.Context) error {
	if err := c.api.Clear(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return nil
}

func (c *CartStore) patch(itemID int, apply func(*domain.CartItem)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == itemID {
			apply(&c.items[i])
			return
		}
	}
}

func (c *CartStore) filter(keep func(domain.CartItem) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
