package stores

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
	"github.com/SeimoDev/LightShop/internal/mocks"
)

func newCartFixture(gw *mocks.MockGateway) *CartStore {
	return NewCartStore(api.New(gw).Cart, nil)
}

func cartOf(items ...domain.CartItem) *domain.CartPayload {
	return &domain.CartPayload{Items: items}
}

func item(id, productID int, price float64, quantity int, selected bool) domain.CartItem {
	return domain.CartItem{
		ID: id, ProductID: productID, ProductPrice: price,
		Quantity: quantity, Selected: selected,
	}
}

func TestCartStore_FetchReplacesItems(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(item(1, 5, 10, 2, true)))
	}
	c := newCartFixture(gw)

	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.TotalQuantity(); got != 2 {
		t.Errorf("TotalQuantity: got %d, want 2", got)
	}
	if got := c.TotalAmount(); got != 20 {
		t.Errorf("TotalAmount: got %v, want 20", got)
	}
	if !c.AllSelected() {
		t.Error("AllSelected must be true for a fully selected cart")
	}
	if c.Loading() {
		t.Error("loading flag must clear after fetch")
	}
}

func TestCartStore_FetchFailureKeepsLastGoodView(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(item(1, 5, 10, 2, true)))
	}
	c := newCartFixture(gw)
	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.RejectWith(domain.KindNetwork, 0, 0, "network error")
	}
	if err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if len(c.Items()) != 1 {
		t.Error("failed fetch must keep the last known items")
	}
	if c.Loading() {
		t.Error("loading flag must clear even on failure")
	}
}

func TestCartStore_AggregatesRecomputedPerRead(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(
			item(1, 5, 9.9, 2, true),
			item(2, 6, 100, 1, false),
			item(3, 7, 0.1, 3, true),
		))
	}
	c := newCartFixture(gw)
	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if got := c.TotalQuantity(); got != 6 {
		t.Errorf("TotalQuantity: got %d, want 6", got)
	}
	if got := len(c.SelectedItems()); got != 2 {
		t.Errorf("SelectedItems: got %d, want 2", got)
	}
	if got := c.TotalAmount(); math.Abs(got-20.1) > 1e-9 {
		t.Errorf("TotalAmount: got %v, want 20.1", got)
	}
	if c.AllSelected() {
		t.Error("AllSelected must be false while any item is unselected")
	}

	// Selecting the remaining item flips AllSelected.
	if err := c.ToggleSelected(context.Background(), 2, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !c.AllSelected() {
		t.Error("AllSelected must be true once every item is selected")
	}
}

func TestCartStore_AllSelectedFalseWhenEmpty(t *testing.T) {
	c := newCartFixture(mocks.NewMockGateway())
	if c.AllSelected() {
		t.Error("an empty cart is never all-selected")
	}
}

func TestCartStore_AddItemRefetches(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(item(1, 5, 10, 3, true)))
	}
	c := newCartFixture(gw)

	if err := c.AddItem(context.Background(), 5, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"POST /cart", "GET /cart"}
	if len(gw.Calls) != 2 || gw.Calls[0] != want[0] || gw.Calls[1] != want[1] {
		t.Fatalf("expected add then refetch, got %v", gw.Calls)
	}
	if got := c.TotalQuantity(); got != 3 {
		t.Errorf("TotalQuantity after add: got %d, want 3", got)
	}
}

func TestCartStore_AddItemFailedRefetchKeepsSnapshot(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(item(1, 5, 10, 1, true)))
	}
	c := newCartFixture(gw)
	if err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	// The add succeeds remotely but the follow-up refetch fails.
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.RejectWith(domain.KindServer, 500, 0, "server error")
	}
	if err := c.AddItem(context.Background(), 6, 1); err != nil {
		t.Fatalf("add itself succeeded remotely: %v", err)
	}

	items := c.Items()
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("cart must remain at the pre-add snapshot, got %v", items)
	}
}

func TestCartStore_FailedMutationLeavesStateUntouched(t *testing.T) {
	remoteErr := mocks.RejectWith(domain.KindValidation, 200, 400, "out of stock")

	tests := []struct {
		name   string
		mutate func(*CartStore) error
	}{
		{"updateQuantity", func(c *CartStore) error {
			return c.UpdateQuantity(context.Background(), 1, 99)
		}},
		{"toggleSelected", func(c *CartStore) error {
			return c.ToggleSelected(context.Background(), 1, false)
		}},
		{"toggleSelectAll", func(c *CartStore) error {
			return c.ToggleSelectAll(context.Background(), false)
		}},
		{"removeItem", func(c *CartStore) error {
			return c.RemoveItem(context.Background(), 1)
		}},
		{"removeSelected", func(c *CartStore) error {
			return c.RemoveSelected(context.Background())
		}},
		{"clear", func(c *CartStore) error {
			return c.Clear(context.Background())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewMockGateway()
			gw.GetFunc = func(ctx context.Context, path string, out any) error {
				return mocks.Resolve(out, cartOf(item(1, 5, 10, 2, true)))
			}
			c := newCartFixture(gw)
			if err := c.Fetch(context.Background()); err != nil {
				t.Fatalf("seed fetch: %v", err)
			}

			gw.PutFunc = func(ctx context.Context, path string, body, out any) error { return remoteErr }
			gw.DeleteFunc = func(ctx context.Context, path string, out any) error { return remoteErr }

			if err := tt.mutate(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected the remote rejection, got %v", err)
			}

			items := c.Items()
			if len(items) != 1 || items[0].Quantity != 2 || !items[0].Selected {
				t.Errorf("failed mutation must not patch local state, got %+v", items)
			}
		})
	}
}

func TestCartStore_ConfirmedMutationsPatchLocally(t *testing.T) {
	gw := mocks.NewMockGateway()
	gw.GetFunc = func(ctx context.Context, path string, out any) error {
		return mocks.Resolve(out, cartOf(
			item(1, 5, 10, 2, true),
			item(2, 6, 5, 1, true),
		))
	}
	c := newCartFixture(gw)
	ctx := context.Background()
	if err := c.Fetch(ctx); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	if err := c.UpdateQuantity(ctx, 1, 7); err != nil {
		t.Fatalf("updateQuantity: %v", err)
	}
	if got := c.TotalQuantity(); got != 8 {
		t.Errorf("TotalQuantity after update: got %d, want 8", got)
	}

	if err := c.ToggleSelectAll(ctx, false); err != nil {
		t.Fatalf("toggleSelectAll: %v", err)
	}
	if got := c.TotalAmount(); got != 0 {
		t.Errorf("TotalAmount with nothing selected: got %v, want 0", got)
	}

	if err := c.ToggleSelected(ctx, 2, true); err != nil {
		t.Fatalf("toggleSelected: %v", err)
	}
	if err := c.RemoveSelected(ctx); err != nil {
		t.Fatalf("removeSelected: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("removeSelected must drop only selected items, got %+v", items)
	}

	if err := c.RemoveItem(ctx, 1); err != nil {
		t.Fatalf("removeItem: %v", err)
	}
	if len(c.Items()) != 0 {
		t.Error("cart should be empty after removing the last item")
	}

	// The local mutations never triggered extra fetches.
	for _, call := range gw.Calls[1:] {
		if call == "GET /cart" {
			t.Errorf("unexpected refetch in %v", gw.Calls)
		}
	}
}
