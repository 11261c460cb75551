package api

import (
	"context"
	"fmt"

	"github.com/SeimoDev/LightShop/domain"
)

// CartAPI wraps the /cart endpoints.
type CartAPI struct {
	gw domain.Gateway
}

// Get fetches the full cart payload.
func (a *CartAPI) Get(ctx context.Context) (*domain.CartPayload, error) {
	var payload domain.CartPayload
	if err := a.gw.Get(ctx, "/cart", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Add puts a product into the cart. The server decides whether the line
// merges into an existing item or creates a new one.
func (a *CartAPI) Add(ctx context.Context, productID, quantity int) error {
	body := map[string]int{"productId": productID, "quantity": quantity}
	return a.gw.Post(ctx, "/cart", body, nil)
}

// UpdateQuantity sets one item's quantity.
func (a *CartAPI) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return a.gw.Put(ctx, fmt.Sprintf("/cart/%d", itemID), body, nil)
}

// UpdateSelected sets one item's selection flag.
func (a *CartAPI) UpdateSelected(ctx context.Context, itemID int, selected bool) error {
	body := map[string]bool{"selected": selected}
	return a.gw.Put(ctx, fmt.Sprintf("/cart/%d", itemID), body, nil)
}

// SelectAll sets every item's selection flag in one call.
func (a *CartAPI) SelectAll(ctx context.Context, selected bool) error {
	body := map[string]bool{"selected": selected}
	return a.gw.Put(ctx, "/cart/selectAll", body, nil)
}

// Delete removes one item.
func (a *CartAPI) Delete(ctx context.Context, itemID int) error {
	return a.gw.Delete(ctx, fmt.Sprintf("/cart/%d", itemID), nil)
}

// DeleteSelected removes every selected item.
func (a *CartAPI) DeleteSelected(ctx context.Context) error {
	return a.gw.Delete(ctx, "/cart/selected", nil)
}

// Clear empties the cart.
func (a *CartAPI) Clear(ctx context.Context) error {
	return a.gw.Delete(ctx, "/cart", nil)
}
