package api

import (
	"context"
	"fmt"

	"github.com/SeimoDev/LightShop/domain"
)

// FavoriteAPI wraps the /favorites endpoints.
type FavoriteAPI struct {
	gw domain.Gateway
}

// List fetches the caller's favorites.
func (a *FavoriteAPI) List(ctx context.Context, page, pageSize int) (*domain.Page[domain.Favorite], error) {
	path := "/favorites"
	if page > 0 {
		path = fmt.Sprintf("/favorites?page=%d&pageSize=%d", page, pageSize)
	}
	var result domain.Page[domain.Favorite]
	if err := a.gw.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Toggle flips the favorite state of a product and reports the new state.
func (a *FavoriteAPI) Toggle(ctx context.Context, productID int) (bool, error) {
	body := map[string]int{"productId": productID}
	var result struct {
		Favorited bool `json:"favorited"`
	}
	if err := a.gw.Post(ctx, "/favorites", body, &result); err != nil {
		return false, err
	}
	return result.Favorited, nil
}

// Check reports whether a product is favorited.
func (a *FavoriteAPI) Check(ctx context.Context, productID int) (bool, error) {
	var result struct {
		Favorited bool `json:"favorited"`
	}
	if err := a.gw.Get(ctx, fmt.Sprintf("/favorites/check/%d", productID), &result); err != nil {
		return false, err
	}
	return result.Favorited, nil
}

// Remove unfavorites a product.
func (a *FavoriteAPI) Remove(ctx context.Context, productID int) error {
	return a.gw.Delete(ctx, fmt.Sprintf("/favorites/%d", productID), nil)
}
