package api

import (
	"context"
	"fmt"

	"github.com/SeimoDev/LightShop/domain"
)

// AddressAPI wraps the /addresses endpoints.
type AddressAPI struct {
	gw domain.Gateway
}

// List fetches the caller's addresses.
func (a *AddressAPI) List(ctx context.Context) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := a.gw.Get(ctx, "/addresses", &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Default fetches the default address.
func (a *AddressAPI) Default(ctx context.Context) (*domain.Address, error) {
	var addr domain.Address
	if err := a.gw.Get(ctx, "/addresses/default", &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// Detail fetches one address.
func (a *AddressAPI) Detail(ctx context.Context, id int) (*domain.Address, error) {
	var addr domain.Address
	if err := a.gw.Get(ctx, fmt.Sprintf("/addresses/%d", id), &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// Create stores a new address.
func (a *AddressAPI) Create(ctx context.Context, addr domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := a.gw.Post(ctx, "/addresses", addr, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update mutates an address.
func (a *AddressAPI) Update(ctx context.Context, id int, addr domain.Address) error {
	return a.gw.Put(ctx, fmt.Sprintf("/addresses/%d", id), addr, nil)
}

// Delete removes an address.
func (a *AddressAPI) Delete(ctx context.Context, id int) error {
	return a.gw.Delete(ctx, fmt.Sprintf("/addresses/%d", id), nil)
}

// SetDefault marks an address as the default.
func (a *AddressAPI) SetDefault(ctx context.Context, id int) error {
	return a.gw.Put(ctx, fmt.Sprintf("/addresses/%d/default", id), nil, nil)
}
