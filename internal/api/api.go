// Package api groups the typed endpoint wrappers of the LightShop backend.
// Every wrapper is a thin translation onto the gateway; no wrapper holds
// state or interprets failures beyond what the gateway already classified.
package api

import "github.com/SeimoDev/LightShop/domain"

// Set bundles the endpoint groups a frontend variant uses.
type Set struct {
	Auth      *AuthAPI
	Cart      *CartAPI
	Catalog   *CatalogAPI
	Orders    *OrderAPI
	Addresses *AddressAPI
	Favorites *FavoriteAPI
	Admin     *AdminAPI
}

// New builds the full wrapper set over one gateway.
func New(gw domain.Gateway) *Set {
	return &Set{
		Auth:      &AuthAPI{gw: gw},
		Cart:      &CartAPI{gw: gw},
		Catalog:   &CatalogAPI{gw: gw},
		Orders:    &OrderAPI{gw: gw},
		Addresses: &AddressAPI{gw: gw},
		Favorites: &FavoriteAPI{gw: gw},
		Admin:     &AdminAPI{gw: gw},
	}
}
