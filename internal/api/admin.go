package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SeimoDev/LightShop/domain"
)

// AdminAPI wraps the /admin endpoints used by the admin console.
type AdminAPI struct {
	gw domain.Gateway
}

// Dashboard fetches the summary statistics.
func (a *AdminAPI) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := a.gw.Get(ctx, "/admin/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Products lists the catalog with admin visibility (all statuses).
func (a *AdminAPI) Products(ctx context.Context, q ProductQuery) (*domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	if err := a.gw.Get(ctx, "/admin/products"+q.encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateProduct adds a catalog entry.
func (a *AdminAPI) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := a.gw.Post(ctx, "/admin/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct mutates a catalog entry.
func (a *AdminAPI) UpdateProduct(ctx context.Context, id int, p domain.Product) error {
	return a.gw.Put(ctx, fmt.Sprintf("/admin/products/%d", id), p, nil)
}

// DeleteProduct removes a catalog entry.
func (a *AdminAPI) DeleteProduct(ctx context.Context, id int) error {
	return a.gw.Delete(ctx, fmt.Sprintf("/admin/products/%d", id), nil)
}

// Orders lists all orders.
func (a *AdminAPI) Orders(ctx context.Context, q OrderQuery) (*domain.Page[domain.Order], error) {
	var page domain.Page[domain.Order]
	if err := a.gw.Get(ctx, "/admin/orders"+q.encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ShipOrder marks an order as shipped.
func (a *AdminAPI) ShipOrder(ctx context.Context, orderNo string) error {
	return a.gw.Put(ctx, "/admin/orders/"+orderNo+"/ship", nil, nil)
}

// RefundOrder refunds an order.
func (a *AdminAPI) RefundOrder(ctx context.Context, orderNo string) error {
	return a.gw.Put(ctx, "/admin/orders/"+orderNo+"/refund", nil, nil)
}

// Users lists registered users.
func (a *AdminAPI) Users(ctx context.Context, keyword string, page, pageSize int) (*domain.Page[domain.User], error) {
	v := url.Values{}
	if keyword != "" {
		v.Set("keyword", keyword)
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
	path := "/admin/users"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var result domain.Page[domain.User]
	if err := a.gw.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUser mutates a user record (role, status).
func (a *AdminAPI) UpdateUser(ctx context.Context, id int, u domain.User) error {
	return a.gw.Put(ctx, fmt.Sprintf("/admin/users/%d", id), u, nil)
}
