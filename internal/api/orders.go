package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/SeimoDev/LightShop/domain"
)

// OrderAPI wraps the /orders endpoints.
type OrderAPI struct {
	gw domain.Gateway
}

// OrderQuery narrows an order listing.
type OrderQuery struct {
	Status   *int
	Page     int
	PageSize int
}

func (q OrderQuery) encode() string {
	v := url.Values{}
	if q.Status != nil {
		v.Set("status", strconv.Itoa(*q.Status))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// List fetches the caller's orders.
func (a *OrderAPI) List(ctx context.Context, q OrderQuery) (*domain.Page[domain.Order], error) {
	var page domain.Page[domain.Order]
	if err := a.gw.Get(ctx, "/orders"+q.encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Detail fetches one order by its order number.
func (a *OrderAPI) Detail(ctx context.Context, orderNo string) (*domain.Order, error) {
	var order domain.Order
	if err := a.gw.Get(ctx, "/orders/"+orderNo, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateRequest carries an order creation body.
type CreateRequest struct {
	AddressID int `json:"addressId"`
}

// Create places an order from the selected cart items.
func (a *OrderAPI) Create(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	var order domain.Order
	if err := a.gw.Post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Pay marks an order as paid.
func (a *OrderAPI) Pay(ctx context.Context, orderNo string) error {
	return a.gw.Put(ctx, "/orders/"+orderNo+"/pay", nil, nil)
}

// Cancel cancels an order.
func (a *OrderAPI) Cancel(ctx context.Context, orderNo string) error {
	return a.gw.Put(ctx, "/orders/"+orderNo+"/cancel", nil, nil)
}

// Confirm confirms delivery of an order.
func (a *OrderAPI) Confirm(ctx context.Context, orderNo string) error {
	return a.gw.Put(ctx, "/orders/"+orderNo+"/confirm", nil, nil)
}
