package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SeimoDev/LightShop/domain"
)

// CatalogAPI wraps the product, category and banner read endpoints.
type CatalogAPI struct {
	gw domain.Gateway
}

// ProductQuery narrows a product listing.
type ProductQuery struct {
	Keyword    string
	CategoryID int
	Page       int
	PageSize   int
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.Itoa(q.CategoryID))
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

// Products lists the catalog.
func (a *CatalogAPI) Products(ctx context.Context, q ProductQuery) (*domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	if err := a.gw.Get(ctx, "/products"+q.encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches one product.
func (a *CatalogAPI) Product(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	if err := a.gw.Get(ctx, fmt.Sprintf("/products/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Hot lists best-selling products.
func (a *CatalogAPI) Hot(ctx context.Context, limit int) ([]domain.Product, error) {
	return a.shelf(ctx, "/products/hot", limit)
}

// New lists recently added products.
func (a *CatalogAPI) New(ctx context.Context, limit int) ([]domain.Product, error) {
	return a.shelf(ctx, "/products/new", limit)
}

// Recommend lists recommended products.
func (a *CatalogAPI) Recommend(ctx context.Context, limit int) ([]domain.Product, error) {
	return a.shelf(ctx, "/products/recommend", limit)
}

func (a *CatalogAPI) shelf(ctx context.Context, path string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	var products []domain.Product
	if err := a.gw.Get(ctx, fmt.Sprintf("%s?limit=%d", path, limit), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists all categories.
func (a *CatalogAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := a.gw.Get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
