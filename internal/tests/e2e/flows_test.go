package e2e

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
	"github.com/SeimoDev/LightShop/internal/app"
	"github.com/SeimoDev/LightShop/internal/config"
	"github.com/SeimoDev/LightShop/internal/gateway"
	"github.com/SeimoDev/LightShop/internal/mocks"
)

func newStorefront(t *testing.T, backend *FakeBackend, storage domain.Storage, opts ...app.Option) *app.Container {
	t.Helper()
	opts = append([]app.Option{app.WithStorage(storage)}, opts...)
	c, err := app.NewContainer(config.Storefront(backend.URL()), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func toastMessages(c *app.Container) []string {
	var out []string
	for _, toast := range c.Toasts.Messages() {
		out = append(out, toast.Message)
	}
	return out
}

func TestStorefrontLoginAndCartFlow(t *testing.T) {
	backend := NewFakeBackend(Fixture(1, "alice", "secret123", domain.RoleUser))
	defer backend.Close()
	backend.AddProduct(domain.Product{ID: 10, Name: "Lamp", Price: 19.9, Stock: 5, Status: 1})
	backend.AddProduct(domain.Product{ID: 11, Name: "Desk", Price: 120, Stock: 2, Status: 1})

	storage := mocks.NewMockStorage()
	c := newStorefront(t, backend, storage)
	ctx := context.Background()

	require.Error(t, c.Session.Login(ctx, domain.Credentials{Username: "alice", Password: "wrong"}))
	assert.False(t, c.Session.IsAuthenticated())

	require.NoError(t, c.Session.Login(ctx, domain.Credentials{Username: "alice", Password: "secret123"}))
	require.True(t, c.Session.IsAuthenticated())
	assert.Equal(t, "alice", c.Session.CurrentUser().Username)
	assert.True(t, storage.Contains("token"))
	assert.True(t, storage.Contains("user"))

	expiry, ok := c.Session.TokenExpiresAt()
	require.True(t, ok)
	assert.True(t, expiry.After(time.Now()))

	require.NoError(t, c.Cart.AddItem(ctx, 10, 2))
	require.NoError(t, c.Cart.AddItem(ctx, 11, 1))
	require.Len(t, c.Cart.Items(), 2)
	assert.Equal(t, 3, c.Cart.TotalQuantity())
	assert.InDelta(t, 2*19.9+120, c.Cart.TotalAmount(), 0.001)
	assert.True(t, c.Cart.AllSelected())

	// Adding the same product again merges server-side into one line.
	require.NoError(t, c.Cart.AddItem(ctx, 10, 1))
	require.Len(t, c.Cart.Items(), 2)
	assert.Equal(t, 4, c.Cart.TotalQuantity())

	lamp := c.Cart.Items()[0]
	require.NoError(t, c.Cart.UpdateQuantity(ctx, lamp.ID, 1))
	assert.Equal(t, 2, c.Cart.TotalQuantity())

	require.NoError(t, c.Cart.ToggleSelected(ctx, lamp.ID, false))
	assert.False(t, c.Cart.AllSelected())
	assert.InDelta(t, 120, c.Cart.TotalAmount(), 0.001)

	require.NoError(t, c.Cart.RemoveSelected(ctx))
	require.Len(t, c.Cart.Items(), 1)
	assert.Equal(t, lamp.ID, c.Cart.Items()[0].ID)
	require.Len(t, backend.CartOf(1), 1)

	c.Session.Logout(ctx)
	assert.False(t, c.Session.IsAuthenticated())
	assert.False(t, storage.Contains("token"))
	assert.False(t, storage.Contains("user"))
}

func TestRegisterThenRehydrate(t *testing.T) {
	backend := NewFakeBackend()
	defer backend.Close()
	storage := mocks.NewMockStorage()
	ctx := context.Background()

	first := newStorefront(t, backend, storage)
	require.NoError(t, first.Session.Register(ctx, domain.Registration{
		Username: "bob", Password: "hunter22", Email: "bob@example.com",
	}))
	require.True(t, first.Session.IsAuthenticated())

	// A fresh container over the same storage comes up already logged in.
	second := newStorefront(t, backend, storage)
	require.True(t, second.Session.IsAuthenticated())
	assert.Equal(t, "bob", second.Session.CurrentUser().Username)
	assert.Equal(t, first.Session.Token(), second.Session.Token())

	require.NoError(t, second.Session.FetchProfile(ctx))
	assert.Equal(t, "bob@example.com", second.Session.CurrentUser().Email)
}

func TestStaleTokenTearsSessionDown(t *testing.T) {
	backend := NewFakeBackend(Fixture(1, "alice", "secret123", domain.RoleUser))
	defer backend.Close()

	storage := mocks.NewMockStorage()
	storage.Seed("token", "not-a-real-jwt")
	storage.Seed("user", `{"id":1,"username":"alice","role":0}`)

	var route string
	c := newStorefront(t, backend, storage, app.WithRedirect(func(r string) { route = r }))
	require.True(t, c.Session.IsAuthenticated(), "rehydration trusts stored state until the server says otherwise")

	err := c.Session.FetchProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	assert.False(t, c.Session.IsAuthenticated())
	assert.Nil(t, c.Session.CurrentUser())
	assert.False(t, storage.Contains("token"))
	assert.Equal(t, c.Config.LoginRoute, route)
	assert.Contains(t, toastMessages(c), gateway.MsgSessionExpired)
}

func TestAdminRoleGuard(t *testing.T) {
	backend := NewFakeBackend(
		Fixture(1, "alice", "secret123", domain.RoleUser),
		Fixture(2, "root", "adminpass", domain.RoleAdmin),
	)
	defer backend.Close()

	storage := mocks.NewMockStorage()
	c, err := app.NewContainer(config.Admin(backend.URL()), app.WithStorage(storage))
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	err = c.Session.Login(ctx, domain.Credentials{Username: "alice", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoAdminAccess))
	assert.False(t, c.Session.IsAuthenticated())
	assert.False(t, storage.Contains("admin_token"), "rejected login must leave nothing behind")
	assert.False(t, storage.Contains("admin_user"))

	require.NoError(t, c.Session.Login(ctx, domain.Credentials{Username: "root", Password: "adminpass"}))
	assert.True(t, c.Session.IsPrivileged())
	assert.True(t, storage.Contains("admin_token"))
}

func TestAddItemKeepsSnapshotWhenRefetchFails(t *testing.T) {
	backend := NewFakeBackend(Fixture(1, "alice", "secret123", domain.RoleUser))
	defer backend.Close()
	backend.AddProduct(domain.Product{ID: 10, Name: "Lamp", Price: 19.9, Stock: 5, Status: 1})

	c := newStorefront(t, backend, mocks.NewMockStorage())
	ctx := context.Background()
	require.NoError(t, c.Session.Login(ctx, domain.Credentials{Username: "alice", Password: "secret123"}))
	require.NoError(t, c.Cart.AddItem(ctx, 10, 1))
	require.Len(t, c.Cart.Items(), 1)

	backend.FailNextCartGet()
	require.NoError(t, c.Cart.AddItem(ctx, 10, 2), "the add itself succeeded")
	assert.Equal(t, 1, c.Cart.TotalQuantity(), "view keeps the last confirmed snapshot")

	// The server took the add; the next successful fetch reconciles.
	require.NoError(t, c.Cart.Fetch(ctx))
	assert.Equal(t, 3, c.Cart.TotalQuantity())
}

func TestCatalogListing(t *testing.T) {
	backend := NewFakeBackend()
	defer backend.Close()
	backend.AddProduct(domain.Product{ID: 10, Name: "Lamp", Price: 19.9, Status: 1})
	backend.AddProduct(domain.Product{ID: 11, Name: "Desk", Price: 120, Status: 1})

	c := newStorefront(t, backend, mocks.NewMockStorage())
	page, err := c.API.Catalog.Products(context.Background(), api.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.List, 2)
}
