// Package app wires the client data layer together.
package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/api"
	"github.com/SeimoDev/LightShop/internal/config"
	"github.com/SeimoDev/LightShop/internal/gateway"
	"github.com/SeimoDev/LightShop/internal/infrastructure/storage"
	"github.com/SeimoDev/LightShop/internal/infrastructure/token"
	"github.com/SeimoDev/LightShop/internal/stores"
)

// Container holds all dependencies of one client variant.
type Container struct {
	Config  *config.Config
	Storage domain.Storage

	Gateway *gateway.Client
	API     *api.Set

	Toasts  *stores.ToastStore
	Session *stores.SessionStore
	Cart    *stores.CartStore

	redisClient *redis.Client
}

// Option adjusts container construction.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	redirect func(route string)
	registry prometheus.Registerer
	storage  domain.Storage
}

// WithLogger sets the structured logger for every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRedirect sets the router hook invoked on logout.
func WithRedirect(fn func(route string)) Option {
	return func(o *options) { o.redirect = fn }
}

// WithMetricsRegistry enables gateway metrics on the given registry.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// WithStorage overrides the configured storage backend, mainly for tests.
func WithStorage(s domain.Storage) Option {
	return func(o *options) { o.storage = s }
}

// NewContainer builds and wires all dependencies. The session/gateway cycle
// is broken by constructing the gateway first and late-binding the session
// store's token accessor and teardown hook onto it.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	c := &Container{Config: cfg}

	if err := c.initStorage(&o); err != nil {
		return nil, err
	}
	c.initStores(&o)
	return c, nil
}

func (c *Container) initStorage(o *options) error {
	if o.storage != nil {
		c.Storage = o.storage
		return nil
	}

	switch c.Config.StorageBackend {
	case "file", "":
		path := c.Config.StoragePath
		if path == "" {
			path = "lightshop_state.json"
		}
		fs, err := storage.NewFileStore(path)
		if err != nil {
			return fmt.Errorf("init file storage: %w", err)
		}
		c.Storage = fs
	case "sqlite":
		gs, err := storage.OpenSQLite(c.Config.StorageDSN)
		if err != nil {
			return fmt.Errorf("init sqlite storage: %w", err)
		}
		c.Storage = gs
	case "redis":
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		c.Storage = storage.NewRedisStore(c.redisClient, "lightshop:")
	default:
		return fmt.Errorf("unknown storage backend %q", c.Config.StorageBackend)
	}
	return nil
}

func (c *Container) initStores(o *options) {
	c.Toasts = stores.NewToastStore()

	gwOpts := []gateway.Option{
		gateway.WithNotifier(c.Toasts),
		gateway.WithLogger(o.logger),
	}
	if o.registry != nil {
		gwOpts = append(gwOpts, gateway.WithMetrics(gateway.NewCollector(o.registry)))
	}
	c.Gateway = gateway.New(c.Config, gwOpts...)
	c.API = api.New(c.Gateway)

	sessOpts := []stores.SessionOption{
		stores.WithSessionLogger(o.logger),
		stores.WithTokenInspector(token.NewInspector()),
	}
	if o.redirect != nil {
		sessOpts = append(sessOpts, stores.WithRedirect(o.redirect))
	}
	c.Session = stores.NewSessionStore(c.Config, c.Storage, sessOpts...)
	c.Session.BindAuth(c.API.Auth)

	// Close the loop: the gateway reads the token per request and tears the
	// session down on 401.
	c.Gateway.BindSession(c.Session, c.Session.HandleUnauthorized)

	c.Cart = stores.NewCartStore(c.API.Cart, o.logger)
}

// Close releases any held connections.
func (c *Container) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
