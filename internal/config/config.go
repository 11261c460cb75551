package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Variant selects which frontend the client layer is serving.
type Variant string

const (
	VariantStorefront Variant = "storefront"
	VariantAdmin      Variant = "admin"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	// RateLimit caps outbound requests per second. 0 disables the limiter.
	RateLimit float64 `yaml:"rate_limit"`
}

type StorageConfig struct {
	// Backend is one of "file", "redis", "sqlite".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigFile struct {
	Variant string        `yaml:"variant"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	// LoginRoute is handed to the redirect hook on logout.
	LoginRoute string `yaml:"login_route"`
}

// Config is the resolved runtime configuration for one client variant.
type Config struct {
	Variant Variant
	BaseURL string
	Timeout time.Duration

	// StorageKeyPrefix keeps the storefront and admin sessions from
	// colliding when both run against the same durable storage.
	StorageKeyPrefix string

	// RequiredRole is the role a login response must carry, or -1 when any
	// role is accepted.
	RequiredRole int

	// AutoToast surfaces envelope-level (code != 200) failures through the
	// notifier. The admin console handles those inline instead.
	AutoToast bool

	LoginRoute string

	StorageBackend string
	StoragePath    string
	StorageDSN     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimit float64
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Storefront returns the storefront preset: 10s timeout, bare storage keys,
// automatic toasting of envelope failures, no role requirement.
func Storefront(baseURL string) *Config {
	return &Config{
		Variant:          VariantStorefront,
		BaseURL:          baseURL,
		Timeout:          10 * time.Second,
		StorageKeyPrefix: "",
		RequiredRole:     -1,
		AutoToast:        true,
		LoginRoute:       "/login",
		StorageBackend:   "file",
	}
}

// Admin returns the admin console preset: 15s timeout, admin_-prefixed
// storage keys, caller-handled envelope failures, admin role required.
func Admin(baseURL string) *Config {
	return &Config{
		Variant:          VariantAdmin,
		BaseURL:          baseURL,
		Timeout:          15 * time.Second,
		StorageKeyPrefix: "admin_",
		RequiredRole:     1,
		AutoToast:        false,
		LoginRoute:       "/login",
		StorageBackend:   "file",
	}
}

// Load reads a yaml config file and resolves it over the variant preset.
// Environment variables LIGHTSHOP_BASE_URL and LIGHTSHOP_VARIANT override
// the file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return resolve(&file)
}

func resolve(file *ConfigFile) (*Config, error) {
	variant := Variant(env("LIGHTSHOP_VARIANT", file.Variant))

	var cfg *Config
	switch variant {
	case VariantAdmin:
		cfg = Admin(file.API.BaseURL)
	case VariantStorefront, "":
		cfg = Storefront(file.API.BaseURL)
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	if v := env("LIGHTSHOP_BASE_URL", ""); v != "" {
		cfg.BaseURL = v
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}

	if file.API.Timeout != "" {
		d, err := time.ParseDuration(file.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api timeout: %w", err)
		}
		cfg.Timeout = d
	}
	cfg.RateLimit = file.API.RateLimit

	if file.Storage.Backend != "" {
		cfg.StorageBackend = file.Storage.Backend
	}
	cfg.StoragePath = file.Storage.Path
	cfg.StorageDSN = file.Storage.DSN

	cfg.RedisAddr = env("LIGHTSHOP_REDIS_ADDR", file.Redis.Addr)
	cfg.RedisPassword = file.Redis.Password
	cfg.RedisDB = file.Redis.DB

	if file.LoginRoute != "" {
		cfg.LoginRoute = file.LoginRoute
	}

	return cfg, nil
}
