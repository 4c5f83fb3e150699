// Package config loads rackplan configuration from a TOML file with
// environment overrides.
//
// The file is looked up at --config or the XDG default
// (~/.config/rackplan/rackplan.toml) and every setting is optional:
// a missing file yields a working zero configuration where only the
// estimate source resolves specs. A .env file in the working directory
// is loaded first, then real environment variables win over the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
)

// appName is used for the XDG config and cache directories.
const appName = "rackplan"

// Config is the full rackplan configuration.
type Config struct {
	Arrange ArrangeConfig `toml:"arrange"`
	Split   SplitConfig   `toml:"split"`
	Catalog CatalogConfig `toml:"catalog"`
	AI      AIConfig      `toml:"ai"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// ArrangeConfig sets default arrangement parameters. Zero values defer
// to the engine defaults; proposals with detected enclosures still win
// over Capacity.
type ArrangeConfig struct {
	Project         string `toml:"project"`
	Capacity        int    `toml:"capacity"`
	Margin          int    `toml:"margin"`
	TopBuffer       int    `toml:"top_buffer"`
	BottomBuffer    int    `toml:"bottom_buffer"`
	VentInterval    int    `toml:"vent_interval"`
	UpgradeCapacity int    `toml:"upgrade_capacity"`
}

// SplitConfig extends the built-in AV/network keyword lists. Entries
// are appended, never replacing the defaults.
type SplitConfig struct {
	NetworkBrands []string `toml:"network_brands"`
	NetworkModels []string `toml:"network_models"`
	AVBrands      []string `toml:"av_brands"`
	AVModels      []string `toml:"av_models"`
}

// CatalogConfig names the catalog backends. A source is enabled by
// filling in its endpoint; all of them are optional.
type CatalogConfig struct {
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	PostgresURL     string `toml:"postgres_url"`
	CloudURL        string `toml:"cloud_url"`
	CloudAPIKey     string `toml:"cloud_api_key"`
}

// AIConfig configures spec inference. The API key normally comes from
// the OPENAI_API_KEY environment variable rather than the file.
type AIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// CacheConfig selects the spec cache backend: Redis when an address is
// set, files under Dir otherwise.
type CacheConfig struct {
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	Namespace     string `toml:"namespace"`
}

// ServerConfig configures the catalog/planning HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultAddr is the API listen address when none is configured.
const DefaultAddr = ":8080"

// Load reads the configuration file at path, or the default location
// when path is empty, then applies environment overrides. A missing
// default file is fine; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	// Matches the .env convention of the tooling this replaces.
	_ = godotenv.Load()

	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
		// Zero config is a supported setup.
	case os.IsNotExist(err):
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "config file not found: %s", path)
	default:
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the XDG location of the config file,
// ~/.config/rackplan/rackplan.toml.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "rackplan.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "rackplan.toml")
}

// DefaultCacheDir returns the XDG cache directory, ~/.cache/rackplan.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func (c *Config) applyEnv() {
	setEnv(&c.AI.APIKey, "OPENAI_API_KEY")
	setEnv(&c.Catalog.MongoURI, "RACKPLAN_MONGO_URI")
	setEnv(&c.Catalog.PostgresURL, "RACKPLAN_POSTGRES_URL")
	setEnv(&c.Catalog.CloudURL, "RACKPLAN_CATALOG_URL")
	setEnv(&c.Catalog.CloudAPIKey, "RACKPLAN_CATALOG_API_KEY")
	setEnv(&c.Cache.RedisAddr, "RACKPLAN_REDIS_ADDR")
	setEnv(&c.Cache.RedisPassword, "RACKPLAN_REDIS_PASSWORD")
	setEnv(&c.Cache.Dir, "RACKPLAN_CACHE_DIR")
	setEnv(&c.Server.Addr, "RACKPLAN_ADDR")
}

func setEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func (c *Config) validate() error {
	if c.Arrange.Capacity < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"arrange.capacity must be positive, got %d", c.Arrange.Capacity)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"arrange.margin", c.Arrange.Margin},
		{"arrange.top_buffer", c.Arrange.TopBuffer},
		{"arrange.bottom_buffer", c.Arrange.BottomBuffer},
		{"arrange.vent_interval", c.Arrange.VentInterval},
		{"arrange.upgrade_capacity", c.Arrange.UpgradeCapacity},
	} {
		if v.value < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig,
				"%s must be non-negative, got %d", v.name, v.value)
		}
	}
	return nil
}

// MongoConfigured reports whether the MongoDB catalog is enabled.
func (c *Config) MongoConfigured() bool { return c.Catalog.MongoURI != "" }

// PostgresConfigured reports whether the Postgres catalog is enabled.
func (c *Config) PostgresConfigured() bool { return c.Catalog.PostgresURL != "" }

// CloudConfigured reports whether the hosted catalog is enabled.
func (c *Config) CloudConfigured() bool { return c.Catalog.CloudURL != "" }

// AIConfigured reports whether AI inference is enabled.
func (c *Config) AIConfigured() bool { return c.AI.APIKey != "" }

// RedisConfigured reports whether the spec cache uses Redis.
func (c *Config) RedisConfigured() bool { return c.Cache.RedisAddr != "" }

// Addr returns the configured API listen address or [DefaultAddr].
func (c *Config) Addr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return DefaultAddr
}
