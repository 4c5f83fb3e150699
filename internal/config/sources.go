package config

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/racklabs/rackplan/pkg/cache"
	"github.com/racklabs/rackplan/pkg/catalog"
	"github.com/racklabs/rackplan/pkg/httputil"
	"github.com/racklabs/rackplan/pkg/pipeline"
	"github.com/racklabs/rackplan/pkg/rack"
)

// Sources assembles the catalog source chain from the configuration.
// A backend that fails to initialize is logged and skipped, so a downed
// catalog degrades resolution instead of breaking the run. The estimate
// source is always present.
func (c *Config) Sources(ctx context.Context, logger *log.Logger) pipeline.Sources {
	s := pipeline.Sources{Estimate: catalog.NewEstimateSource()}

	if c.MongoConfigured() {
		src, err := catalog.NewMongoSource(ctx, catalog.MongoOptions{
			URI:        c.Catalog.MongoURI,
			Database:   c.Catalog.MongoDatabase,
			Collection: c.Catalog.MongoCollection,
		})
		if err != nil {
			logger.Warn("mongodb catalog unavailable", "err", err)
		} else {
			s.Local = src
		}
	}

	if c.PostgresConfigured() {
		src, err := catalog.NewPostgresSource(ctx, c.Catalog.PostgresURL)
		if err != nil {
			logger.Warn("postgres catalog unavailable", "err", err)
		} else {
			s.Remote = src
		}
	}

	if c.CloudConfigured() {
		responseCache, err := httputil.NewCache(c.Cache.Dir, cache.TTLResponse)
		if err != nil {
			logger.Warn("response cache unavailable", "err", err)
			responseCache = nil
		}
		var headers map[string]string
		if c.Catalog.CloudAPIKey != "" {
			headers = map[string]string{"Authorization": "Bearer " + c.Catalog.CloudAPIKey}
		}
		s.Cloud = catalog.NewCloudSource(catalog.CloudOptions{
			BaseURL: c.Catalog.CloudURL,
			Cache:   responseCache,
			Headers: headers,
		})
	}

	if c.AIConfigured() {
		s.AI = catalog.NewAISource(catalog.AIOptions{
			APIKey: c.AI.APIKey,
			Model:  c.AI.Model,
		})
	}

	return s
}

// SpecCache builds the resolved-spec cache: Redis when configured,
// files otherwise. noCache selects the null cache, disabling caching
// for the run without touching the stored entries.
func (c *Config) SpecCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.RedisConfigured() {
		return cache.NewRedisCache(cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
		}), nil
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// Keyer builds the cache key scheme, scoped to the configured namespace
// when one is set. Namespaces keep several installations from sharing
// entries in one Redis instance.
func (c *Config) Keyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if c.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Cache.Namespace+":")
	}
	return keyer
}

// Splitter returns the AV/network classifier with any configured
// keywords appended to the built-in lists, or nil when the
// configuration adds nothing.
func (c *Config) Splitter() *rack.Splitter {
	if len(c.Split.NetworkBrands) == 0 && len(c.Split.NetworkModels) == 0 &&
		len(c.Split.AVBrands) == 0 && len(c.Split.AVModels) == 0 {
		return nil
	}
	s := rack.NewSplitter()
	s.NetworkBrands = append(s.NetworkBrands, c.Split.NetworkBrands...)
	s.NetworkModels = append(s.NetworkModels, c.Split.NetworkModels...)
	s.AVBrands = append(s.AVBrands, c.Split.AVBrands...)
	s.AVModels = append(s.AVModels, c.Split.AVModels...)
	return s
}

// Options returns pipeline options seeded with the configured arrange
// defaults. Flags and request fields override these afterwards.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Project:         c.Arrange.Project,
		Capacity:        c.Arrange.Capacity,
		Margin:          c.Arrange.Margin,
		TopBuffer:       c.Arrange.TopBuffer,
		BottomBuffer:    c.Arrange.BottomBuffer,
		VentInterval:    c.Arrange.VentInterval,
		UpgradeCapacity: c.Arrange.UpgradeCapacity,
	}
}
