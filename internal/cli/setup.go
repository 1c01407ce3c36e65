package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/netintel/netintel/internal/config"
	"github.com/netintel/netintel/pkg/cache"
	"github.com/netintel/netintel/pkg/storage"
)

// loadConfig reads the application config for a command.
func loadConfig(flagValue string, logger *log.Logger) (config.Config, error) {
	path := resolveConfigPath(flagValue)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "path", path, "storage", cfg.Storage.Backend, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// openStore builds the persistence backend selected by the config.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	if strings.EqualFold(cfg.Backend, "mongo") {
		return storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.GraphName)
	}
	return storage.NewFileStore(cfg.DataFile), nil
}

// openCache builds the payload cache backend selected by the config.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.Prefix)
	case "file":
		return cache.NewFileCache(cfg.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// closeStore closes backends that hold connections.
func closeStore(ctx context.Context, s storage.Store) {
	if c, ok := s.(interface{ Close(context.Context) error }); ok {
		_ = c.Close(ctx)
	}
}
