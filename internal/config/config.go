// Package config loads application configuration from a TOML file.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/netintel/netintel/pkg/errors"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Render  RenderConfig  `toml:"render"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig selects and configures the graph persistence backend.
type StorageConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`

	// File backend.
	DataFile string `toml:"data_file"`

	// Mongo backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	GraphName       string `toml:"graph_name"`
}

// CacheConfig selects and configures the payload cache backend.
type CacheConfig struct {
	// Backend is "null", "file" or "redis".
	Backend string `toml:"backend"`

	// File backend.
	Dir string `toml:"dir"`

	// Redis backend.
	RedisAddr string `toml:"redis_addr"`
	Prefix    string `toml:"prefix"`
}

// RenderConfig points at the visualization style file.
type RenderConfig struct {
	StyleFile string `toml:"style_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Backend:         "file",
			DataFile:        "data/graph.json",
			MongoDatabase:   "netintel",
			MongoCollection: "graphs",
			GraphName:       "default",
		},
		Cache: CacheConfig{
			Backend:   "null",
			Dir:       "data/cache",
			RedisAddr: "localhost:6379",
			Prefix:    "netintel",
		},
		Render: RenderConfig{StyleFile: "config.json"},
	}
}

// Load reads a TOML config file, overlaying values on [Default]. A missing
// file is not an error; a malformed or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend selectors and required fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "file":
		if c.Storage.DataFile == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "storage.data_file is required for the file backend")
		}
	case "mongo":
		if c.Storage.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "storage.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown storage backend %q", c.Storage.Backend)
	}

	switch strings.ToLower(c.Cache.Backend) {
	case "null", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}
