package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jverdier/coursemap/pkg/share"
	"github.com/jverdier/coursemap/pkg/store"
)

// defaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const defaultConfigFile = "coursemap.toml"

// Config is the serve/share configuration read from coursemap.toml.
// Flags override individual values; a missing file means defaults.
type Config struct {
	// Addr is the listen address of the share server.
	Addr string `toml:"addr"`

	// BaseURL is the public base URL embedded in issued share links.
	BaseURL string `toml:"base_url"`

	// ShareTTL is the share link lifetime as a Go duration string,
	// e.g. "168h". Empty means the built-in default.
	ShareTTL string `toml:"share_ttl"`

	Store  StoreConfig  `toml:"store"`
	Shares SharesConfig `toml:"shares"`
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", "mongo".
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SharesConfig selects the share link store backend.
type SharesConfig struct {
	// Backend is one of "memory", "file", "redis".
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// defaultConfig returns the configuration used when no file is present:
// file-backed documents and shares under the working directory.
func defaultConfig() Config {
	return Config{
		Addr: ":8080",
		Store: StoreConfig{
			Backend: "file",
			Dir:     "documents",
		},
		Shares: SharesConfig{
			Backend: "file",
			Dir:     "shares",
		},
	}
}

// loadConfig reads the config file at path. An empty path falls back to
// coursemap.toml in the working directory; if that does not exist the
// defaults are returned.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// shareTTL parses the configured share link lifetime.
// Zero means the manager's built-in default.
func (c Config) shareTTL() (time.Duration, error) {
	if c.ShareTTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.ShareTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid share_ttl %q: %w", c.ShareTTL, err)
	}
	return ttl, nil
}

// openStore creates the configured document store backend.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file", "":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', or 'mongo')", cfg.Backend)
	}
}

// openShareStore creates the configured share link store backend.
func openShareStore(ctx context.Context, cfg SharesConfig) (share.Store, error) {
	switch cfg.Backend {
	case "memory":
		return share.NewMemoryStore(), nil
	case "file", "":
		return share.NewFileStore(cfg.Dir)
	case "redis":
		return share.NewRedisStore(ctx, share.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown shares backend: %s (must be 'memory', 'file', or 'redis')", cfg.Backend)
	}
}

// newShareManager builds a share manager from the config.
func newShareManager(cfg Config, st share.Store) (*share.Manager, error) {
	ttl, err := cfg.shareTTL()
	if err != nil {
		return nil, err
	}
	var opts []share.Option
	if ttl > 0 {
		opts = append(opts, share.WithTTL(ttl))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, share.WithBaseURL(cfg.BaseURL))
	}
	return share.NewManager(st, opts...), nil
}
