// Package config loads the familytree settings.
//
// Sources, later ones overriding earlier ones:
//  1. [Default]
//  2. the TOML file (default $XDG_CONFIG_HOME/familytree/config.toml)
//  3. a .env file in the working directory
//  4. FAMILYTREE_* environment variables
//
// A missing config file is not an error; unknown keys in an existing file
// are.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/layout"
)

// AppName names the XDG directories.
const AppName = "familytree"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Environment variables read by [ApplyEnv].
const (
	EnvConfig        = "FAMILYTREE_CONFIG"
	EnvStore         = "FAMILYTREE_STORE"
	EnvStorePath     = "FAMILYTREE_STORE_PATH"
	EnvRedisAddr     = "FAMILYTREE_REDIS_ADDR"
	EnvRedisPassword = "FAMILYTREE_REDIS_PASSWORD"
	EnvRedisDB       = "FAMILYTREE_REDIS_DB"
	EnvMongoURI      = "FAMILYTREE_MONGO_URI"
	EnvMongoDatabase = "FAMILYTREE_MONGO_DATABASE"
	EnvCache         = "FAMILYTREE_CACHE"
	EnvCacheDir      = "FAMILYTREE_CACHE_DIR"
)

// Config is the complete application configuration.
type Config struct {
	Store  StoreConfig   `toml:"store"`
	Layout layout.Config `toml:"layout"`
	Cache  CacheConfig   `toml:"cache"`
}

// StoreConfig selects and configures the member store backend.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Path    string      `toml:"path"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig is shared by the redis store and the redis cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// MongoConfig configures the mongo store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Document   string `toml:"document"`
}

// CacheConfig configures the diagram and artifact cache.
type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// Default returns a configuration that works without any file: a JSON
// file store under the XDG data dir and a file cache.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    filepath.Join(DataDir(), "family.json"),
			Redis:   RedisConfig{Addr: "localhost:6379", Key: AppName},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: AppName},
		},
		Layout: layout.DefaultConfig(),
		Cache: CacheConfig{
			Enabled: true,
			Backend: CacheFile,
			Dir:     CacheDir(),
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// Load reads the config file at path (or [Path] when empty), then the
// .env file and the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	if err := cfg.decodeFile(path); err != nil {
		return Config{}, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] without consulting the
// environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md, "config"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return checkUndecoded(md, path)
}

func checkUndecoded(md toml.MetaData, source string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", source, strings.Join(keys, ", "))
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables that are already set win. Missing files are
// skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}
	return nil
}

// ApplyEnv overrides fields from FAMILYTREE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvStore, &c.Store.Backend)
	str(EnvStorePath, &c.Store.Path)
	str(EnvRedisAddr, &c.Store.Redis.Addr)
	str(EnvRedisPassword, &c.Store.Redis.Password)
	str(EnvMongoURI, &c.Store.Mongo.URI)
	str(EnvMongoDatabase, &c.Store.Mongo.Database)
	str(EnvCacheDir, &c.Cache.Dir)

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s must be an integer", EnvRedisDB)
		}
		c.Store.Redis.DB = db
	}
	if v, ok := lookup(EnvCache); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s must be a boolean", EnvCache)
		}
		c.Cache.Enabled = enabled
	}
	return nil
}

// Validate checks that the selected backends are fully configured.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.path is required for the file backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis.addr is required for the redis backend")
		}
	case BackendMongo:
		if err := errors.ValidateURI(c.Store.Mongo.URI, "mongodb", "mongodb+srv"); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo.uri: %s", errors.UserMessage(err))
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend must be one of %s, got %q",
			strings.Join(Backends(), ", "), c.Store.Backend)
	}

	if c.Cache.Enabled {
		if !slices.Contains([]string{CacheFile, CacheRedis}, c.Cache.Backend) {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file or redis, got %q", c.Cache.Backend)
		}
		if c.Cache.Backend == CacheFile && c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file cache")
		}
		if c.Cache.Backend == CacheRedis && c.Store.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis.addr is required for the redis cache")
		}
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}

	return c.Layout.Validate()
}

// Backends lists the supported store backends.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}
}

// Encode writes c as TOML, for `config show`.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
