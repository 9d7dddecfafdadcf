// Package cli implements the familytree command-line interface.
//
// Commands edit the family stored in the configured backend (a JSON file
// by default, or redis, mongo or memory) and turn it into diagrams:
//
//   - member add|edit|delete|list|show: maintain people
//   - relate / unrelate: link spouses and parents, both sides at once
//   - import / export: replace or dump the whole family as JSON or YAML
//   - layout: compute the positioned diagram (JSON)
//   - render: draw the diagram as SVG, DOT, PNG, PDF or JSON
//   - generations: show the generation bands, optionally with the BFS trace
//   - cache, config, completion: housekeeping
//
// Settings come from pkg/config. All commands accept --verbose (-v) for
// debug logging and --config to point at another config file.
package cli

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/config"
	"github.com/matzehuels/familytree/pkg/pipeline"
	"github.com/matzehuels/familytree/pkg/store"
	mongostore "github.com/matzehuels/familytree/pkg/store/mongo"
	redisstore "github.com/matzehuels/familytree/pkg/store/redis"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the binary name used in help text and next-step hints.
const appName = "familytree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. The config and the repository
// are opened on first use and reused for the rest of the run.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location.
	ConfigPath string

	cfg  *config.Config
	repo store.Repository
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases the repository, if one was opened.
func (c *CLI) Close() error {
	if c.repo == nil {
		return nil
	}
	err := c.repo.Close()
	c.repo = nil
	return err
}

// config loads the configuration once.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Store Factory
// =============================================================================

// repository opens the configured store once.
func (c *CLI) repository(ctx context.Context) (store.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	backend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	repo, err := store.Open(ctx, backend, store.WithLogger(c.Logger))
	if err != nil {
		backend.Close()
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", cfg.Store.Backend, "members", countOrZero(ctx, repo))
	c.repo = repo
	return repo, nil
}

func openBackend(ctx context.Context, sc config.StoreConfig) (store.Backend, error) {
	switch sc.Backend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendRedis:
		return redisstore.New(ctx, redisstore.Config{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
			Prefix:   sc.Redis.Key,
		})
	case config.BackendMongo:
		return mongostore.New(ctx, mongostore.Config{
			URI:        sc.Mongo.URI,
			Database:   sc.Mongo.Database,
			Collection: sc.Mongo.Collection,
			DocumentID: sc.Mongo.Document,
		})
	default:
		return store.NewFileBackend(sc.Path), nil
	}
}

func countOrZero(ctx context.Context, repo store.Repository) int {
	members, err := repo.All(ctx)
	if err != nil {
		return 0
	}
	return len(members)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache opens the configured cache. A cache that cannot be opened
// disables caching with a warning instead of failing the command.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	var (
		ch  cache.Cache
		err error
	)
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		r := cfg.Store.Redis
		ch, err = cache.DialRedisCache(ctx, r.Addr, r.Password, r.DB, redisCachePrefix(r.Key))
	default:
		ch, err = cache.NewFileCache(cfg.Cache.Dir)
	}
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.WithTTL(ch, cfg.Cache.TTL), nil
}

func redisCachePrefix(key string) string {
	if key == "" {
		key = appName
	}
	return key + ":cache:"
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a lowercase
// slice without duplicates.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return formats
}

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")
