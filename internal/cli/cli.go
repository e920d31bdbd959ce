package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/config"
	"github.com/matzehuels/prettymarkup/pkg/httputil"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "prettymarkup"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs. Commands may rely on it
	// being non-nil.
	Config *config.Config

	// configPath overrides the config file location (--config).
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file. --config wins over the default
// locations.
func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromPath(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.keyer(), c.Logger), nil
}

// keyer scopes cache keys when the redis section names a prefix.
func (c *CLI) keyer() cache.Keyer {
	if p := c.Config.Cache.Redis.Prefix; p != "" {
		return cache.NewScopedKeyer(nil, p)
	}
	return nil
}

// newCache picks the cache backend: none, redis when an address is
// configured, otherwise the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if redisCfg := c.Config.CacheRedis(); redisCfg.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", redisCfg.Addr)
		return rc, nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// newFetcher creates a fetcher for pages named on the command line. It
// shares the runner's cache and key scheme.
func newFetcher(r *pipeline.Runner) *httputil.Fetcher {
	return httputil.NewFetcher(r.Cache, httputil.WithKeyer(r.Keyer))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/prettymarkup/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyFlags copies flag values into opts, then fills what flags left unset
// from the config file. Flags the user did not pass never override config.
func (c *CLI) applyFlags(cmd *cobra.Command, opts *pipeline.Options, f *renderFlags) error {
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	opts.BaseURL = f.base
	opts.Seed = f.seed
	opts.Palette = f.palette
	opts.IDRows = f.idRows
	opts.FullIRIs = f.fullIRIs
	opts.Refresh = f.refresh

	target, err := f.target()
	if err != nil {
		return err
	}
	opts.Target = target

	c.Config.Apply(opts)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
