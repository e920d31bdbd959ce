// Package config loads prettymarkup's configuration file.
//
// The file lives at ~/.config/prettymarkup/config.toml (or config.yaml) and
// supplies defaults for render flags, the cache backend and the HTTP server.
// Explicit command-line flags always win over file values.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/prettymarkup/pkg/cache"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
)

// Environment variables that override file values.
const (
	EnvConfig        = "PRETTYMARKUP_CONFIG"
	EnvRedisAddr     = "PRETTYMARKUP_REDIS_ADDR"
	EnvRedisPassword = "PRETTYMARKUP_REDIS_PASSWORD"
)

// DefaultAddr is the default listen address of the HTTP server.
const DefaultAddr = ":8080"

// FileNames are the config file names searched in [Dir], in order.
var FileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds all prettymarkup configuration.
type Config struct {
	Render RenderConfig `toml:"render" yaml:"render"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats  []string `toml:"formats" yaml:"formats"`
	BaseURL  string   `toml:"base_url" yaml:"base_url"`
	Seed     uint64   `toml:"seed" yaml:"seed"`
	Palette  bool     `toml:"palette" yaml:"palette"`
	IDRows   bool     `toml:"id_rows" yaml:"id_rows"`
	FullIRIs bool     `toml:"full_iris" yaml:"full_iris"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Disabled bool        `toml:"disabled" yaml:"disabled"`
	Dir      string      `toml:"dir" yaml:"dir"`
	Redis    RedisConfig `toml:"redis" yaml:"redis"`
}

// RedisConfig configures the redis backend. An empty Addr selects the file
// cache.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`

	// Prefix scopes every key so several deployments can share one server.
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// ServerConfig configures `prettymarkup serve`.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`

	// ContextHosts lists hosts documents may load remote JSON-LD contexts
	// from. Empty means only the embedded schema.org context.
	ContextHosts []string `toml:"context_hosts" yaml:"context_hosts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Formats: []string{pipeline.DefaultFormat},
			Seed:    pipeline.DefaultSeed,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Dir returns ~/.config/prettymarkup.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prettymarkup"), nil
}

// Load reads the config file named by $PRETTYMARKUP_CONFIG, or the first of
// [FileNames] found in [Dir]. Without a file it returns the defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = find()
	}
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. Values absent from the
// file keep their defaults. The format is chosen by extension: .yaml and .yml
// are YAML, everything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file")
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	cfg.Path = path
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that config values are valid.
func (c *Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if err := errors.ValidateBaseURL(c.Render.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.base_url")
	}
	if c.Cache.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.db must be non-negative, got %d", c.Cache.Redis.DB)
	}
	return nil
}

// Apply copies render defaults into opts where opts leaves them unset.
func (c *Config) Apply(opts *pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = c.Render.BaseURL
	}
	if opts.Seed == 0 {
		opts.Seed = c.Render.Seed
	}
	opts.Palette = opts.Palette || c.Render.Palette
	opts.IDRows = opts.IDRows || c.Render.IDRows
	opts.FullIRIs = opts.FullIRIs || c.Render.FullIRIs
}

// CacheRedis returns the redis settings in the cache package's form.
func (c *Config) CacheRedis() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.Cache.Redis.Addr,
		Password: c.Cache.Redis.Password,
		DB:       c.Cache.Redis.DB,
	}
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		c.Cache.Redis.Addr = addr
	}
	if pw := os.Getenv(EnvRedisPassword); pw != "" {
		c.Cache.Redis.Password = pw
	}
}

func find() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
