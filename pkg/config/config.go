// Package config loads bigo's user configuration.
//
// The configuration file lives at $XDG_CONFIG_HOME/bigo/config.toml
// (falling back to ~/.config/bigo/config.toml) and may be written in TOML or
// YAML; the format is chosen by file extension. Every setting has a default,
// so a missing default file is not an error:
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "file"   # none | file | redis
//	ttl = "720h"
//
//	[history]
//	backend = "sqlite" # none | sqlite | mongo
//
//	[server]
//	addr = ":8080"
//
// Use [Config.CacheOptions] and [Config.HistoryOptions] to turn a loaded
// configuration into the options accepted by cache.Open and history.Open.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bigo/pkg/cache"
	errs "github.com/matzehuels/bigo/pkg/errors"
	"github.com/matzehuels/bigo/pkg/history"
)

// AppName is used for the config, cache and data directories.
const AppName = "bigo"

// FileName is the name of the default configuration file.
const FileName = "config.toml"

// Config is the top-level bigo configuration.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Redis   RedisConfig   `toml:"redis" yaml:"redis"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Mongo   MongoConfig   `toml:"mongo" yaml:"mongo"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // debug | info | warn | error
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend string        `toml:"backend" yaml:"backend"` // none | file | redis
	Dir     string        `toml:"dir" yaml:"dir"`
	TTL     time.Duration `toml:"ttl" yaml:"ttl"`

	// Namespace prefixes every cache key, so that several deployments can
	// share one Redis database.
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// RedisConfig is used when the cache backend is redis.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// HistoryConfig selects the analysis history store.
type HistoryConfig struct {
	Backend string `toml:"backend" yaml:"backend"` // none | sqlite | mongo
	Path    string `toml:"path" yaml:"path"`
}

// MongoConfig is used when the history backend is mongo.
type MongoConfig struct {
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// ServerConfig controls `bigo serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Defaults for unset fields.
const (
	DefaultLogLevel     = "info"
	DefaultServerAddr   = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultRedisAddr    = "localhost:6379"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path. An empty path means the default
// location, which is allowed to be missing. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config")
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml"),
// applies defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(ext) {
	case ".toml", "":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = cache.TTLResult
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = DefaultRedisAddr
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = cache.DefaultRedisPrefix
	}
	if c.History.Backend == "" {
		c.History.Backend = history.BackendSQLite
	}
	if c.History.Path == "" {
		if dir, err := DataDir(); err == nil {
			c.History.Path = filepath.Join(dir, "history.db")
		}
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = history.DefaultMongoDatabase
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = history.DefaultMongoCollection
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.New(errs.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level)
	}

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendRedis:
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.dir: required for the file backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}

	switch c.History.Backend {
	case history.BackendNone:
	case history.BackendSQLite:
		if c.History.Path == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "history.path: required for the sqlite backend")
		}
	case history.BackendMongo:
		if c.Mongo.URI == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "mongo.uri: required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "history.backend: unknown backend %q", c.History.Backend)
	}

	if c.Redis.DB < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "redis.db: must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level. Call Validate first.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		},
	}
}

// Keyer returns the cache keyer for the configured namespace.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace+":")
}

// HistoryOptions converts the history section for history.Open.
func (c *Config) HistoryOptions() history.Options {
	return history.Options{
		Backend:         c.History.Backend,
		Path:            c.History.Path,
		MongoURI:        c.Mongo.URI,
		MongoDatabase:   c.Mongo.Database,
		MongoCollection: c.Mongo.Collection,
	}
}

// String renders the configuration as TOML with secrets masked.
func (c *Config) String() string {
	masked := *c
	if masked.Redis.Password != "" {
		masked.Redis.Password = "********"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
