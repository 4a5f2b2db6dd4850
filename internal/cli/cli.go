// Package cli implements the bigo command-line interface.
//
// This package provides commands for analyzing growth expressions, previewing
// normalization, inspecting tokens and parse trees, running batches, and
// serving the analyzer over HTTP and MCP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Report the Big-O class of an expression with derivation steps
//   - normalize: Show the normalized form of an expression
//   - tokens: Dump the token stream of an expression
//   - tree: Render the parse tree as DOT or SVG
//   - batch: Analyze one expression per line of a file
//   - live: Interactive analyzer that updates as you type
//   - serve: Run the HTTP API
//   - mcp: Run the MCP tool server on stdio
//   - history: Browse recorded analyses
//   - cache: Manage the result cache
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigo/pkg/cache"
	"github.com/matzehuels/bigo/pkg/config"
	"github.com/matzehuels/bigo/pkg/history"
	"github.com/matzehuels/bigo/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

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

	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the default
// one, and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.SetLogLevel(cfg.LogLevel())
	return nil
}

func (c *CLI) settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerOpts selects which backing stores a command needs.
type runnerOpts struct {
	noCache   bool
	noHistory bool
}

// newRunner creates a pipeline runner backed by the configured cache and
// history store.
func (c *CLI) newRunner(ctx context.Context, ro runnerOpts) (*pipeline.Runner, error) {
	cfg := c.settings()

	var rc cache.Cache = cache.NewNullCache()
	if !ro.noCache {
		opened, err := cache.Open(ctx, cfg.CacheOptions())
		if err != nil {
			return nil, fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
		}
		rc = opened
	}

	var store history.Store = history.NullStore{}
	if !ro.noHistory {
		opened, err := history.Open(ctx, cfg.HistoryOptions())
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("open %s history: %w", cfg.History.Backend, err)
		}
		store = opened
	}

	runner := pipeline.NewRunner(rc, cfg.Keyer(), store, c.Logger)
	runner.ResultTTL = cfg.Cache.TTL
	return runner, nil
}
