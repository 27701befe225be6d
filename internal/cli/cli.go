// Package cli implements the yeargrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yeargrid/internal/config"
	"github.com/matzehuels/yeargrid/pkg/buildinfo"
	"github.com/matzehuels/yeargrid/pkg/cache"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/httputil"
	yio "github.com/matzehuels/yeargrid/pkg/io"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "yeargrid"

	// feedTTL is how long a downloaded calendar feed is served without
	// revalidation.
	feedTTL = 15 * time.Minute
)

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
	Config *config.Config

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

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Yeargrid lays out calendar events on a paged month grid",
		Long:         `Yeargrid lays out calendar events on a year of month columns, split into pages, and lets you move and resize them by dragging bars across the grid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/yeargrid/config.toml)")

	// Register all subcommands
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default file when the flag is unset.
func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "backend", cfg.Cache.Backend, "page_size", cfg.PageSize)
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

	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns)
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the layout cache selected by the config. A file cache
// that cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", c.Config.Cache.RedisAddr, err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(dir, "layouts"))
}

// =============================================================================
// Event Loading
// =============================================================================

// loadEvents reads events from a file or an http(s) calendar feed. An empty
// src falls back to the config's events entry; no source at all yields an
// empty set.
func (c *CLI) loadEvents(ctx context.Context, src string) ([]event.Event, error) {
	if src == "" {
		src = c.Config.Events
	}
	if src == "" {
		return nil, nil
	}

	prog := newProgress(c.Logger)
	var (
		events []event.Event
		err    error
	)
	if yio.IsURL(src) {
		events, err = yio.FetchICS(ctx, c.newFeedClient(), src)
	} else {
		events, err = yio.ReadEvents(src)
	}
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d events from %s", len(events), src))
	return events, nil
}

// newFeedClient creates an HTTP client that caches feeds under the CLI
// cache directory.
func (c *CLI) newFeedClient() *httputil.Client {
	opts := []httputil.ClientOption{httputil.WithRetry(3, time.Second)}
	if dir, err := cacheDir(); err == nil {
		if fc, err := httputil.NewCache(filepath.Join(dir, "feeds"), feedTTL); err == nil {
			opts = append(opts, httputil.WithCache(fc))
		}
	}
	return httputil.NewClient(opts...)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/yeargrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the config and the common
// grid flags. Zero flag values keep the config's setting.
func (c *CLI) pipelineOptions(flags gridFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	opts.Year = flags.year
	opts.Logger = c.Logger
	if flags.pageSize != 0 {
		opts.PageSize = flags.pageSize
	}
	if flags.precision != "" {
		opts.Precision = flags.precision
	}
	return opts
}

// gridFlags are the flags shared by the grid, pages, layout and view
// commands.
type gridFlags struct {
	year      int
	pageSize  int
	precision string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "calendar year (default: current year)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "months per page (default: config page_size)")
	cmd.Flags().StringVar(&f.precision, "precision", "", "layout precision: day or minute (default: config precision)")
}
