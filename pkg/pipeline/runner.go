package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yeargrid/pkg/cache"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/layout"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // zero means cache.TTLLayout
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute builds the grid, partitions it and lays out the events.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	months, pages, err := BuildPages(opts)
	if err != nil {
		return nil, err
	}
	selected, err := selectPages(pages, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Year:      opts.Year,
		Months:    months,
		PageCount: len(pages),
	}
	if data, err := json.Marshal(opts.Events); err == nil {
		result.EventsHash = cache.Hash(data)
	}

	start := time.Now()
	layouts, hit, err := r.LayoutWithCacheInfo(ctx, selected, result.EventsHash, opts)
	if err != nil {
		return nil, err
	}
	result.Pages = layouts
	result.CacheInfo.LayoutHit = hit
	result.Stats = stats(layouts, len(opts.Events))
	result.Stats.LayoutTime = time.Since(start)

	r.Logger.Debug("computed layout",
		"year", opts.Year,
		"pages", len(layouts),
		"events", result.Stats.EventCount,
		"rows", result.Stats.RowCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// cachedPage is the cached part of a PageLayout. Months are rebuilt on read.
type cachedPage struct {
	Index int          `json:"index"`
	Rows  []layout.Row `json:"rows"`
}

// LayoutWithCacheInfo lays out pages with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, pages []grid.Page, eventsHash string, opts Options) ([]PageLayout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Cache()
	key := r.Keyer.LayoutKey(eventsHash, opts.LayoutKeyOpts())

	if !opts.Refresh && eventsHash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if layouts, ok := restore(data, pages); ok {
				hooks.OnCacheHit(ctx, key)
				return layouts, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, key)
	}

	layouts, err := LayoutPages(pages, opts)
	if err != nil {
		return nil, false, err
	}

	if eventsHash != "" {
		cached := make([]cachedPage, len(layouts))
		for i, l := range layouts {
			cached[i] = cachedPage{Index: l.Index, Rows: l.Rows}
		}
		if data, err := json.Marshal(cached); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
				r.Logger.Warn("cache write failed", "err", err)
			} else {
				hooks.OnCacheSet(ctx, key, len(data))
			}
		}
	}

	return layouts, false, nil
}

// restore pairs cached rows with freshly built pages. It reports false when
// the cached entry does not match the page set.
func restore(data []byte, pages []grid.Page) ([]PageLayout, bool) {
	var cached []cachedPage
	if err := json.Unmarshal(data, &cached); err != nil || len(cached) != len(pages) {
		return nil, false
	}
	out := make([]PageLayout, len(pages))
	for i, p := range pages {
		if cached[i].Index != p.Index {
			return nil, false
		}
		out[i] = PageLayout{Index: p.Index, Months: p.Cells, Rows: cached[i].Rows}
	}
	return out, true
}

func stats(layouts []PageLayout, events int) Stats {
	s := Stats{EventCount: events}
	for _, l := range layouts {
		s.RowCount += len(l.Rows)
		s.Placed += len(layout.Flatten(l.Rows))
	}
	return s
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLLayout
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
