// Package pipeline runs the year-view computation end to end.
//
// A run builds the twelve month cells for a year, partitions them into pages
// and lays out the events on each requested page. The CLI, the TUI and the
// HTTP server all go through a [Runner] so they share defaults, validation
// and the layout cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Year:     2024,
//	    PageSize: 4,
//	    Events:   events,
//	})
//	for _, p := range result.Pages {
//	    fmt.Println(p.Index, len(p.Rows))
//	}
//
// Months are rebuilt on every run because their past/current/future flags
// depend on the current time; only the rows are cached.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yeargrid/pkg/cache"
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and API
// =============================================================================

const (
	// DefaultPageSize is the number of months shown per page.
	DefaultPageSize = 4

	// AllPages selects every page in Options.Page.
	AllPages = 0
)

// DefaultYearEndMonths flags December as the year-end column.
var DefaultYearEndMonths = []int{11}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Grid options
	Year          int       `json:"year,omitempty"`
	Now           time.Time `json:"now,omitempty"`
	YearEndMonths []int     `json:"year_end_months,omitempty"`

	// Paging options
	PageSize int `json:"page_size,omitempty"`
	Page     int `json:"page,omitempty"` // 1-based; AllPages lays out every page

	// Layout options
	Precision string        `json:"precision,omitempty"`
	Events    []event.Event `json:"events"`
	Refresh   bool          `json:"refresh,omitempty"` // Recompute and overwrite cached rows

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Year is the calendar year of the grid.
	Year int `json:"year"`

	// Months holds the twelve month cells of the year.
	Months []grid.MonthCell `json:"months"`

	// PageCount is the total number of pages for the configured page size.
	PageCount int `json:"page_count"`

	// Pages holds the laid out pages that were requested.
	Pages []PageLayout `json:"pages"`

	// EventsHash is the content hash of the input events.
	EventsHash string `json:"events_hash"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the rows came from cache.
	CacheInfo CacheInfo `json:"cache"`
}

// PageLayout is one page of months with its stacked event rows.
type PageLayout struct {
	Index  int              `json:"index"`
	Months []grid.MonthCell `json:"months"`
	Rows   []layout.Row     `json:"rows"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EventCount int           `json:"event_count"`
	Placed     int           `json:"placed"`
	RowCount   int           `json:"row_count"`
	LayoutTime time.Duration `json:"layout_time"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Year == 0 {
		o.Year = o.Now.Year()
	}
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Precision == "" {
		o.Precision = string(layout.DefaultPrecision)
	}
	if o.YearEndMonths == nil {
		o.YearEndMonths = append([]int(nil), DefaultYearEndMonths...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if o.Year < 1 || o.Year > 9999 {
		return errors.Configuration("invalid year %d (must be 1-9999)", o.Year)
	}
	if err := errors.ValidatePageSize(o.PageSize); err != nil {
		return err
	}
	p, err := layout.ParsePrecision(o.Precision)
	if err != nil {
		return err
	}
	o.Precision = string(p)
	for _, m := range o.YearEndMonths {
		if err := errors.ValidateMonthIndex(m); err != nil {
			return err
		}
	}

	n, _ := grid.PageCount(grid.MonthsPerYear, o.PageSize)
	if o.Page < 0 || o.Page > n {
		return errors.Index("page %d out of range [1, %d]", o.Page, n)
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Year:          o.Year,
		Location:      o.Now.Location().String(),
		PageSize:      o.PageSize,
		Page:          o.Page,
		Precision:     o.Precision,
		YearEndMonths: o.YearEndMonths,
	}
}
