// Package cache stores computed year-view layouts so repeated requests for
// the same events and grid settings skip the layout pass.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys are produced by a [Keyer] so that every entry point derives the same
// key for the same inputs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(eventsJSON), cache.LayoutKeyOpts{
//	    Year:      2024,
//	    PageSize:  4,
//	    Precision: "day",
//	})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached data.
const (
	// TTLLayout is how long a computed layout stays valid. Layouts are a pure
	// function of their key, so the TTL only bounds disk and memory use.
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// LayoutKeyOpts lists every input besides the events that changes a layout.
type LayoutKeyOpts struct {
	Year          int    `json:"year"`
	Location      string `json:"location"`
	PageSize      int    `json:"page_size"`
	Page          int    `json:"page"`
	Precision     string `json:"precision"`
	YearEndMonths []int  `json:"year_end_months,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the events hashed to
	// eventsHash under opts.
	LayoutKey(eventsHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(eventsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", eventsHash, opts)
}
