// Package pkg provides the core libraries for yeargrid.
//
// # Overview
//
// Yeargrid shows a calendar year as twelve month columns, split into pages of
// a few months each, and draws events as horizontal bars across the columns
// they cover. Bars that would overlap are stacked into rows. Bars can be
// dragged to other dates or resized from either edge; a finished gesture
// produces a date change for the caller to persist.
//
// # Architecture
//
// The typical data flow:
//
//	events (.json / .toml / .ics / http feed)
//	         ↓
//	    [io] package (decode events)
//	         ↓
//	    [grid] package (year of month cells, split into pages)
//	         ↓
//	    [layout] package (position events, pack into rows)
//	         ↓
//	    [interact] package (drag / resize sessions → date changes)
//
// [pipeline] runs grid and layout together with caching and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/yeargrid/pkg/grid"
//	    "github.com/matzehuels/yeargrid/pkg/layout"
//	)
//
//	months, _ := grid.BuildYear(2024, time.Now(), []int{11})
//	pages, _ := grid.Partition(months, 4)
//	rows, _ := layout.Layout(events, pages[0].Cells, layout.PrecisionDay)
//
// # Main Packages
//
// ## Domain
//
// [event] - Calendar events and the date changes gestures produce.
//
// [grid] - Month cells classified as past, current or future, and the page
// partitioner.
//
// [layout] - Positions events on a page and packs them first-fit into rows.
//
// [interact] - Drag and resize session manager, column width and month drop.
//
// ## Orchestration
//
// [pipeline] - Options, the cached layout runner and its result types.
//
// [io] - Event import (JSON, TOML, iCalendar, remote feeds) and JSON export.
//
// ## Infrastructure
//
// [cache] - Layout cache backends: file (CLI), Redis (shared servers) and
// null (disabled).
//
// [httputil] - HTTP client with retry and conditional revalidation of
// downloaded calendar feeds.
//
// [observability] - Hooks for layout, gesture session and cache events.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                                  # All tests
//	go test ./pkg/interact/...                         # Specific package
//	YEARGRID_TEST_REDIS=localhost:6379 go test ./pkg/cache/...
//
// [event]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/event
// [grid]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/grid
// [layout]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/layout
// [interact]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/interact
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/yeargrid/pkg/buildinfo
package pkg
