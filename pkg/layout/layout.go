package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

// Option configures a [Layout] call.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes warnings about skipped events to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Layout positions events on cells and stacks them into rows.
//
// cells must be a non-empty run of consecutive months; anything else fails
// with a CONFIGURATION error, as does an unknown precision. Events that fail
// [event.Event.Validate] or repeat an earlier ID are skipped with a warning.
func Layout(events []event.Event, cells []grid.MonthCell, precision Precision, opts ...Option) ([]Row, error) {
	o := options{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&o)
	}

	if err := precision.Validate(); err != nil {
		return nil, err
	}
	if err := grid.CheckContiguous(cells); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Layout()
	hooks.OnLayoutStart(len(events), len(cells))

	var rows []Row
	placed := 0
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			o.logger.Warn("skipping event", "event", ev.ID, "err", err)
			continue
		}
		if seen[ev.ID] {
			o.logger.Warn("skipping duplicate event", "event", ev.ID)
			continue
		}
		seen[ev.ID] = true

		pe, ok := Position(ev, cells, precision)
		if !ok {
			continue
		}
		rows = place(rows, pe)
		placed++
	}

	o.logger.Debug("layout complete", "events", len(events), "placed", placed, "rows", len(rows), "columns", len(cells))
	hooks.OnLayoutComplete(placed, len(rows), time.Since(start))
	return rows, nil
}

// place appends pe to the first row it fits in, or to a new row.
func place(rows []Row, pe PositionedEvent) []Row {
	for i := range rows {
		if rows[i].fits(pe) {
			rows[i].Events = append(rows[i].Events, pe)
			return rows
		}
	}
	return append(rows, Row{Events: []PositionedEvent{pe}})
}

// Position computes the placement of a single event on cells, which must be
// contiguous. It returns false when the event lies entirely outside the grid.
// The end of the event is inclusive: an event ending exactly at midnight on
// the first of a month touches that month.
func Position(ev event.Event, cells []grid.MonthCell, precision Precision) (PositionedEvent, bool) {
	if len(cells) == 0 {
		return PositionedEvent{}, false
	}

	loc := cells[0].Date.Location()
	gridStart := cells[0].Start()
	gridEnd := cells[len(cells)-1].End()

	s, e := precision.round(ev.Start.In(loc), ev.EffectiveEnd().In(loc))
	if e.Before(gridStart) || !s.Before(gridEnd) {
		return PositionedEvent{}, false
	}

	pe := PositionedEvent{
		Event:            ev,
		StartsBeforeGrid: s.Before(gridStart),
		EndsAfterGrid:    !e.Before(gridEnd),
	}

	first := 0
	if !pe.StartsBeforeGrid {
		first = monthsBetween(gridStart, s)
	}
	last := len(cells) - 1
	if !pe.EndsAfterGrid {
		last = monthsBetween(gridStart, e)
	}

	pe.Offset = first
	pe.Span = max(last-first+1, 1)
	return pe, true
}

// monthsBetween counts calendar months from a's month to b's month.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
