// Package event defines the calendar events laid out on the year grid and the
// date changes produced when a user drags or resizes one.
//
// Events are immutable values from the point of view of the layout and
// interaction packages: a gesture never edits an Event in place, it returns a
// [DateChange] that the owner applies (see [DateChange.Apply]) before asking
// for a fresh layout.
package event

import (
	"fmt"
	"time"

	"github.com/matzehuels/yeargrid/pkg/errors"
)

// Resizable lists the edges of an event that may be dragged.
type Resizable struct {
	BeforeStart bool `json:"before_start,omitempty" toml:"before_start"`
	AfterEnd    bool `json:"after_end,omitempty" toml:"after_end"`
}

// Any reports whether at least one edge is resizable.
func (r Resizable) Any() bool { return r.BeforeStart || r.AfterEnd }

// Event is a calendar entry with an optional end.
//
// ID must be stable for the lifetime of the event; it keys gesture sessions
// and layout cache entries. A zero End means the event is a single instant at
// Start.
type Event struct {
	ID        string            `json:"id" toml:"id"`
	Title     string            `json:"title,omitempty" toml:"title"`
	Start     time.Time         `json:"start" toml:"start"`
	End       time.Time         `json:"end,omitempty" toml:"end"`
	AllDay    bool              `json:"all_day,omitempty" toml:"all_day"`
	Draggable bool              `json:"draggable,omitempty" toml:"draggable"`
	Resizable Resizable         `json:"resizable,omitempty" toml:"resizable"`
	CSSClass  string            `json:"css_class,omitempty" toml:"css_class"`
	Color     string            `json:"color,omitempty" toml:"color"`
	Meta      map[string]string `json:"meta,omitempty" toml:"meta"`
}

// HasEnd reports whether the event carries an explicit end.
func (e Event) HasEnd() bool { return !e.End.IsZero() }

// EffectiveEnd returns End, or Start for instant events.
func (e Event) EffectiveEnd() time.Time {
	if e.HasEnd() {
		return e.End
	}
	return e.Start
}

// Duration returns the length of the event, zero for instant events.
func (e Event) Duration() time.Duration {
	if !e.HasEnd() {
		return 0
	}
	return e.End.Sub(e.Start)
}

// String returns a short description used in log lines.
func (e Event) String() string {
	if e.Title != "" {
		return fmt.Sprintf("%s (%s)", e.ID, e.Title)
	}
	return e.ID
}

// Validate checks the invariants the layout engine relies on.
func (e Event) Validate() error {
	if err := errors.ValidateEventID(e.ID); err != nil {
		return err
	}
	if e.Start.IsZero() {
		return errors.New(errors.ErrCodeInvalidInput, "event %s has no start", e.ID)
	}
	if e.HasEnd() && e.End.Before(e.Start) {
		return errors.New(errors.ErrCodeInvalidInput, "event %s ends (%s) before it starts (%s)",
			e.ID, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

// Validate checks every event and rejects duplicate IDs. It returns one error
// per offending event, in input order.
func Validate(events []Event) []error {
	var errs []error
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[e.ID] {
			errs = append(errs, errors.New(errors.ErrCodeInvalidInput, "duplicate event id %q", e.ID))
			continue
		}
		seen[e.ID] = true
	}
	return errs
}

// AddDays shifts t by n calendar days, keeping the wall-clock time of day.
func AddDays(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	return t.AddDate(0, 0, n)
}
