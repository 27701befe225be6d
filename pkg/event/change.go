package event

import "time"

// DateChange is the outcome of a completed gesture: the event it applies to
// and the dates it should move to. NewEnd is zero when the event has no end.
type DateChange struct {
	Event    Event     `json:"event"`
	NewStart time.Time `json:"new_start"`
	NewEnd   time.Time `json:"new_end,omitempty"`
}

// Apply returns a copy of the event carrying the new dates.
func (c DateChange) Apply() Event {
	e := c.Event
	e.Start = c.NewStart
	e.End = c.NewEnd
	return e
}

// Shifted reports whether the change moves either date.
func (c DateChange) Shifted() bool {
	return !c.NewStart.Equal(c.Event.Start) || !c.NewEnd.Equal(c.Event.End)
}

// ShiftDays builds the change that moves both dates of e by n days.
func ShiftDays(e Event, n int) DateChange {
	c := DateChange{Event: e, NewStart: AddDays(e.Start, n)}
	if e.HasEnd() {
		c.NewEnd = AddDays(e.End, n)
	}
	return c
}

// MoveTo builds the change that starts e at start, keeping its duration.
func MoveTo(e Event, start time.Time) DateChange {
	c := DateChange{Event: e, NewStart: start}
	if e.HasEnd() {
		c.NewEnd = start.Add(e.Duration())
	}
	return c
}

// ApplyTo replaces the event matching c.Event.ID in events with the changed
// copy. It returns a new slice and reports whether a match was found.
func ApplyTo(events []Event, c DateChange) ([]Event, bool) {
	out := make([]Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].ID == c.Event.ID {
			out[i] = c.Apply()
			return out, true
		}
	}
	return out, false
}
