package layout

import "github.com/matzehuels/yeargrid/pkg/event"

// PositionedEvent is an event's placement on a grid.
//
// Offset is in [0, gridLength) and Offset+Span <= gridLength.
type PositionedEvent struct {
	Event            event.Event `json:"event"`
	Offset           int         `json:"offset"`
	Span             int         `json:"span"`
	StartsBeforeGrid bool        `json:"starts_before_grid"`
	EndsAfterGrid    bool        `json:"ends_after_grid"`
}

// EndColumn returns the column just past the bar.
func (p PositionedEvent) EndColumn() int { return p.Offset + p.Span }

// Overlaps reports whether the column intervals of p and q intersect.
func (p PositionedEvent) Overlaps(q PositionedEvent) bool {
	return p.Offset < q.EndColumn() && q.Offset < p.EndColumn()
}

// Row is one horizontal band of non-overlapping bars.
type Row struct {
	Events []PositionedEvent `json:"events"`
}

// fits reports whether p can join the row without overlapping a bar.
func (r Row) fits(p PositionedEvent) bool {
	for _, q := range r.Events {
		if p.Overlaps(q) {
			return false
		}
	}
	return true
}

// Flatten returns every positioned event, row by row.
func Flatten(rows []Row) []PositionedEvent {
	var out []PositionedEvent
	for _, r := range rows {
		out = append(out, r.Events...)
	}
	return out
}

// Find returns the placement of the event with the given ID.
func Find(rows []Row, id string) (PositionedEvent, bool) {
	for _, r := range rows {
		for _, p := range r.Events {
			if p.Event.ID == id {
				return p, true
			}
		}
	}
	return PositionedEvent{}, false
}
