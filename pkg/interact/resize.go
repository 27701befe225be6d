package interact

import (
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

// BeginResize opens a resize session for ev, snapshotting its current
// geometry. The edge must be one the event allows resizing.
func (m *Manager) BeginResize(ev event.Event, edge Edge, offset, span int) error {
	if err := m.checkIdle(ev); err != nil {
		return err
	}
	switch edge {
	case EdgeLeft:
		if !ev.Resizable.BeforeStart {
			return errors.InvalidState("event %q cannot be resized from the left", ev.ID)
		}
	case EdgeRight:
		if !ev.Resizable.AfterEnd {
			return errors.InvalidState("event %q cannot be resized from the right", ev.ID)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid edge %q", edge)
	}
	if offset < 0 || span < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid geometry offset=%d span=%d", offset, span)
	}

	g := Geometry{Offset: offset, Span: span}
	m.resizes[ev.ID] = &resizeSession{event: ev, edge: edge, original: g, tentative: g}
	m.logger.Debug("resize started", "event", ev.ID, "edge", edge, "offset", offset, "span", span)
	observability.Sessions().OnSessionStart(observability.SessionResize, ev.ID)
	return nil
}

// UpdateResize moves the grabbed edge by pixelDelta and returns the
// tentative geometry. Candidates with a span below one column, or rejected by
// the resize validator, leave the previous tentative geometry in place.
func (m *Manager) UpdateResize(id string, pixelDelta, columnWidth float64) (Geometry, error) {
	s, ok := m.resizes[id]
	if !ok {
		return Geometry{}, errors.InvalidState("no resize session for event %q", id)
	}
	diff, err := columns(pixelDelta, columnWidth)
	if err != nil {
		return s.tentative, err
	}

	candidate := s.original
	if s.edge == EdgeLeft {
		candidate.Offset += diff
		candidate.Span -= diff
	} else {
		candidate.Span += diff
	}

	if candidate.Span < 1 {
		return s.tentative, nil
	}
	if m.validateResize != nil && !m.validateResize(candidate) {
		return s.tentative, nil
	}
	s.tentative = candidate
	return candidate, nil
}

// Tentative returns the live geometry of an open resize session.
func (m *Manager) Tentative(id string) (Geometry, bool) {
	s, ok := m.resizes[id]
	if !ok {
		return Geometry{}, false
	}
	return s.tentative, true
}

// EndResize closes the resize session and returns the resulting date
// change. A left-edge resize shifts the start, a right-edge resize shifts the
// end when the event has one. The displayed geometry reverts to the snapshot
// taken at BeginResize; the date change is what persists.
func (m *Manager) EndResize(id string) (event.DateChange, error) {
	s, ok := m.resizes[id]
	if !ok {
		return event.DateChange{}, errors.InvalidState("no resize session for event %q", id)
	}
	delete(m.resizes, id)

	ev := s.event
	change := event.DateChange{Event: ev, NewStart: ev.Start, NewEnd: ev.End}

	var days int
	if s.edge == EdgeLeft {
		days = s.tentative.Offset - s.original.Offset
		change.NewStart = event.AddDays(ev.Start, days)
	} else {
		days = s.tentative.Span - s.original.Span
		if ev.HasEnd() {
			change.NewEnd = event.AddDays(ev.End, days)
		}
	}

	m.logger.Debug("resize ended", "event", id, "edge", s.edge, "days", days)
	observability.Sessions().OnSessionEnd(observability.SessionResize, id, days)
	return change, nil
}

// AbortResize discards the resize session without a date change and returns
// the original geometry.
func (m *Manager) AbortResize(id string) (Geometry, error) {
	s, ok := m.resizes[id]
	if !ok {
		return Geometry{}, errors.InvalidState("no resize session for event %q", id)
	}
	delete(m.resizes, id)
	m.logger.Debug("resize aborted", "event", id)
	observability.Sessions().OnSessionAbort(observability.SessionResize, id)
	return s.original, nil
}
