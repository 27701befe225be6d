package interact

import (
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

// BeginDrag opens a drag session for ev. It fails while any resize session
// is open or when the event is not draggable.
func (m *Manager) BeginDrag(ev event.Event) error {
	if m.Resizing() {
		return errors.InvalidState("cannot drag event %q while a resize is in progress", ev.ID)
	}
	if err := m.checkIdle(ev); err != nil {
		return err
	}
	if !ev.Draggable {
		return errors.InvalidState("event %q is not draggable", ev.ID)
	}

	m.drags[ev.ID] = &dragSession{event: ev}
	m.logger.Debug("drag started", "event", ev.ID)
	observability.Sessions().OnSessionStart(observability.SessionDrag, ev.ID)
	return nil
}

// UpdateDrag reports whether the bar may follow the pointer to (dx, dy).
// Candidates are refused while any resize session is open.
// The vertical component is dropped; columnWidth is only checked so that a
// broken container measurement surfaces before the drop.
func (m *Manager) UpdateDrag(id string, dx, dy, columnWidth float64) (bool, error) {
	if _, ok := m.drags[id]; !ok {
		return false, errors.InvalidState("no drag session for event %q", id)
	}
	if _, err := columns(dx, columnWidth); err != nil {
		return false, err
	}

	if m.Resizing() {
		return false, nil
	}
	if m.validateDrag != nil && !m.validateDrag(Displacement{X: dx}) {
		return false, nil
	}
	return true, nil
}

// EndDrag closes the drag session and shifts both dates of the event by
// round(pixelDisplacement / columnWidth) days.
func (m *Manager) EndDrag(id string, pixelDisplacement, columnWidth float64) (event.DateChange, error) {
	s, ok := m.drags[id]
	if !ok {
		return event.DateChange{}, errors.InvalidState("no drag session for event %q", id)
	}
	days, err := columns(pixelDisplacement, columnWidth)
	if err != nil {
		return event.DateChange{}, err
	}
	delete(m.drags, id)

	m.logger.Debug("drag ended", "event", id, "days", days)
	observability.Sessions().OnSessionEnd(observability.SessionDrag, id, days)
	return event.ShiftDays(s.event, days), nil
}

// AbortDrag discards the drag session without a date change.
func (m *Manager) AbortDrag(id string) error {
	if _, ok := m.drags[id]; !ok {
		return errors.InvalidState("no drag session for event %q", id)
	}
	delete(m.drags, id)
	m.logger.Debug("drag aborted", "event", id)
	observability.Sessions().OnSessionAbort(observability.SessionDrag, id)
	return nil
}
