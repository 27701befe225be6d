// Package interact turns pointer gestures on the year grid into date changes.
//
// A [Manager] owns the open gesture sessions, keyed by event ID. Two kinds of
// session exist:
//
//   - Resize: the user grabs the left or right handle of a bar. Each update
//     converts the pixel delta into a whole number of columns and reports the
//     tentative geometry for visual feedback. Ending the session reverts the
//     geometry and returns the [event.DateChange] that moves the start (left
//     edge) or the end (right edge) by the number of columns moved, counted
//     as days.
//   - Drag: the user moves the whole bar horizontally. Updates only consult
//     the drag validator; ending the session shifts both dates by the rounded
//     displacement.
//
// Pixel deltas are rounded to the nearest column with halves rounded away
// from zero. Only the calendar day of a timestamp changes; its time of day is
// kept.
//
// Drags are suppressed while any resize is open, and an event may hold at
// most one session at a time. Ending, updating or aborting a session that
// does not exist fails with INVALID_STATE; a completed gesture always yields
// exactly one DateChange.
//
// # Usage
//
//	m := interact.NewManager()
//	width, _ := interact.ColumnWidth(960, len(cells))
//
//	_ = m.BeginDrag(ev)
//	change, err := m.EndDrag(ev.ID, 90, width)
//	events, _ = event.ApplyTo(events, change)
//
// A Manager is driven from a single UI loop and is not safe for concurrent
// use.
package interact
