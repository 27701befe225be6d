package io

import (
	"fmt"
	"io"
	"time"

	ics "github.com/emersion/go-ical"

	"github.com/matzehuels/yeargrid/pkg/event"
)

// ReadICS decodes every VEVENT in r.
func ReadICS(r io.Reader) ([]event.Event, error) {
	dec := ics.NewDecoder(r)

	var events []event.Event
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode ICS: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ics.CompEvent {
				continue
			}
			ev, err := parseVEvent(comp)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	return assignIDs(events), nil
}

// parseVEvent converts a VEVENT component to an Event.
func parseVEvent(comp *ics.Component) (event.Event, error) {
	var ev event.Event

	if prop := comp.Props.Get(ics.PropUID); prop != nil {
		ev.ID = prop.Value
	}
	if prop := comp.Props.Get(ics.PropSummary); prop != nil {
		ev.Title = prop.Value
	}
	if prop := comp.Props.Get(ics.PropLocation); prop != nil && prop.Value != "" {
		setMeta(&ev, "location", prop.Value)
	}
	if prop := comp.Props.Get(ics.PropRecurrenceRule); prop != nil {
		setMeta(&ev, "recurring", "true")
	}

	prop := comp.Props.Get(ics.PropDateTimeStart)
	if prop == nil {
		return ev, fmt.Errorf("event %q: missing DTSTART", ev.ID)
	}
	start, allDay, err := parseICSTime(prop)
	if err != nil {
		return ev, fmt.Errorf("event %q: parse start time: %w", ev.ID, err)
	}
	ev.Start = start
	ev.AllDay = allDay

	if prop := comp.Props.Get(ics.PropDateTimeEnd); prop != nil {
		end, dateOnly, err := parseICSTime(prop)
		if err != nil {
			return ev, fmt.Errorf("event %q: parse end time: %w", ev.ID, err)
		}
		// DTEND is exclusive. A date-only end names the day after the event;
		// a date-time end is pulled back to the last instant it covers.
		if dateOnly {
			end = end.AddDate(0, 0, -1)
		} else {
			end = end.Add(-time.Nanosecond)
		}
		if end.After(ev.Start) {
			ev.End = end
		}
	}

	return ev, nil
}

// parseICSTime reads a DTSTART or DTEND property and reports whether it
// was a date-only value.
func parseICSTime(prop *ics.Prop) (time.Time, bool, error) {
	if t, err := prop.DateTime(time.Local); err == nil {
		return t, prop.ValueType() == ics.ValueDate, nil
	}
	if t, err := parseDateTime(prop.Value); err == nil {
		return t, false, nil
	}
	t, err := parseDateOnly(prop.Value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func setMeta(ev *event.Event, k, v string) {
	if ev.Meta == nil {
		ev.Meta = make(map[string]string)
	}
	ev.Meta[k] = v
}

// parseDateOnly parses a date-only value (YYYYMMDD format).
func parseDateOnly(s string) (time.Time, error) {
	return time.ParseInLocation("20060102", s, time.Local)
}

// parseDateTime parses a datetime value without timezone (YYYYMMDDTHHmmss format).
func parseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation("20060102T150405", s, time.Local)
}
