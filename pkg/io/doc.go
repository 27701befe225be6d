// Package io reads calendar events from files and writes computed layouts.
//
// # Import
//
// [ReadEvents] picks a decoder from the file extension:
//
//   - .ics: iCalendar, one event per VEVENT ([ReadICS])
//   - .toml: an [[events]] array of tables ([ReadTOML])
//   - .json: either a bare array of events or an object with an "events"
//     array ([ReadJSON])
//
// The JSON and TOML field names match the tags on [event.Event]:
//
//	[[events]]
//	id = "offsite"
//	title = "Team offsite"
//	start = 2024-03-04T09:00:00Z
//	end = 2024-03-08T17:00:00Z
//	draggable = true
//	resizable = { before_start = true, after_end = true }
//
// Events without an ID receive a random UUID so that gesture sessions and
// cache keys can address them. Decoding stops at the first malformed input;
// semantic problems such as an end before the start are left for the layout
// engine, which skips those events with a warning.
//
// Remote calendars are read with [FetchICS], which downloads an http(s) feed
// through an [httputil.Client] (conditional requests against a local cache)
// and decodes it with [ReadICS]. A 404 from the feed is a NOT_FOUND error.
//
// iCalendar specifics: floating times are read in the local time zone,
// DTEND is exclusive (a date-only end becomes the previous day, a date-time
// end loses one nanosecond so midnight stays in the previous month), and
// recurring events contribute only their first occurrence (marked with
// Meta["recurring"] = "true").
//
// # Export
//
// [WriteLayoutJSON] encodes a pipeline result as indented JSON,
// [WriteMonthsJSON] encodes a bare month grid, and
// [WriteEventsJSON] writes events back in the import format so a session of
// edits can be saved and reloaded.
package io
