package layout

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func year(t *testing.T) []grid.MonthCell {
	t.Helper()
	cells, err := grid.BuildYear(2024, now, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cells
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPosition(t *testing.T) {
	cells := year(t)

	tests := []struct {
		name         string
		event        event.Event
		wantOK       bool
		offset, span int
		before       bool
		after        bool
	}{
		{
			name:   "single month inside",
			event:  event.Event{ID: "a", Start: day(2024, 3, 3), End: day(2024, 3, 20)},
			wantOK: true, offset: 2, span: 1,
		},
		{
			name:   "instant",
			event:  event.Event{ID: "a", Start: time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)},
			wantOK: true, offset: 6, span: 1,
		},
		{
			name:   "three months",
			event:  event.Event{ID: "a", Start: day(2024, 5, 31), End: day(2024, 7, 1)},
			wantOK: true, offset: 4, span: 3,
		},
		{
			name:   "starts before grid",
			event:  event.Event{ID: "a", Start: day(2023, 11, 10), End: day(2024, 2, 5)},
			wantOK: true, offset: 0, span: 2, before: true,
		},
		{
			name:   "ends after grid",
			event:  event.Event{ID: "a", Start: day(2024, 11, 1), End: day(2025, 1, 10)},
			wantOK: true, offset: 10, span: 2, after: true,
		},
		{
			name:   "covers whole grid",
			event:  event.Event{ID: "a", Start: day(2023, 6, 1), End: day(2025, 6, 1)},
			wantOK: true, offset: 0, span: 12, before: true, after: true,
		},
		{
			name:   "ends on first instant of the grid",
			event:  event.Event{ID: "a", Start: day(2023, 12, 20), End: day(2024, 1, 1)},
			wantOK: true, offset: 0, span: 1, before: true,
		},
		{
			name:   "entirely before",
			event:  event.Event{ID: "a", Start: day(2023, 2, 1), End: day(2023, 12, 31)},
			wantOK: false,
		},
		{
			name:   "entirely after",
			event:  event.Event{ID: "a", Start: day(2025, 1, 1), End: day(2025, 3, 1)},
			wantOK: false,
		},
		{
			name: "other location converted to grid location",
			event: event.Event{
				ID:    "a",
				Start: time.Date(2024, 4, 1, 5, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			},
			wantOK: true, offset: 2, span: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe, ok := Position(tt.event, cells, PrecisionMinute)
			if ok != tt.wantOK {
				t.Fatalf("Position() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if pe.Offset != tt.offset || pe.Span != tt.span {
				t.Errorf("Position() = offset %d span %d, want offset %d span %d", pe.Offset, pe.Span, tt.offset, tt.span)
			}
			if pe.StartsBeforeGrid != tt.before || pe.EndsAfterGrid != tt.after {
				t.Errorf("Position() flags = before:%v after:%v, want before:%v after:%v",
					pe.StartsBeforeGrid, pe.EndsAfterGrid, tt.before, tt.after)
			}
			if pe.Offset < 0 || pe.Offset >= len(cells) || pe.Span < 1 || pe.EndColumn() > len(cells) {
				t.Errorf("Position() = %+v violates grid bounds", pe)
			}
		})
	}
}

func TestPositionOnPage(t *testing.T) {
	cells := year(t)
	page := cells[4:8] // May..Aug

	tests := []struct {
		name         string
		event        event.Event
		wantOK       bool
		offset, span int
		before       bool
		after        bool
	}{
		{"inside", event.Event{ID: "a", Start: day(2024, 6, 2), End: day(2024, 7, 9)}, true, 1, 2, false, false},
		{"overflow left", event.Event{ID: "a", Start: day(2024, 3, 1), End: day(2024, 6, 1)}, true, 0, 2, true, false},
		{"overflow right", event.Event{ID: "a", Start: day(2024, 8, 30), End: day(2024, 10, 1)}, true, 3, 1, false, true},
		{"on previous page", event.Event{ID: "a", Start: day(2024, 1, 1), End: day(2024, 4, 30)}, false, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe, ok := Position(tt.event, page, PrecisionDay)
			if ok != tt.wantOK {
				t.Fatalf("Position() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if pe.Offset != tt.offset || pe.Span != tt.span || pe.StartsBeforeGrid != tt.before || pe.EndsAfterGrid != tt.after {
				t.Errorf("Position() = %+v, want offset %d span %d before %v after %v",
					pe, tt.offset, tt.span, tt.before, tt.after)
			}
		})
	}
}

func TestLayoutRows(t *testing.T) {
	cells := year(t)

	events := []event.Event{
		{ID: "q1", Start: day(2024, 1, 5), End: day(2024, 3, 10)},  // [0,3)
		{ID: "feb", Start: day(2024, 2, 1), End: day(2024, 4, 2)},  // [1,4) overlaps q1
		{ID: "apr", Start: day(2024, 4, 1), End: day(2024, 5, 20)}, // [3,5) fits after q1
		{ID: "mar", Start: day(2024, 3, 15)},                       // [2,3) overlaps q1 and feb
		{ID: "dec", Start: day(2024, 12, 24)},                      // [11,12)
	}

	rows, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	want := [][]string{
		{"q1", "apr", "dec"},
		{"feb"},
		{"mar"},
	}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("Layout() rows = %v, want %v", got, want)
	}

	for _, r := range rows {
		for i, a := range r.Events {
			for _, b := range r.Events[i+1:] {
				if a.Overlaps(b) {
					t.Errorf("row holds overlapping events %s and %s", a.Event.ID, b.Event.ID)
				}
			}
		}
	}
}

func TestLayoutSameRowWhenDisjoint(t *testing.T) {
	cells := year(t)
	events := []event.Event{
		{ID: "a", Start: day(2024, 1, 1), End: day(2024, 1, 31)},
		{ID: "b", Start: day(2024, 2, 1), End: day(2024, 2, 28)},
	}

	rows, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("Layout() = %d rows, want 1", len(rows))
	}

	events[1].Start = day(2024, 1, 20)
	rows, _ = Layout(events, cells, PrecisionDay)
	if len(rows) != 2 {
		t.Errorf("Layout() = %d rows for overlapping events, want 2", len(rows))
	}
}

func TestLayoutExcludesOutsideEvents(t *testing.T) {
	cells := year(t)
	events := []event.Event{
		{ID: "old", Start: day(2022, 1, 1), End: day(2022, 2, 1)},
		{ID: "in", Start: day(2024, 6, 1)},
		{ID: "future", Start: day(2026, 1, 1)},
	}

	rows, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}
	if got := rowIDs(rows); !reflect.DeepEqual(got, [][]string{{"in"}}) {
		t.Errorf("Layout() rows = %v, want [[in]]", got)
	}
}

func TestLayoutSkipsInvalidEvents(t *testing.T) {
	cells := year(t)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	events := []event.Event{
		{ID: "ok", Start: day(2024, 6, 1)},
		{ID: "", Start: day(2024, 6, 1)},
		{ID: "nostart"},
		{ID: "backwards", Start: day(2024, 6, 9), End: day(2024, 6, 1)},
		{ID: "ok", Start: day(2024, 9, 1)},
	}

	rows, err := Layout(events, cells, PrecisionDay, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(Flatten(rows)); n != 1 {
		t.Errorf("Layout() placed %d events, want 1", n)
	}
	if !strings.Contains(buf.String(), "backwards") {
		t.Errorf("expected a warning naming the skipped event, got %q", buf.String())
	}
}

func TestLayoutDoesNotMutateInputs(t *testing.T) {
	cells := year(t)
	events := []event.Event{
		{ID: "a", Start: day(2024, 1, 5), End: day(2024, 3, 10)},
		{ID: "b", Start: day(2024, 2, 1)},
	}
	eventsBefore := append([]event.Event(nil), events...)
	cellsBefore := append([]grid.MonthCell(nil), cells...)

	first, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(events, eventsBefore) {
		t.Error("Layout() mutated events")
	}
	if !reflect.DeepEqual(cells, cellsBefore) {
		t.Error("Layout() mutated cells")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Layout() is not repeatable")
	}
}

func TestLayoutPrecisionAgreesOnColumns(t *testing.T) {
	cells := year(t)
	events := []event.Event{
		{ID: "a", Start: time.Date(2024, 3, 31, 23, 30, 0, 0, time.UTC), End: time.Date(2024, 4, 1, 0, 15, 0, 0, time.UTC)},
		{ID: "b", Start: time.Date(2024, 8, 14, 10, 0, 0, 0, time.UTC), End: time.Date(2024, 8, 14, 11, 0, 0, 0, time.UTC)},
	}

	byDay, err := Layout(events, cells, PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}
	byMinute, err := Layout(events, cells, PrecisionMinute)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(byDay, byMinute) {
		t.Errorf("day and minute precision disagree: %+v vs %+v", byDay, byMinute)
	}

	pe, _ := Find(byDay, "a")
	if pe.Offset != 2 || pe.Span != 2 {
		t.Errorf("event a = offset %d span %d, want offset 2 span 2", pe.Offset, pe.Span)
	}
}

func TestLayoutInvalidArguments(t *testing.T) {
	cells := year(t)

	if _, err := Layout(nil, cells, Precision("hour")); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Layout(precision=hour) error = %v, want CONFIGURATION", err)
	}
	if _, err := Layout(nil, nil, PrecisionDay); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Layout(empty grid) error = %v, want CONFIGURATION", err)
	}
	gap := []grid.MonthCell{cells[0], cells[5]}
	if _, err := Layout(nil, gap, PrecisionDay); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Layout(gap grid) error = %v, want CONFIGURATION", err)
	}
}

func TestLayoutEmptyEvents(t *testing.T) {
	rows, err := Layout(nil, year(t), PrecisionDay)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("Layout(nil) = %d rows, want 0", len(rows))
	}
}

func TestLayoutHooks(t *testing.T) {
	rec := &recordingLayoutHooks{}
	observability.SetLayoutHooks(rec)
	defer observability.Reset()

	events := []event.Event{
		{ID: "a", Start: day(2024, 1, 1)},
		{ID: "b", Start: day(2030, 1, 1)},
	}
	if _, err := Layout(events, year(t), PrecisionDay); err != nil {
		t.Fatal(err)
	}

	if rec.startEvents != 2 || rec.startColumns != 12 {
		t.Errorf("OnLayoutStart(%d, %d), want (2, 12)", rec.startEvents, rec.startColumns)
	}
	if rec.placed != 1 || rec.rows != 1 {
		t.Errorf("OnLayoutComplete(%d, %d), want (1, 1)", rec.placed, rec.rows)
	}
}

func TestParsePrecision(t *testing.T) {
	tests := []struct {
		in      string
		want    Precision
		wantErr bool
	}{
		{"day", PrecisionDay, false},
		{"Days", PrecisionDay, false},
		{"minute", PrecisionMinute, false},
		{" MINUTES ", PrecisionMinute, false},
		{"hour", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePrecision(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePrecision(%q) = %q, %v, want %q (err %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func rowIDs(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		for _, pe := range r.Events {
			out[i] = append(out[i], pe.Event.ID)
		}
	}
	return out
}

type recordingLayoutHooks struct {
	observability.NoopLayoutHooks
	startEvents, startColumns int
	placed, rows              int
}

func (r *recordingLayoutHooks) OnLayoutStart(events, columns int) {
	r.startEvents, r.startColumns = events, columns
}

func (r *recordingLayoutHooks) OnLayoutComplete(placed, rows int, _ time.Duration) {
	r.placed, r.rows = placed, rows
}
