package event

import (
	"testing"
	"time"

	"github.com/matzehuels/yeargrid/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{"instant", Event{ID: "a", Start: date(2024, 3, 1)}, false},
		{"range", Event{ID: "a", Start: date(2024, 3, 1), End: date(2024, 3, 9)}, false},
		{"same start and end", Event{ID: "a", Start: date(2024, 3, 1), End: date(2024, 3, 1)}, false},
		{"no id", Event{Start: date(2024, 3, 1)}, true},
		{"no start", Event{ID: "a"}, true},
		{"end before start", Event{ID: "a", Start: date(2024, 3, 9), End: date(2024, 3, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateDuplicates(t *testing.T) {
	events := []Event{
		{ID: "a", Start: date(2024, 1, 1)},
		{ID: "b", Start: date(2024, 1, 2)},
		{ID: "a", Start: date(2024, 1, 3)},
		{ID: "", Start: date(2024, 1, 4)},
	}

	errs := Validate(events)
	if len(errs) != 2 {
		t.Fatalf("Validate() returned %d errors, want 2: %v", len(errs), errs)
	}
}

func TestEffectiveEnd(t *testing.T) {
	e := Event{ID: "a", Start: date(2024, 5, 5)}
	if !e.EffectiveEnd().Equal(e.Start) {
		t.Errorf("EffectiveEnd() = %v, want %v", e.EffectiveEnd(), e.Start)
	}
	if e.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", e.Duration())
	}

	e.End = date(2024, 5, 7)
	if !e.EffectiveEnd().Equal(e.End) {
		t.Errorf("EffectiveEnd() = %v, want %v", e.EffectiveEnd(), e.End)
	}
	if e.Duration() != 48*time.Hour {
		t.Errorf("Duration() = %v, want 48h", e.Duration())
	}
}

func TestAddDaysKeepsTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		days int
		want time.Time
	}{
		{0, start},
		{-1, time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)},
		{17, time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)},
		{-75, time.Date(2023, 12, 31, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := AddDays(start, tt.days); !got.Equal(tt.want) {
			t.Errorf("AddDays(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestShiftDays(t *testing.T) {
	e := Event{ID: "a", Start: date(2024, 1, 1), End: date(2024, 1, 5)}
	c := ShiftDays(e, 3)

	if !c.NewStart.Equal(date(2024, 1, 4)) {
		t.Errorf("NewStart = %v, want 2024-01-04", c.NewStart)
	}
	if !c.NewEnd.Equal(date(2024, 1, 8)) {
		t.Errorf("NewEnd = %v, want 2024-01-08", c.NewEnd)
	}

	instant := Event{ID: "b", Start: date(2024, 1, 1)}
	c = ShiftDays(instant, -2)
	if !c.NewEnd.IsZero() {
		t.Errorf("NewEnd = %v, want zero for instant event", c.NewEnd)
	}
}

func TestMoveToKeepsDuration(t *testing.T) {
	e := Event{ID: "a", Start: date(2024, 1, 10), End: date(2024, 1, 13)}
	c := MoveTo(e, date(2024, 6, 1))

	if !c.NewEnd.Equal(date(2024, 6, 4)) {
		t.Errorf("NewEnd = %v, want 2024-06-04", c.NewEnd)
	}
}

func TestApplyTo(t *testing.T) {
	events := []Event{
		{ID: "a", Start: date(2024, 1, 1)},
		{ID: "b", Start: date(2024, 2, 1)},
	}
	c := ShiftDays(events[1], 1)

	out, ok := ApplyTo(events, c)
	if !ok {
		t.Fatal("ApplyTo() found = false, want true")
	}
	if !out[1].Start.Equal(date(2024, 2, 2)) {
		t.Errorf("Start = %v, want 2024-02-02", out[1].Start)
	}
	if !events[1].Start.Equal(date(2024, 2, 1)) {
		t.Error("ApplyTo() mutated its input")
	}

	if _, ok := ApplyTo(events, ShiftDays(Event{ID: "zzz", Start: date(2024, 1, 1)}, 1)); ok {
		t.Error("ApplyTo() found = true for unknown id")
	}
}

func TestShifted(t *testing.T) {
	e := Event{ID: "a", Start: date(2024, 1, 1)}
	if ShiftDays(e, 0).Shifted() {
		t.Error("Shifted() = true for zero shift")
	}
	if !ShiftDays(e, 1).Shifted() {
		t.Error("Shifted() = false for one day shift")
	}
}
