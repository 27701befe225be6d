package interact

import (
	"testing"
	"time"

	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
)

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		container float64
		n         int
		want      float64
		wantErr   bool
	}{
		{960, 12, 80, false},
		{1000, 12, 83, false},
		{1000, 4, 250, false},
		{359, 12, 29, false},
		{960, 0, 0, true},
		{0, 12, 0, true},
		{-5, 12, 0, true},
		{10, 12, 0, true},
	}

	for _, tt := range tests {
		got, err := ColumnWidth(tt.container, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColumnWidth(%v, %d) error = %v, wantErr %v", tt.container, tt.n, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("ColumnWidth(%v, %d) error code = %s, want CONFIGURATION", tt.container, tt.n, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ColumnWidth(%v, %d) = %v, want %v", tt.container, tt.n, got, tt.want)
		}
	}
}

func TestDropOnMonth(t *testing.T) {
	cells, err := grid.BuildYear(2024, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatal(err)
	}
	ev := event.Event{
		ID:    "a",
		Start: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 12, 17, 0, 0, 0, time.UTC),
	}

	change, err := DropOnMonth(ev, cells, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !change.NewStart.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("NewStart = %v, want 2024-05-01", change.NewStart)
	}
	if got := change.NewEnd.Sub(change.NewStart); got != ev.Duration() {
		t.Errorf("duration = %v, want %v", got, ev.Duration())
	}

	instant := event.Event{ID: "b", Start: ev.Start}
	change, _ = DropOnMonth(instant, cells, 0)
	if !change.NewEnd.IsZero() {
		t.Errorf("NewEnd = %v, want zero for instant event", change.NewEnd)
	}

	for _, col := range []int{-1, 12} {
		if _, err := DropOnMonth(ev, cells, col); !errors.Is(err, errors.ErrCodeIndex) {
			t.Errorf("DropOnMonth(col=%d) error = %v, want INDEX_OUT_OF_RANGE", col, err)
		}
	}
}
