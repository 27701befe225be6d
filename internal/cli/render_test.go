package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/interact"
	"github.com/matzehuels/yeargrid/pkg/layout"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"offsite", 10, "offsite"},
		{"offsite", 7, "offsite"},
		{"offsite", 4, "off…"},
		{"offsite", 1, "o"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestBarText(t *testing.T) {
	p := layout.PositionedEvent{
		Event:            event.Event{ID: "x", Title: "Conference"},
		StartsBeforeGrid: true,
	}
	got := barText(p, 8)
	if got != "◂Confe… " {
		t.Errorf("barText() = %q, want %q", got, "◂Confe… ")
	}

	p = layout.PositionedEvent{Event: event.Event{ID: "x"}, EndsAfterGrid: true}
	if got := barText(p, 5); got != " x  ▸" {
		t.Errorf("barText() = %q, want %q", got, " x  ▸")
	}
}

func TestRowBarsSortsByOffset(t *testing.T) {
	row := layout.Row{Events: []layout.PositionedEvent{
		{Event: event.Event{ID: "b"}, Offset: 3, Span: 1},
		{Event: event.Event{ID: "a"}, Offset: 0, Span: 2},
	}}
	bars := rowBars(row)
	if bars[0].Event.ID != "a" || bars[1].Event.ID != "b" {
		t.Errorf("rowBars() = [%s %s], want [a b]", bars[0].Event.ID, bars[1].Event.ID)
	}
	if row.Events[0].Event.ID != "b" {
		t.Error("rowBars() should not reorder the row")
	}
}

func TestRenderRowOverride(t *testing.T) {
	row := layout.Row{Events: []layout.PositionedEvent{
		{Event: event.Event{ID: "a", Title: "A"}, Offset: 1, Span: 1},
	}}
	plain := renderRow(row, 4, pageView{cellWidth: 8})
	wide := renderRow(row, 4, pageView{
		cellWidth: 8,
		override:  map[string]interact.Geometry{"a": {Offset: 1, Span: 3}},
	})
	if len(wide) <= len(plain) {
		t.Errorf("override should widen the bar: %q vs %q", wide, plain)
	}
	if !strings.HasPrefix(plain, strings.Repeat(" ", 8)) {
		t.Errorf("bar at offset 1 should be indented one column: %q", plain)
	}
}
