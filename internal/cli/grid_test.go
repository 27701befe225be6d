package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/yeargrid/pkg/grid"
)

func testYear(t *testing.T) []grid.MonthCell {
	t.Helper()
	months, err := grid.BuildYear(2024, viewNow, []int{11})
	if err != nil {
		t.Fatalf("BuildYear() error: %v", err)
	}
	return months
}

func TestClassLabel(t *testing.T) {
	months := testYear(t)
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "past"},
		{time.May, "current"},
		{time.December, "future"},
	}
	for _, tt := range tests {
		if got := classLabel(months[tt.month-1]); got != tt.want {
			t.Errorf("classLabel(%s) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestMonthTable(t *testing.T) {
	out := monthTable(testYear(t))
	for _, want := range []string{"Jan", "Dec", "2024-05-01", "current", "future"} {
		if !strings.Contains(out, want) {
			t.Errorf("monthTable() missing %q", want)
		}
	}
}

func TestPageLine(t *testing.T) {
	pages, err := grid.Partition(testYear(t), 4)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}
	line := pageLine(pages[1])
	for _, want := range []string{"page 2", "May", "Aug"} {
		if !strings.Contains(line, want) {
			t.Errorf("pageLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(line, "Sep") {
		t.Errorf("pageLine() = %q, should stop at August", line)
	}
}
