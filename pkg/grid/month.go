package grid

import (
	"time"

	"github.com/matzehuels/yeargrid/pkg/errors"
)

// MonthsPerYear is the number of columns in a full year grid.
const MonthsPerYear = 12

var monthLabels = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthCell is one month column of the year grid.
//
// IsPast, IsCurrent and IsFuture are mutually exclusive. CSSClass is an opaque
// tag for consumers and is never interpreted here. DragOver is toggled by the
// consumer while a drag payload hovers the column.
type MonthCell struct {
	Date      time.Time `json:"date"`
	IsPast    bool      `json:"is_past"`
	IsCurrent bool      `json:"is_current"`
	IsFuture  bool      `json:"is_future"`
	IsYearEnd bool      `json:"is_year_end"`
	CSSClass  string    `json:"css_class,omitempty"`
	DragOver  bool      `json:"drag_over,omitempty"`
}

// Index returns the zero-based month index of the cell (0 = January).
func (c MonthCell) Index() int { return int(c.Date.Month()) - 1 }

// Start returns the first instant of the month.
func (c MonthCell) Start() time.Time { return c.Date }

// End returns the first instant of the following month.
func (c MonthCell) End() time.Time { return c.Date.AddDate(0, 1, 0) }

// Contains reports whether t falls inside the month.
func (c MonthCell) Contains(t time.Time) bool {
	return !t.Before(c.Start()) && t.Before(c.End())
}

// Label returns the short English month name.
func (c MonthCell) Label() string { return monthLabels[c.Index()] }

// BuildYear returns the twelve month cells of year, classified against now.
// yearEndMonths holds zero-based month indices; an index outside 0-11 fails
// with a CONFIGURATION error. Cells are created in now's location.
func BuildYear(year int, now time.Time, yearEndMonths []int) ([]MonthCell, error) {
	yearEnd := make(map[int]bool, len(yearEndMonths))
	for _, m := range yearEndMonths {
		if err := errors.ValidateMonthIndex(m); err != nil {
			return nil, err
		}
		yearEnd[m] = true
	}

	loc := now.Location()
	current := monthKey(now.Year(), now.Month())

	cells := make([]MonthCell, MonthsPerYear)
	for i := range cells {
		month := time.Month(i + 1)
		key := monthKey(year, month)
		cells[i] = MonthCell{
			Date:      time.Date(year, month, 1, 0, 0, 0, 0, loc),
			IsPast:    key < current,
			IsCurrent: key == current,
			IsFuture:  key > current,
			IsYearEnd: yearEnd[i],
		}
	}
	return cells, nil
}

// monthKey maps a (year, month) pair onto a monotonic month counter.
func monthKey(year int, month time.Month) int {
	return year*MonthsPerYear + int(month) - 1
}

// Cell returns the cell at column i, failing with INDEX_OUT_OF_RANGE when i
// is outside the grid.
func Cell(cells []MonthCell, i int) (MonthCell, error) {
	if i < 0 || i >= len(cells) {
		return MonthCell{}, errors.Index("column %d out of range [0, %d)", i, len(cells))
	}
	return cells[i], nil
}

// SetDragOver marks column i as hovered and clears every other column.
func SetDragOver(cells []MonthCell, i int) error {
	if i < 0 || i >= len(cells) {
		return errors.Index("column %d out of range [0, %d)", i, len(cells))
	}
	for j := range cells {
		cells[j].DragOver = j == i
	}
	return nil
}

// ClearDragOver resets the hover flag on every column.
func ClearDragOver(cells []MonthCell) {
	for i := range cells {
		cells[i].DragOver = false
	}
}

// CheckContiguous verifies that cells is a non-empty run of consecutive
// months, which is what offset and span arithmetic assumes.
func CheckContiguous(cells []MonthCell) error {
	if len(cells) == 0 {
		return errors.Configuration("grid has no columns")
	}
	first := monthKey(cells[0].Date.Year(), cells[0].Date.Month())
	for i, c := range cells {
		if got := monthKey(c.Date.Year(), c.Date.Month()); got != first+i {
			return errors.Configuration("grid column %d (%s %d) breaks month order", i, c.Label(), c.Date.Year())
		}
	}
	return nil
}
