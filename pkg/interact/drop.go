package interact

import (
	"math"

	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
)

// ColumnWidth returns the pixel width of one month column,
// floor(containerWidth / gridLength).
func ColumnWidth(containerWidth float64, gridLength int) (float64, error) {
	if gridLength <= 0 {
		return 0, errors.Configuration("invalid grid length %d (must be >= 1)", gridLength)
	}
	if containerWidth <= 0 || math.IsNaN(containerWidth) || math.IsInf(containerWidth, 0) {
		return 0, errors.Configuration("invalid container width %v (must be > 0)", containerWidth)
	}
	w := math.Floor(containerWidth / float64(gridLength))
	if w < 1 {
		return 0, errors.Configuration("container width %v too narrow for %d columns", containerWidth, gridLength)
	}
	return w, nil
}

// DropOnMonth moves ev to the first day of the month in column col,
// keeping its duration.
func DropOnMonth(ev event.Event, cells []grid.MonthCell, col int) (event.DateChange, error) {
	cell, err := grid.Cell(cells, col)
	if err != nil {
		return event.DateChange{}, err
	}
	return event.MoveTo(ev, cell.Date), nil
}
