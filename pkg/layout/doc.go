// Package layout places calendar events on a month grid.
//
// # Overview
//
// Given a sequence of events and a grid (a full year from [grid.BuildYear] or
// one page of it), [Layout] computes for every visible event a
// [PositionedEvent]: the zero-based column where its bar begins (Offset), the
// number of columns it covers (Span, never less than one) and whether its real
// date range continues past either edge of the grid. Events entirely outside
// the grid are dropped.
//
// # Rows
//
// Positioned events are stacked into [Row] values with a first-fit rule: each
// event goes into the first row whose bars it does not overlap, or into a new
// row appended at the bottom. Input order is preserved; there is no priority
// reordering.
//
// # Precision
//
// [PrecisionDay] rounds starts down and ends up to whole days before columns
// are intersected; [PrecisionMinute] keeps the timestamps as they are. Columns
// are whole months either way, so the mode only matters to callers that run a
// finer sub-layout with the same offsets.
//
// # Purity
//
// Layout never mutates its inputs and can be called on every change of the
// event set, the visible page or the precision.
//
//	rows, err := layout.Layout(events, page.Cells, layout.PrecisionDay)
//	for _, row := range rows {
//	    for _, pe := range row.Events {
//	        fmt.Println(pe.Event.Title, pe.Offset, pe.Span)
//	    }
//	}
//
// [grid.BuildYear]: github.com/matzehuels/yeargrid/pkg/grid.BuildYear
package layout
