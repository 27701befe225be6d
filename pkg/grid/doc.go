// Package grid builds the month columns of a year view and slices them into
// pages for paged (carousel) display.
//
// # Month Cells
//
// [BuildYear] returns exactly twelve [MonthCell] values in ascending month
// order. Index i of the result is month i (0 = January); the layout engine
// relies on this ordering for all offset and span arithmetic. Each cell is
// classified against a caller-supplied "now" as past, current or future, and
// flagged as a year-end column when its month index is listed in the
// year-end set:
//
//	cells, err := grid.BuildYear(2024, time.Now(), []int{11})
//
// BuildYear is a pure function of its arguments, which keeps it trivially
// testable.
//
// # Pages
//
// [Partition] slices the twelve cells into ceil(12/pageSize) contiguous
// [Page] values; the last page holds the remainder. Concatenating the pages in
// order reproduces the input exactly. Pages share storage with the input so a
// DragOver flag set through a page is visible on the year grid as well.
//
//	pages, err := grid.Partition(cells, 4)
//	second, err := pages.Page(1) // INDEX_OUT_OF_RANGE if out of bounds
//
// Invalid page sizes fail with a CONFIGURATION error and out-of-range page
// requests with an INDEX_OUT_OF_RANGE error; there is no placeholder page.
package grid
