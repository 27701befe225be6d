package pipeline

import (
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/layout"
)

// =============================================================================
// Grid
// =============================================================================

// BuildPages builds the year grid for opts and returns it with its pages.
func BuildPages(opts Options) ([]grid.MonthCell, grid.Pages, error) {
	months, err := grid.BuildYear(opts.Year, opts.Now, opts.YearEndMonths)
	if err != nil {
		return nil, nil, err
	}
	pages, err := grid.Partition(months, opts.PageSize)
	if err != nil {
		return nil, nil, err
	}
	return months, pages, nil
}

// selectPages returns every page, or only the 1-based opts.Page.
func selectPages(pages grid.Pages, opts Options) (grid.Pages, error) {
	if opts.Page == AllPages {
		return pages, nil
	}
	p, err := pages.Page(opts.Page - 1)
	if err != nil {
		return nil, err
	}
	return grid.Pages{p}, nil
}

// =============================================================================
// Layout
// =============================================================================

// LayoutPages lays out opts.Events on each page independently.
func LayoutPages(pages grid.Pages, opts Options) ([]PageLayout, error) {
	precision, err := layout.ParsePrecision(opts.Precision)
	if err != nil {
		return nil, err
	}

	out := make([]PageLayout, 0, len(pages))
	for _, p := range pages {
		rows, err := layout.Layout(opts.Events, p.Cells, precision, layout.WithLogger(opts.Logger))
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "layout page %d", p.Index)
		}
		out = append(out, PageLayout{Index: p.Index, Months: p.Cells, Rows: rows})
	}
	return out, nil
}
