package grid

import "github.com/matzehuels/yeargrid/pkg/errors"

// Page is a contiguous slice of month cells shown together.
type Page struct {
	Index int         `json:"index"`
	Cells []MonthCell `json:"cells"`
}

// Len returns the number of columns on the page.
func (p Page) Len() int { return len(p.Cells) }

// Pages is the ordered result of [Partition].
type Pages []Page

// Page returns page i, or an INDEX_OUT_OF_RANGE error when i is not in
// [0, len(p)).
func (p Pages) Page(i int) (Page, error) {
	if i < 0 || i >= len(p) {
		return Page{}, errors.Index("page %d out of range [0, %d)", i, len(p))
	}
	return p[i], nil
}

// Cells concatenates every page back into a single sequence.
func (p Pages) Cells() []MonthCell {
	var out []MonthCell
	for _, pg := range p {
		out = append(out, pg.Cells...)
	}
	return out
}

// PageCount returns ceil(n / pageSize).
func PageCount(n, pageSize int) (int, error) {
	if err := errors.ValidatePageSize(pageSize); err != nil {
		return 0, err
	}
	return (n + pageSize - 1) / pageSize, nil
}

// Partition splits months into pages of pageSize cells, filled left to right.
// The last page holds the remainder. pageSize <= 0 fails with a CONFIGURATION
// error.
func Partition(months []MonthCell, pageSize int) (Pages, error) {
	count, err := PageCount(len(months), pageSize)
	if err != nil {
		return nil, err
	}

	pages := make(Pages, 0, count)
	for lo := 0; lo < len(months); lo += pageSize {
		hi := min(lo+pageSize, len(months))
		pages = append(pages, Page{
			Index: len(pages),
			Cells: months[lo:hi:hi],
		})
	}
	return pages, nil
}

// PageOf returns the index of the page holding the column at monthIndex.
func PageOf(monthIndex, pageSize int) (int, error) {
	if err := errors.ValidatePageSize(pageSize); err != nil {
		return 0, err
	}
	if err := errors.ValidateMonthIndex(monthIndex); err != nil {
		return 0, err
	}
	return monthIndex / pageSize, nil
}
