package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/yeargrid/pkg/interact"
	"github.com/matzehuels/yeargrid/pkg/layout"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

const (
	defaultCellWidth = 12 // characters per month column
	minCellWidth     = 6
)

var (
	styleBar         = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("238"))
	styleBarSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorCyan)
	styleBarGesture  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorYellow)
)

// pageView controls how a page layout is drawn.
type pageView struct {
	cellWidth int
	selected  string                       // event ID drawn highlighted
	gesture   bool                         // selected bar is mid-gesture
	override  map[string]interact.Geometry // tentative geometry by event ID
}

// renderPage draws a page as a header of month labels followed by one line
// of bars per layout row.
func renderPage(pl pipeline.PageLayout, v pageView) string {
	if v.cellWidth < minCellWidth {
		v.cellWidth = minCellWidth
	}

	var b strings.Builder
	for _, m := range pl.Months {
		label := fmt.Sprintf("%-*s", v.cellWidth, m.Label())
		b.WriteString(monthStyle(m).Render(label))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", v.cellWidth*len(pl.Months))))
	b.WriteString("\n")

	if len(pl.Rows) == 0 {
		b.WriteString(StyleDim.Render("no events"))
		b.WriteString("\n")
		return b.String()
	}
	for _, row := range pl.Rows {
		b.WriteString(renderRow(row, len(pl.Months), v))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow draws the bars of one row left to right.
func renderRow(row layout.Row, columns int, v pageView) string {
	bars := rowBars(row)
	var b strings.Builder
	pos := 0
	for _, p := range bars {
		g := interact.Geometry{Offset: p.Offset, Span: p.Span}
		if o, ok := v.override[p.Event.ID]; ok {
			g = o
		}
		g.Offset = max(g.Offset, 0)
		g.Span = min(g.Span, columns-g.Offset)
		if g.Span < 1 {
			continue
		}

		start := g.Offset * v.cellWidth
		if start < pos {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-pos))

		width := g.Span*v.cellWidth - 1
		style := styleBar
		if p.Event.ID == v.selected {
			style = styleBarSelected
			if v.gesture {
				style = styleBarGesture
			}
		}
		b.WriteString(style.Render(barText(p, width)))
		b.WriteString(" ")
		pos = start + width + 1
	}
	return b.String()
}

// barText fits an event title into width characters, with arrows marking
// bars clipped at either page edge.
func barText(p layout.PositionedEvent, width int) string {
	left, right := " ", " "
	if p.StartsBeforeGrid {
		left = "◂"
	}
	if p.EndsAfterGrid {
		right = "▸"
	}
	title := p.Event.Title
	if title == "" {
		title = p.Event.ID
	}

	inner := width - 2
	if inner < 1 {
		return truncate(left+right, width)
	}
	return left + fmt.Sprintf("%-*s", inner, truncate(title, inner)) + right
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// rowBars returns the bars of a row ordered by column.
func rowBars(row layout.Row) []layout.PositionedEvent {
	bars := append([]layout.PositionedEvent(nil), row.Events...)
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Offset < bars[j].Offset })
	return bars
}
