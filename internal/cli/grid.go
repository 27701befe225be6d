package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yeargrid/pkg/grid"
	yio "github.com/matzehuels/yeargrid/pkg/io"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// Month cell styles, by classification.
var (
	stylePast    = lipgloss.NewStyle().Foreground(colorDim)
	styleCurrent = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleFuture  = lipgloss.NewStyle().Foreground(colorWhite)
	styleYearEnd = lipgloss.NewStyle().Foreground(colorYellow)
)

// gridCommand creates the grid command that prints the month cells of a year.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		flags  gridFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the month grid of a year",
		Long: `Print the twelve month cells of a year.

Each month is classified as past, current or future relative to today, and
months listed in year_end_months are flagged as year-end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(flags)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			months, _, err := pipeline.BuildPages(opts)
			if err != nil {
				return err
			}
			if asJSON {
				return yio.WriteMonthsJSON(os.Stdout, months)
			}
			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d", opts.Year)))
			fmt.Println(monthTable(months))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

// pagesCommand creates the pages command that prints how a year is paged.
func (c *CLI) pagesCommand() *cobra.Command {
	var (
		flags gridFlags
		page  int
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print how the year splits into pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(flags)
			opts.Page = page
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			months, pages, err := pipeline.BuildPages(opts)
			if err != nil {
				return err
			}

			printInfo("%d months, %d per page, %d pages", len(months), opts.PageSize, len(pages))
			for _, p := range pages {
				if page != pipeline.AllPages && p.Index != page-1 {
					continue
				}
				fmt.Println(pageLine(p))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&page, "page", "p", pipeline.AllPages, "print only this page (1-based)")

	return cmd
}

// monthTable renders month cells as a table with one row per month.
func monthTable(months []grid.MonthCell) string {
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.Index()),
			m.Label(),
			m.Date.Format(time.DateOnly),
			classLabel(m),
			yesNo(m.IsYearEnd),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Month", "Starts", "Class", "Year end").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return monthStyle(months[row]).Padding(0, 1)
		}).
		Render()
}

// pageLine renders a page as its number followed by its month labels.
func pageLine(p grid.Page) string {
	labels := make([]string, len(p.Cells))
	current := false
	for i, m := range p.Cells {
		labels[i] = monthStyle(m).Render(m.Label())
		current = current || m.IsCurrent
	}
	head := StyleDim.Render(fmt.Sprintf("page %d", p.Index+1))
	if current {
		head = StyleHighlight.Render(fmt.Sprintf("page %d", p.Index+1))
	}
	return "  " + head + "  " + strings.Join(labels, " ")
}

func monthStyle(m grid.MonthCell) lipgloss.Style {
	switch {
	case m.IsCurrent:
		return styleCurrent
	case m.IsYearEnd:
		return styleYearEnd
	case m.IsPast:
		return stylePast
	}
	return styleFuture
}

func classLabel(m grid.MonthCell) string {
	switch {
	case m.IsCurrent:
		return "current"
	case m.IsPast:
		return "past"
	}
	return "future"
}

func yesNo(b bool) string {
	if b {
		return iconSuccess
	}
	return ""
}
