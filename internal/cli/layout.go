package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	yio "github.com/matzehuels/yeargrid/pkg/io"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// layoutFlags holds the command-line flags for the layout command.
type layoutFlags struct {
	gridFlags
	page    int    // 1-based page, 0 for all
	output  string // JSON output path
	asJSON  bool   // print JSON to stdout
	noCache bool
	refresh bool
}

// layoutCommand creates the layout command for placing events on the grid.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [events]",
		Short: "Lay out events on the month grid",
		Long: `Lay out events on the month grid.

The events source is a .json, .toml or .ics file, or an http(s) iCalendar
feed. Without an argument the config's events entry is used.

Each page is laid out independently: events are placed in the first row
where they do not overlap another bar. Results are cached by event content
and grid settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				src = args[0]
			}
			return c.runLayout(cmd.Context(), src, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.page, "page", "p", pipeline.AllPages, "lay out only this page (1-based)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute and overwrite cached rows")

	return cmd
}

// runLayout loads events, lays them out and prints or writes the result.
func (c *CLI) runLayout(ctx context.Context, src string, flags layoutFlags) error {
	events, err := c.loadEvents(ctx, src)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(flags.gridFlags)
	opts.Page = flags.page
	opts.Events = events
	opts.Refresh = flags.refresh

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if flags.asJSON {
		return yio.WriteLayoutJSON(os.Stdout, result)
	}

	for _, pl := range result.Pages {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("%d · page %d/%d", result.Year, pl.Index+1, result.PageCount)))
		fmt.Print(renderPage(pl, pageView{cellWidth: defaultCellWidth}))
		printNewline()
	}

	if flags.output != "" {
		if err := yio.ExportLayoutJSON(result, flags.output); err != nil {
			return fmt.Errorf("write output %s: %w", flags.output, err)
		}
		printSuccess("Layout written")
		printFile(flags.output)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	if src != "" {
		printNewline()
		printNextStep("Edit interactively", appName+" view "+src)
	}
	return nil
}
