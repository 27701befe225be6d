package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/interact"
	yio "github.com/matzehuels/yeargrid/pkg/io"
	"github.com/matzehuels/yeargrid/pkg/layout"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// viewCommand creates the interactive paged view.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags   gridFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "view [events]",
		Short: "Browse and edit the layout interactively",
		Long: `Browse the paged year view and move or resize events with the keyboard.

Keys:
  ←/→ h/l   select bar, or move the active gesture by one column
  ↑/↓ k/j   select row
  n/p       next/previous page
  d         drag the selected event (each column moves it one day)
  [ ]       resize the selected event from its left/right edge
  enter     commit the gesture
  esc       abort the gesture
  w         write events to --output
  q         quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				src = args[0]
			}
			return c.runView(cmd.Context(), src, flags, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "events file written by the w key (.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runView(ctx context.Context, src string, flags gridFlags, output string, noCache bool) error {
	events, err := c.loadEvents(ctx, src)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions(flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	relayout := func(evs []event.Event) (*pipeline.Result, error) {
		o := opts
		o.Events = evs
		return runner.Execute(ctx, o)
	}

	model, err := newViewModel(events, relayout, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	model.output = output

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viewModel); ok && m.dirty {
		printWarning("%d unsaved changes", m.changes)
	}
	return nil
}

// =============================================================================
// viewModel - Interactive paged layout
// =============================================================================

// viewModel is the bubbletea model of the paged view. At most one gesture
// is open at a time; its tentative state lives in the interaction manager.
type viewModel struct {
	events   []event.Event
	relayout func([]event.Event) (*pipeline.Result, error)
	result   *pipeline.Result
	logger   *log.Logger

	manager *interact.Manager
	columns *int // columns on the page of the open resize
	mode    interact.SessionKind
	edge    interact.Edge
	active  string  // event ID of the open gesture
	px      float64 // pixel displacement of the open gesture

	page, row, bar int
	cellWidth      int
	width          int

	output  string
	status  string
	err     error
	dirty   bool
	changes int
}

func newViewModel(events []event.Event, relayout func([]event.Event) (*pipeline.Result, error), logger *log.Logger) (viewModel, error) {
	result, err := relayout(events)
	if err != nil {
		return viewModel{}, err
	}
	columns := new(int)
	withinPage := func(g interact.Geometry) bool {
		return g.Offset >= 0 && g.Offset+g.Span <= *columns
	}
	m := viewModel{
		events:   events,
		relayout: relayout,
		result:   result,
		logger:   logger,
		manager: interact.NewManager(
			interact.WithLogger(logger),
			interact.WithResizeValidator(withinPage),
		),
		columns:   columns,
		cellWidth: defaultCellWidth,
	}
	m.page = currentPageIndex(result)
	return m, nil
}

// currentPageIndex returns the page holding the current month, or 0.
func currentPageIndex(r *pipeline.Result) int {
	for i, pl := range r.Pages {
		for _, c := range pl.Months {
			if c.IsCurrent {
				return i
			}
		}
	}
	return 0
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.resize()
	case tea.KeyMsg:
		m.err = nil
		if m.mode != interact.SessionNone {
			return m.updateGesture(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

// updateIdle handles keys while no gesture is open.
func (m viewModel) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		if m.bar > 0 {
			m.bar--
		}
	case "right", "l":
		if m.bar < len(m.bars())-1 {
			m.bar++
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
			m.bar = 0
		}
	case "down", "j":
		if m.row < len(m.pageLayout().Rows)-1 {
			m.row++
			m.bar = 0
		}
	case "n", "pgdown":
		if m.page < len(m.result.Pages)-1 {
			m.page++
			m.row, m.bar = 0, 0
			m.resize()
		}
	case "p", "pgup":
		if m.page > 0 {
			m.page--
			m.row, m.bar = 0, 0
			m.resize()
		}
	case "d":
		m.beginDrag()
	case "[":
		m.beginResize(interact.EdgeLeft)
	case "]":
		m.beginResize(interact.EdgeRight)
	case "w":
		m.save()
	}
	return m, nil
}

// updateGesture handles keys while a drag or resize is open.
func (m viewModel) updateGesture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.abort()
		return m, tea.Quit
	case "left", "h":
		m.move(-float64(m.cellWidth))
	case "right", "l":
		m.move(float64(m.cellWidth))
	case "enter":
		m.commit()
	case "esc":
		m.abort()
	}
	return m, nil
}

// =============================================================================
// Gestures
// =============================================================================

func (m *viewModel) beginDrag() {
	p, ok := m.selected()
	if !ok {
		return
	}
	if err := m.manager.BeginDrag(p.Event); err != nil {
		m.err = err
		return
	}
	m.mode, m.active, m.px = interact.SessionDrag, p.Event.ID, 0
	m.status = "dragging " + label(p.Event)
}

func (m *viewModel) beginResize(edge interact.Edge) {
	p, ok := m.selected()
	if !ok {
		return
	}
	*m.columns = len(m.pageLayout().Months)
	if err := m.manager.BeginResize(p.Event, edge, p.Offset, p.Span); err != nil {
		m.err = err
		return
	}
	m.mode, m.edge, m.active, m.px = interact.SessionResize, edge, p.Event.ID, 0
	m.status = fmt.Sprintf("resizing %s from the %s edge", label(p.Event), edge)
}

// move shifts the open gesture by dx pixels.
func (m *viewModel) move(dx float64) {
	w := float64(m.cellWidth)
	switch m.mode {
	case interact.SessionDrag:
		ok, err := m.manager.UpdateDrag(m.active, m.px+dx, 0, w)
		if err != nil {
			m.err = err
			return
		}
		if ok {
			m.px += dx
		}
		m.status = fmt.Sprintf("dragging %+d days", int(m.px/w))
	case interact.SessionResize:
		prev, _ := m.manager.Tentative(m.active)
		g, err := m.manager.UpdateResize(m.active, m.px+dx, w)
		if err != nil {
			m.err = err
			return
		}
		// A rejected update keeps the previous geometry; stay where it was.
		if g != prev {
			m.px += dx
		}
		m.status = fmt.Sprintf("%s edge: %d columns from column %d", m.edge, g.Span, g.Offset)
	}
}

// commit ends the open gesture and applies its date change.
func (m *viewModel) commit() {
	var (
		change event.DateChange
		err    error
	)
	switch m.mode {
	case interact.SessionDrag:
		change, err = m.manager.EndDrag(m.active, m.px, float64(m.cellWidth))
	case interact.SessionResize:
		change, err = m.manager.EndResize(m.active)
	}
	if err != nil {
		m.abort()
		m.err = err
		return
	}
	m.mode, m.px = interact.SessionNone, 0
	if !change.Shifted() {
		m.status = "no change"
		return
	}

	events, ok := event.ApplyTo(m.events, change)
	if !ok {
		m.err = fmt.Errorf("event %s not found", change.Event.ID)
		return
	}
	result, err := m.relayout(events)
	if err != nil {
		m.err = err
		return
	}
	m.events, m.result = events, result
	m.dirty = true
	m.changes++
	m.reselect(change.Event.ID)
	m.status = fmt.Sprintf("%s now %s", label(change.Event), dateRange(change.Apply()))
	m.logger.Debug("gesture committed", "id", change.Event.ID, "start", change.NewStart, "end", change.NewEnd)
}

// abort cancels the open gesture, restoring the committed layout.
func (m *viewModel) abort() {
	switch m.mode {
	case interact.SessionDrag:
		m.err = m.manager.AbortDrag(m.active)
	case interact.SessionResize:
		_, m.err = m.manager.AbortResize(m.active)
	}
	m.mode, m.px = interact.SessionNone, 0
	m.status = "cancelled"
}

func (m *viewModel) save() {
	if m.output == "" {
		m.status = "no --output file"
		return
	}
	if err := yio.ExportEventsJSON(m.events, m.output); err != nil {
		m.err = err
		return
	}
	m.dirty = false
	m.changes = 0
	m.status = "saved " + m.output
}

// =============================================================================
// Selection
// =============================================================================

func (m viewModel) pageLayout() pipeline.PageLayout {
	if m.page >= len(m.result.Pages) {
		return pipeline.PageLayout{}
	}
	return m.result.Pages[m.page]
}

func (m viewModel) bars() []layout.PositionedEvent {
	rows := m.pageLayout().Rows
	if m.row >= len(rows) {
		return nil
	}
	return rowBars(rows[m.row])
}

func (m viewModel) selected() (layout.PositionedEvent, bool) {
	bars := m.bars()
	if m.bar >= len(bars) {
		return layout.PositionedEvent{}, false
	}
	return bars[m.bar], true
}

// reselect moves the cursor to the bar of id on the current page, if any.
func (m *viewModel) reselect(id string) {
	m.row, m.bar = 0, 0
	for r, row := range m.pageLayout().Rows {
		for b, p := range rowBars(row) {
			if p.Event.ID == id {
				m.row, m.bar = r, b
				return
			}
		}
	}
}

// resize derives the column width from the terminal width.
func (m *viewModel) resize() {
	cols := len(m.pageLayout().Months)
	if m.width == 0 || cols == 0 || m.mode != interact.SessionNone {
		return
	}
	w, err := interact.ColumnWidth(float64(m.width), cols)
	if err != nil {
		return
	}
	m.cellWidth = max(int(w), minCellWidth)
}

// =============================================================================
// View
// =============================================================================

func (m viewModel) View() string {
	var b strings.Builder

	pl := m.pageLayout()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%d", m.result.Year)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  page %d/%d", pl.Index+1, m.result.PageCount)))
	b.WriteString("\n\n")

	v := pageView{cellWidth: m.cellWidth}
	if p, ok := m.selected(); ok {
		v.selected = p.Event.ID
	}
	if m.mode == interact.SessionResize {
		if g, ok := m.manager.Tentative(m.active); ok {
			v.override = map[string]interact.Geometry{m.active: g}
		}
	}
	v.gesture = m.mode != interact.SessionNone
	b.WriteString(renderPage(pl, v))
	b.WriteString("\n")

	if p, ok := m.selected(); ok {
		b.WriteString(StyleValue.Render(label(p.Event)))
		b.WriteString(StyleDim.Render("  " + dateRange(p.Event)))
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.status)
	}
	b.WriteString("\n\n")

	help := "←/→ select  ↑/↓ row  n/p page  d drag  [ ] resize  w save  q quit"
	if m.mode != interact.SessionNone {
		help = "←/→ move  enter commit  esc abort"
	}
	b.WriteString(StyleDim.Render(help))
	if m.dirty {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  %d unsaved", m.changes)))
	}
	return b.String()
}

func label(e event.Event) string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

func dateRange(e event.Event) string {
	const dateFmt = "Jan 2 2006"
	if !e.HasEnd() {
		return e.Start.Format(dateFmt)
	}
	return e.Start.Format(dateFmt) + " – " + e.End.Format(dateFmt)
}
