package interact

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/observability"
)

// Edge identifies the resize handle a gesture grabbed.
type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// ParseEdge converts "left" or "right" into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch Edge(s) {
	case EdgeLeft, EdgeRight:
		return Edge(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid edge %q (must be left or right)", s)
}

// SessionKind reports which session, if any, an event holds.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionResize
	SessionDrag
)

func (k SessionKind) String() string {
	switch k {
	case SessionResize:
		return observability.SessionResize
	case SessionDrag:
		return observability.SessionDrag
	}
	return "none"
}

// Geometry is the column placement of a bar.
type Geometry struct {
	Offset int `json:"offset"`
	Span   int `json:"span"`
}

// Displacement is a candidate drag position relative to the gesture origin,
// in pixels. Y is always zero: drags are horizontal only.
type Displacement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragValidator decides whether a candidate drag displacement is allowed.
type DragValidator func(Displacement) bool

// ResizeValidator decides whether a candidate resize geometry is allowed.
type ResizeValidator func(Geometry) bool

// Option configures a [Manager].
type Option func(*Manager)

// WithDragValidator gates drag updates. A nil validator allows everything.
func WithDragValidator(v DragValidator) Option {
	return func(m *Manager) { m.validateDrag = v }
}

// WithResizeValidator gates resize updates. A nil validator allows everything.
func WithResizeValidator(v ResizeValidator) Option {
	return func(m *Manager) { m.validateResize = v }
}

// WithLogger sets the logger used for session debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

type resizeSession struct {
	event     event.Event
	edge      Edge
	original  Geometry
	tentative Geometry
}

type dragSession struct {
	event event.Event
}

// Manager tracks the open resize and drag sessions.
type Manager struct {
	resizes        map[string]*resizeSession
	drags          map[string]*dragSession
	validateDrag   DragValidator
	validateResize ResizeValidator
	logger         *log.Logger
}

// NewManager returns a Manager with no open sessions.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		resizes: make(map[string]*resizeSession),
		drags:   make(map[string]*dragSession),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resizing reports whether any resize session is open.
func (m *Manager) Resizing() bool { return len(m.resizes) > 0 }

// Active reports the session held by the event with the given ID.
func (m *Manager) Active(id string) SessionKind {
	if _, ok := m.resizes[id]; ok {
		return SessionResize
	}
	if _, ok := m.drags[id]; ok {
		return SessionDrag
	}
	return SessionNone
}

// Sessions returns the number of open sessions of both kinds.
func (m *Manager) Sessions() int { return len(m.resizes) + len(m.drags) }

// checkIdle fails when ev already holds a session or cannot be keyed.
func (m *Manager) checkIdle(ev event.Event) error {
	if err := errors.ValidateEventID(ev.ID); err != nil {
		return err
	}
	if kind := m.Active(ev.ID); kind != SessionNone {
		return errors.InvalidState("event %q already has an open %s session", ev.ID, kind)
	}
	return nil
}

// columns converts a pixel distance to whole columns, rounding halves away
// from zero.
func columns(px, columnWidth float64) (int, error) {
	if columnWidth <= 0 || math.IsNaN(columnWidth) || math.IsInf(columnWidth, 0) {
		return 0, errors.Configuration("invalid column width %v (must be > 0)", columnWidth)
	}
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid pixel distance %v", px)
	}
	q := math.Round(px / columnWidth)
	if math.IsNaN(q) || math.Abs(q) > math.MaxInt32 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "pixel distance %v spans too many columns", px)
	}
	return int(q), nil
}
