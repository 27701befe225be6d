package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/yeargrid/pkg/buildinfo"
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/event"
	"github.com/matzehuels/yeargrid/pkg/grid"
	"github.com/matzehuels/yeargrid/pkg/interact"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// gridOptions builds pipeline options for a GET request from the URL year
// and the page_size query parameter.
func (s *Server) gridOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.PipelineOptions()
	opts.Now = s.now()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return opts, errors.New(errors.ErrCodeInvalidInput, "invalid year %q", chi.URLParam(r, "year"))
	}
	opts.Year = year

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid page_size %q", v)
		}
		opts.PageSize = n
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

type monthsResponse struct {
	Year      int              `json:"year"`
	Months    []grid.MonthCell `json:"months"`
	PageCount int              `json:"page_count"`
	Current   int              `json:"current_page"`
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	opts, err := s.gridOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	months, pages, err := pipeline.BuildPages(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, monthsResponse{
		Year:      opts.Year,
		Months:    months,
		PageCount: len(pages),
		Current:   currentPage(months, opts.PageSize),
	})
}

// currentPage returns the page holding the current month, or 0 when the
// year is not the current one.
func currentPage(months []grid.MonthCell, pageSize int) int {
	for i, m := range months {
		if m.IsCurrent {
			p, _ := grid.PageOf(i, pageSize)
			return p
		}
	}
	return 0
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	opts, err := s.gridOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid page %q", chi.URLParam(r, "page")))
		return
	}
	_, pages, err := pipeline.BuildPages(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := pages.Page(index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.PipelineOptions()
	if err := decode(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// columnWidth resolves the column width of a gesture request, preferring an
// explicit width over container width / grid length.
func (s *Server) columnWidth(explicit, container float64, gridLength int) (float64, error) {
	if explicit != 0 {
		return explicit, nil
	}
	if container == 0 {
		container = s.cfg.ContainerWidth
	}
	if gridLength == 0 {
		gridLength = grid.MonthsPerYear
	}
	return interact.ColumnWidth(container, gridLength)
}

type dragRequest struct {
	Event             event.Event `json:"event"`
	PixelDisplacement float64     `json:"pixel_displacement"`
	ColumnWidth       float64     `json:"column_width,omitempty"`
	ContainerWidth    float64     `json:"container_width,omitempty"`
	GridLength        int         `json:"grid_length,omitempty"`
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	width, err := s.columnWidth(req.ColumnWidth, req.ContainerWidth, req.GridLength)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m := interact.NewManager(interact.WithLogger(s.logger))
	if err := m.BeginDrag(req.Event); err != nil {
		s.writeError(w, r, err)
		return
	}
	change, err := m.EndDrag(req.Event.ID, req.PixelDisplacement, width)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

type resizeRequest struct {
	Event          event.Event `json:"event"`
	Edge           string      `json:"edge"`
	Offset         int         `json:"offset"`
	Span           int         `json:"span"`
	PixelDelta     float64     `json:"pixel_delta"`
	ColumnWidth    float64     `json:"column_width,omitempty"`
	ContainerWidth float64     `json:"container_width,omitempty"`
	GridLength     int         `json:"grid_length,omitempty"`
}

type resizeResponse struct {
	Change   event.DateChange  `json:"change"`
	Geometry interact.Geometry `json:"geometry"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	edge, err := interact.ParseEdge(req.Edge)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	width, err := s.columnWidth(req.ColumnWidth, req.ContainerWidth, req.GridLength)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	m := interact.NewManager(interact.WithLogger(s.logger))
	if err := m.BeginResize(req.Event, edge, req.Offset, req.Span); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := m.UpdateResize(req.Event.ID, req.PixelDelta, width)
	if err != nil {
		_, _ = m.AbortResize(req.Event.ID)
		s.writeError(w, r, err)
		return
	}
	change, err := m.EndResize(req.Event.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resizeResponse{Change: change, Geometry: g})
}

type dropRequest struct {
	Event  event.Event `json:"event"`
	Year   int         `json:"year"`
	Column int         `json:"column"`
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	now := s.now()
	if req.Year == 0 {
		req.Year = now.Year()
	}
	cells, err := grid.BuildYear(req.Year, now, s.cfg.YearEndMonths)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	change, err := interact.DropOnMonth(req.Event, cells, req.Column)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}
