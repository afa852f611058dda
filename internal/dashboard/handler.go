// Package dashboard serves the sky chart page and its JSON API.
package dashboard

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/chart"
	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// Query parameter names. Filter parameters may repeat.
const (
	ParamTypes               = "types"
	ParamConstellations      = "constellations"
	ParamSeasons             = "seasons"
	ParamStarLabels          = "star_labels"
	ParamConstellationLines  = "constellation_lines"
	ParamConstellationLabels = "constellation_labels"
)

var errNoDataset = errors.New("catalog not loaded")

// DatasetProvider returns the current catalog snapshot, or nil if none has
// been loaded.
type DatasetProvider interface {
	Get() *catalog.Dataset
}

// Handler serves the dashboard routes.
type Handler struct {
	data     DatasetProvider
	renderer *chart.Renderer
	styles   *domain.StyleTable
	assets   fs.FS
	logger   *slog.Logger
}

// NewHandler creates a dashboard handler. assets must contain index.html and
// the files served under /static/.
func NewHandler(data DatasetProvider, renderer *chart.Renderer, styles *domain.StyleTable, assets fs.FS, logger *slog.Logger) *Handler {
	return &Handler{
		data:     data,
		renderer: renderer,
		styles:   styles,
		assets:   assets,
		logger:   logger.With("component", "dashboard"),
	}
}

// Register adds the dashboard routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(h.assets)))
	mux.HandleFunc("GET /api/options", h.handleOptions)
	mux.HandleFunc("GET /api/chart", h.handleChart)
	mux.HandleFunc("GET /api/count", h.handleCount)
	mux.HandleFunc("GET /api/objects", h.handleObjects)
	mux.HandleFunc("GET /api/stats", h.handleStats)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.assets, "index.html")
}

func (h *Handler) handleOptions(w http.ResponseWriter, _ *http.Request) {
	ds := h.data.Get()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, errNoDataset)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, domain.BuildFilterOptions(ds.Objects, h.styles))
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Get()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, errNoDataset)
		return
	}
	q := r.URL.Query()
	opts, err := parseOptions(q)
	if err != nil {
		h.logger.Debug("rejected chart request", "query", r.URL.RawQuery, "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fig := h.renderer.Render(r.Context(), ds, parseSelection(q), opts)
	h.logger.Debug("chart rendered", "generation", ds.Generation, "traces", len(fig.Data))
	sharedobs.WriteJSON(w, http.StatusOK, fig)
}

// CountResponse is the body of /api/count.
type CountResponse struct {
	Shown int    `json:"shown"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Get()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, errNoDataset)
		return
	}
	shown := len(domain.Filter(ds.Objects, parseSelection(r.URL.Query())))
	sharedobs.WriteJSON(w, http.StatusOK, CountResponse{
		Shown: shown,
		Total: ds.Len(),
		Text:  domain.CountSummary(shown, ds.Len()),
	})
}

func (h *Handler) handleObjects(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Get()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, errNoDataset)
		return
	}
	objects := domain.Filter(ds.Objects, parseSelection(r.URL.Query()))
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"objects": objects})
}

// StatsResponse is the body of /api/stats.
type StatsResponse struct {
	Source             string        `json:"source"`
	LoadedAt           time.Time     `json:"loaded_at"`
	Generation         uint64        `json:"generation"`
	Total              int           `json:"total"`
	InvalidCoordinates int           `json:"invalid_coordinates"`
	ByType             []chart.Count `json:"by_type"`
	ByConstellation    []chart.Count `json:"by_constellation"`
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	ds := h.data.Get()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, errNoDataset)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, StatsResponse{
		Source:             ds.Source,
		LoadedAt:           ds.LoadedAt,
		Generation:         ds.Generation,
		Total:              ds.Len(),
		InvalidCoordinates: ds.InvalidCoordinates,
		ByType:             chart.CountByType(ds.Objects),
		ByConstellation:    chart.CountByConstellation(ds.Objects),
	})
}

// parseSelection maps absent filter parameters to "everything" and keeps
// present ones as explicit sets, so ?types= selects no types.
func parseSelection(q url.Values) domain.Selection {
	return domain.Selection{
		Types:          listParam(q, ParamTypes),
		Constellations: listParam(q, ParamConstellations),
		Seasons:        listParam(q, ParamSeasons),
	}
}

func listParam(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseOptions(q url.Values) (chart.Options, error) {
	var opts chart.Options
	var err error
	if opts.ShowStarLabels, err = boolParam(q, ParamStarLabels); err != nil {
		return opts, err
	}
	if opts.ShowConstellationLines, err = boolParam(q, ParamConstellationLines); err != nil {
		return opts, err
	}
	if opts.ShowConstellationLabels, err = boolParam(q, ParamConstellationLabels); err != nil {
		return opts, err
	}
	return opts, nil
}

// boolParam defaults to true when the parameter is absent or empty.
func boolParam(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: must be a boolean", key, v)
	}
	return b, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
