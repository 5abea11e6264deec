package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// SectorService computes category results on demand.
type SectorService interface {
	sharedobs.ReadinessChecker
	Categories() []domain.Category
	Process(ctx context.Context, category domain.Category) (domain.Result, error)
	ProcessAll(ctx context.Context) ([]domain.Result, error)
}

// Server exposes the sector API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	svc        SectorService
	farm       domain.Farm
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 routes.
func NewServer(addr string, svc SectorService, farm domain.Farm, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		farm:   farm,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/categories/{category}/sectors", s.handleSectors)
	mux.HandleFunc("GET /api/v1/categories/{category}/geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /api/v1/categories/{category}/bounds", s.handleBounds)
	mux.HandleFunc("GET /api/v1/farm", s.handleFarm)
	mux.HandleFunc("GET /api/v1/summary", s.handleSummary)
	mux.HandleFunc("GET /api/v1/styles", s.handleStyles)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type sectorsResponse struct {
	domain.Result
	Error string `json:"error,omitempty"`
}

// handleSectors returns a category's sectors and map polygons. Polygons stay
// in source order; sort only reorders the sector list.
func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	category, ok := s.category(w, r)
	if !ok {
		return
	}
	key, err := domain.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.svc.Process(r.Context(), category)
	if err != nil {
		s.logger.Warn("sector request degraded to empty set", "category", category, "error", err)
		sharedobs.WriteJSON(w, http.StatusBadGateway, sectorsResponse{Result: domain.EmptyResult(category), Error: err.Error()})
		return
	}
	res.Sectors = domain.SortSectors(res.Sectors, key)
	sharedobs.WriteJSON(w, http.StatusOK, sectorsResponse{Result: res})
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	category, ok := s.category(w, r)
	if !ok {
		return
	}

	status := http.StatusOK
	res, err := s.svc.Process(r.Context(), category)
	if err != nil {
		s.logger.Warn("geojson request degraded to empty set", "category", category, "error", err)
		status = http.StatusBadGateway
		res = domain.EmptyResult(category)
	}

	fc, err := domain.FeatureCollection(res)
	if err != nil {
		s.logger.Error("render geojson failed", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // best-effort response body
}

type boundsResponse struct {
	Category domain.Category `json:"category"`
	Bounds   domain.Bound    `json:"bounds"`
	Error    string          `json:"error,omitempty"`
}

// handleBounds returns the box framing the farm and a category's polygons.
func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	category, ok := s.category(w, r)
	if !ok {
		return
	}

	resp := boundsResponse{Category: category}
	status := http.StatusOK
	res, err := s.svc.Process(r.Context(), category)
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusBadGateway
		res = domain.EmptyResult(category)
	}

	rings := make([][]domain.Coordinate, 0, len(res.Polygons)+1)
	rings = append(rings, s.farm.Boundary)
	for _, p := range res.Polygons {
		rings = append(rings, p.Coordinates)
	}
	b, found := domain.Bounds(rings...)
	if !found {
		c := s.farm.Center()
		b = domain.Bound{SouthWest: c, NorthEast: c}
	}
	resp.Bounds = b
	sharedobs.WriteJSON(w, status, resp)
}

type farmResponse struct {
	Name          string              `json:"name"`
	Boundary      []domain.Coordinate `json:"boundary"`
	Center        domain.Coordinate   `json:"center"`
	Area          float64             `json:"area"`
	BoundaryColor string              `json:"boundaryColor"`
}

func (s *Server) handleFarm(w http.ResponseWriter, _ *http.Request) {
	boundary := s.farm.Boundary
	if boundary == nil {
		boundary = []domain.Coordinate{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, farmResponse{
		Name:          s.farm.Name,
		Boundary:      boundary,
		Center:        s.farm.Center(),
		Area:          s.farm.AreaHectares(),
		BoundaryColor: domain.BoundaryColor,
	})
}

type summaryResponse struct {
	domain.FarmSummary
	Error string `json:"error,omitempty"`
}

// handleSummary aggregates every enabled category. Failed categories are
// reported with zero sectors and a 502 status.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	results, err := s.svc.ProcessAll(r.Context())
	resp := summaryResponse{FarmSummary: domain.Summarize(s.farm, results)}
	status := http.StatusOK
	if err != nil {
		s.logger.Warn("summary degraded", "error", err)
		resp.Error = err.Error()
		status = http.StatusBadGateway
	}
	sharedobs.WriteJSON(w, status, resp)
}

type stylesResponse struct {
	BoundaryColor string              `json:"boundaryColor"`
	Styles        []domain.StyleEntry `json:"styles"`
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, stylesResponse{
		BoundaryColor: domain.BoundaryColor,
		Styles:        domain.StyleTable(),
	})
}

// category resolves the {category} path value, writing a 404 for unknown or
// disabled categories.
func (s *Server) category(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	c, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return "", false
	}
	if !slices.Contains(s.svc.Categories(), c) {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "category " + string(c) + " is not enabled"})
		return "", false
	}
	return c, true
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
