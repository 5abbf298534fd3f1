package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/logger"
	mapuc "github.com/kailas-cloud/plantdex/internal/usecase/gardenmap"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
	plantuc "github.com/kailas-cloud/plantdex/internal/usecase/plant"
	plantinguc "github.com/kailas-cloud/plantdex/internal/usecase/planting"
)

// retryAfterSeconds is sent with 503 responses.
const retryAfterSeconds = "1"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the plantdex HTTP API.
type Server struct {
	plants        *plantuc.Service
	plantings     *plantinguc.Service
	maps          *mapuc.Service
	health        *healthuc.Service
	pagination    PaginationConfig
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	plants *plantuc.Service,
	plantings *plantinguc.Service,
	maps *mapuc.Service,
	health *healthuc.Service,
	pagination PaginationConfig,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		plants:     plants,
		plantings:  plantings,
		maps:       maps,
		health:     health,
		pagination: pagination,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		invalidInputHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		storeUnavailableHandler,
		sentinelHandler(domain.ErrQueryExecution, http.StatusInternalServerError, ErrorCodeQueryFailed),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/plants", s.FindPlants)
		r.Get("/plants/search", s.SearchPlants)
		r.Get("/plants/{plant_id}", s.GetPlant)

		r.Get("/plantings", s.FindPlantings)
		r.Post("/plantings", s.CreatePlanting)
		r.Patch("/plantings/{planting_id}", s.UpdatePlanting)
		r.Delete("/plantings/{planting_id}", s.DeletePlanting)

		r.Get("/maps", s.FindMaps)
		r.Post("/maps", s.CreateMap)
		r.Get("/maps/{map_id}", s.GetMap)
	})
}

// FindPlants handles GET /api/plants.
func (s *Server) FindPlants(w http.ResponseWriter, r *http.Request) {
	params, err := s.pageParameters(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	name, err := optionalString(r, "name")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.plants.Find(r.Context(), name, params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SearchPlants handles GET /api/plants/search.
func (s *Server) SearchPlants(w http.ResponseWriter, r *http.Request) {
	params, err := s.pageParameters(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	term, err := optionalString(r, "name_or_term")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	raw := ""
	if term != nil {
		raw = *term
	}

	res, err := s.plants.Search(r.Context(), raw, params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetPlant handles GET /api/plants/{plant_id}.
func (s *Server) GetPlant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "plant_id")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	p, err := s.plants.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// FindPlantings handles GET /api/plantings.
func (s *Server) FindPlantings(w http.ResponseWriter, r *http.Request) {
	params, err := plantingSearchParameters(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.plantings.Find(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreatePlanting handles POST /api/plantings.
func (s *Server) CreatePlanting(w http.ResponseWriter, r *http.Request) {
	var req CreatePlantingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p, err := s.plantings.Create(r.Context(), req.Draft())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePlanting handles PATCH /api/plantings/{planting_id}.
func (s *Server) UpdatePlanting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planting_id")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	var req UpdatePlantingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	p, err := s.plantings.Update(r.Context(), id, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePlanting handles DELETE /api/plantings/{planting_id}.
func (s *Server) DeletePlanting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planting_id")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.plantings.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindMaps handles GET /api/maps.
func (s *Server) FindMaps(w http.ResponseWriter, r *http.Request) {
	pp, err := s.pageParameters(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	params, err := mapSearchParameters(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.maps.Find(r.Context(), params, pp)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateMap handles POST /api/maps.
func (s *Server) CreateMap(w http.ResponseWriter, r *http.Request) {
	var req CreateMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	m, err := s.maps.Create(r.Context(), req.Draft())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// GetMap handles GET /api/maps/{map_id}.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "map_id")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	m, err := s.maps.FindByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// invalidInputHandler echoes the offending field; it carries no internals.
func invalidInputHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	msg := domain.ErrInvalidInput.Error()
	var iie *domain.InvalidInputError
	if errors.As(err, &iie) {
		msg = iie.Error()
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
	return true
}

// storeUnavailableHandler tells clients to retry shortly.
func storeUnavailableHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		return false
	}
	w.Header().Set("Retry-After", retryAfterSeconds)
	writeError(w, http.StatusServiceUnavailable, ErrorCodeStoreUnavailable, domain.ErrStoreUnavailable.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The response message is the sentinel's, never the wrapped chain.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		log.Debug("request rejected", zap.Error(err))
	case errors.Is(err, domain.ErrQueryExecution):
		log.Error("query failed", zap.Error(err))
	default:
		log.Warn("domain error", zap.Error(err))
	}
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
