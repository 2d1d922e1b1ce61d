package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/interviewer/backend/internal/domain/interview"
	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/metrics"
	"github.com/interviewer/backend/internal/migration"
	"github.com/interviewer/backend/internal/service"
	"github.com/interviewer/backend/internal/store"
)

// maxSnapshotBytes bounds the body of a snapshot import.
const maxSnapshotBytes = 256 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	store      *store.Adapter
	interviews *service.InterviewService
	migration  *migration.Engine
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(a *store.Adapter, interviews *service.InterviewService, engine *migration.Engine, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		store:      a,
		interviews: interviews,
		migration:  engine,
		metrics:    m,
		logger:     log,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pathInt parses a numeric path segment. On failure it writes a 400 and
// returns false.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

// handleStoreError checks for known errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, statistics.ErrInvalidScore):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interview.ErrNoChapters), errors.Is(err, interview.ErrEmptyPool):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, interview.ErrNotActive), errors.Is(err, migration.ErrInProgress):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidSnapshot):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
