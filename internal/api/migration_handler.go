package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/interviewer/backend/internal/migration"
)

// ── Request / Response types ────────────────────────────────────────────────

// MigrationEvent is one line of the NDJSON stream written by POST /migration.
// Progress events come first; the last line carries the result.
type MigrationEvent struct {
	Type     string              `json:"type" example:"progress"`
	Progress *migration.Progress `json:"progress,omitempty"`
	Result   *migration.Result   `json:"result,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// migrationStatus reports which backend serves statistics.
// @Summary      Migration status
// @Tags         Migration
// @Produce      json
// @Success      200  {object}  migration.Status
// @Failure      500  {object}  map[string]string
// @Router       /migration [get]
func (h *Handler) migrationStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.migration.Status(r.Context())
	if h.handleStoreError(w, err, "migration") {
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// migrate moves content and statistics into the relational store.
// @Summary      Run the migration
// @Description  Streams progress events as newline-delimited JSON. The final line holds the result.
// @Tags         Migration
// @Produce      application/x-ndjson
// @Success      200  {object}  MigrationEvent
// @Router       /migration [post]
func (h *Handler) migrate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	emit := func(ev MigrationEvent) {
		if err := enc.Encode(ev); err != nil {
			h.logger.Warn("migration stream write failed", "error", err)
			return
		}
		rc.Flush()
	}

	res := h.migration.Migrate(r.Context(), func(p migration.Progress) {
		emit(MigrationEvent{Type: "progress", Progress: &p})
	})
	emit(MigrationEvent{Type: "result", Result: res})
}

// rollbackMigration empties the relational store and switches back.
// @Summary      Roll back the migration
// @Tags         Migration
// @Produce      json
// @Success      200  {object}  migration.Status
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /migration/rollback [post]
func (h *Handler) rollbackMigration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.handleStoreError(w, h.migration.Rollback(ctx), "migration") {
		return
	}
	st, err := h.migration.Status(ctx)
	if h.handleStoreError(w, err, "migration") {
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// exportDatabase downloads a snapshot of the relational store.
// @Summary      Export the relational store
// @Tags         Migration
// @Produce      application/octet-stream
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /migration/export [get]
func (h *Handler) exportDatabase(w http.ResponseWriter, r *http.Request) {
	data, err := h.migration.Export(r.Context())
	if h.handleStoreError(w, err, "database") {
		return
	}
	filename := fmt.Sprintf("interviewer-%s.db", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// importDatabase restores a snapshot produced by the export endpoint.
// @Summary      Import a snapshot
// @Tags         Migration
// @Accept       application/octet-stream
// @Produce      json
// @Success      200  {object}  migration.Status
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /migration/import [post]
func (h *Handler) importDatabase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "snapshot too large or unreadable")
		return
	}
	if h.handleStoreError(w, h.migration.Import(ctx, data), "snapshot") {
		return
	}
	st, err := h.migration.Status(ctx)
	if h.handleStoreError(w, err, "migration") {
		return
	}
	respondJSON(w, http.StatusOK, st)
}
