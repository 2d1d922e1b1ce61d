package api

import "net/http"

// RegisterRoutes mounts every API endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Guides
	mux.HandleFunc("GET /guides", h.listGuides)
	mux.HandleFunc("GET /guides/{guideName}", h.getGuide)
	mux.HandleFunc("GET /guides/{guideName}/weak-questions", h.weakQuestions)

	// Statistics
	mux.HandleFunc("GET /guides/{guideName}/statistics", h.getStatistics)
	mux.HandleFunc("POST /guides/{guideName}/statistics", h.initializeStatistics)
	mux.HandleFunc("DELETE /guides/{guideName}/statistics", h.resetPosition)
	mux.HandleFunc("DELETE /guides/{guideName}/chapters/{chapterNumber}/statistics", h.resetChapter)
	mux.HandleFunc("PUT /guides/{guideName}/chapters/{chapterNumber}/questions/{questionNumber}/score", h.updateScore)
	mux.HandleFunc("DELETE /guides/{guideName}/chapters/{chapterNumber}/questions/{questionNumber}/score", h.resetQuestion)

	// Interviews
	mux.HandleFunc("POST /interviews", h.startInterview)
	mux.HandleFunc("GET /interviews/{sessionID}", h.getInterview)
	mux.HandleFunc("DELETE /interviews/{sessionID}", h.exitInterview)
	mux.HandleFunc("POST /interviews/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /interviews/{sessionID}/next", h.nextQuestion)
	mux.HandleFunc("POST /interviews/{sessionID}/pause", h.pauseInterview)
	mux.HandleFunc("POST /interviews/{sessionID}/resume", h.resumeInterview)

	// Migration
	mux.HandleFunc("GET /migration", h.migrationStatus)
	mux.HandleFunc("POST /migration", h.migrate)
	mux.HandleFunc("POST /migration/rollback", h.rollbackMigration)
	mux.HandleFunc("GET /migration/export", h.exportDatabase)
	mux.HandleFunc("POST /migration/import", h.importDatabase)
}

// health reports liveness together with the serving backend.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	backend, err := h.store.Backend(r.Context())
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": backend})
}
