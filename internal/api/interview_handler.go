package api

import (
	"errors"
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartInterviewRequest struct {
	GuideName     string `json:"guideName" example:"Go Interview Guide"`
	ChapterFilter *int   `json:"chapterFilter,omitempty" example:"2"`
}

func (r *StartInterviewRequest) Validate() error {
	if r.GuideName == "" {
		return errors.New("guideName is required")
	}
	return nil
}

type SubmitAnswerRequest struct {
	Score *float64 `json:"score" example:"3"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.Score == nil {
		return errors.New("score is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startInterview opens a weighted interview session over a guide.
// @Summary      Start an interview
// @Description  Builds the weighted question pool and draws the first question.
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Param        body  body      StartInterviewRequest  true  "Guide and optional chapter"
// @Success      201   {object}  service.Snapshot
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string  "no chapter matches or empty pool"
// @Router       /interviews [post]
func (h *Handler) startInterview(w http.ResponseWriter, r *http.Request) {
	var req StartInterviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	snap, err := h.interviews.Start(r.Context(), req.GuideName, req.ChapterFilter)
	if h.handleStoreError(w, err, "guide") {
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

// getInterview returns the current state of a session.
// @Summary      Get an interview
// @Tags         Interviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Snapshot
// @Failure      404        {object}  map[string]string
// @Router       /interviews/{sessionID} [get]
func (h *Handler) getInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Get(r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// submitAnswer scores the current question and stores the score.
// @Summary      Answer the current question
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Self-assessed score, 0 to 5"
// @Success      200        {object}  service.Snapshot
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session not active"
// @Router       /interviews/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	snap, err := h.interviews.Answer(r.Context(), r.PathValue("sessionID"), *req.Score)
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// nextQuestion advances to the next question.
// @Summary      Next question
// @Description  When no question is left the session becomes idle.
// @Tags         Interviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Snapshot
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /interviews/{sessionID}/next [post]
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Next(r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// pauseInterview is accepted and does nothing.
// @Summary      Pause an interview (no-op)
// @Tags         Interviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Snapshot
// @Failure      404        {object}  map[string]string
// @Router       /interviews/{sessionID}/pause [post]
func (h *Handler) pauseInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Pause(r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// resumeInterview is accepted and does nothing.
// @Summary      Resume an interview (no-op)
// @Tags         Interviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Snapshot
// @Failure      404        {object}  map[string]string
// @Router       /interviews/{sessionID}/resume [post]
func (h *Handler) resumeInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Resume(r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// exitInterview ends a session.
// @Summary      Exit an interview
// @Tags         Interviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  service.Snapshot
// @Failure      404        {object}  map[string]string
// @Router       /interviews/{sessionID} [delete]
func (h *Handler) exitInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Exit(r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
