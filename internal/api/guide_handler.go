package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/interviewer/backend/internal/domain/statistics"
)

// ── Request / Response types ────────────────────────────────────────────────

type UpdateScoreRequest struct {
	Score *float64 `json:"score" example:"4"`
}

func (r *UpdateScoreRequest) Validate() error {
	if r.Score == nil {
		return errors.New("score is required")
	}
	if math.IsNaN(*r.Score) || math.IsInf(*r.Score, 0) {
		return statistics.ErrInvalidScore
	}
	return nil
}

type WeakQuestionsResponse struct {
	GuideName string                    `json:"guideName" example:"Go Interview Guide"`
	Threshold int                       `json:"threshold" example:"3"`
	Questions []statistics.WeakQuestion `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listGuides returns the guide catalogue.
// @Summary      List guides
// @Description  Returns every known guide with its headline statistics.
// @Tags         Guides
// @Produce      json
// @Success      200  {array}   guide.Summary
// @Failure      500  {object}  map[string]string
// @Router       /guides [get]
func (h *Handler) listGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.store.ListGuides(r.Context())
	if h.handleStoreError(w, err, "guides") {
		return
	}
	respondJSON(w, http.StatusOK, guides)
}

// getGuide returns one guide's full content.
// @Summary      Get a guide
// @Tags         Guides
// @Produce      json
// @Param        guideName  path      string  true  "Guide name"
// @Success      200        {object}  guide.Guide
// @Failure      404        {object}  map[string]string
// @Router       /guides/{guideName} [get]
func (h *Handler) getGuide(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.GetGuide(r.Context(), r.PathValue("guideName"))
	if h.handleStoreError(w, err, "guide") {
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// getStatistics returns the statistics tree of a guide.
// @Summary      Get guide statistics
// @Tags         Statistics
// @Produce      json
// @Param        guideName  path      string  true  "Guide name"
// @Success      200        {object}  statistics.PositionStatistic
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /guides/{guideName}/statistics [get]
func (h *Handler) getStatistics(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetStatistics(r.Context(), r.PathValue("guideName"))
	if h.handleStoreError(w, err, "statistics") {
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// initializeStatistics creates a zeroed statistics tree for a guide.
// @Summary      Initialize guide statistics
// @Description  Creates zeroed statistics for the guide. Existing scores are kept.
// @Tags         Statistics
// @Produce      json
// @Param        guideName  path      string  true  "Guide name"
// @Success      201        {object}  statistics.PositionStatistic
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /guides/{guideName}/statistics [post]
func (h *Handler) initializeStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	g, err := h.store.GetGuide(ctx, r.PathValue("guideName"))
	if h.handleStoreError(w, err, "guide") {
		return
	}
	p, err := h.store.InitializeStatistics(ctx, g)
	if h.handleStoreError(w, err, "statistics") {
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// resetPosition clears every score of a guide.
// @Summary      Reset guide statistics
// @Tags         Statistics
// @Param        guideName  path  string  true  "Guide name"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /guides/{guideName}/statistics [delete]
func (h *Handler) resetPosition(w http.ResponseWriter, r *http.Request) {
	err := h.store.ResetPosition(r.Context(), r.PathValue("guideName"))
	if h.handleStoreError(w, err, "guide") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resetChapter clears every score of one chapter.
// @Summary      Reset chapter statistics
// @Tags         Statistics
// @Param        guideName      path  string  true  "Guide name"
// @Param        chapterNumber  path  int     true  "Chapter number"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /guides/{guideName}/chapters/{chapterNumber}/statistics [delete]
func (h *Handler) resetChapter(w http.ResponseWriter, r *http.Request) {
	chapter, ok := pathInt(w, r, "chapterNumber")
	if !ok {
		return
	}
	err := h.store.ResetChapter(r.Context(), r.PathValue("guideName"), chapter)
	if h.handleStoreError(w, err, "chapter") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateScore records a self-assessed score for one question.
// @Summary      Score a question
// @Description  Scores are integers from 0 to 5.
// @Tags         Statistics
// @Accept       json
// @Produce      json
// @Param        guideName       path      string              true  "Guide name"
// @Param        chapterNumber   path      int                 true  "Chapter number"
// @Param        questionNumber  path      int                 true  "Question number"
// @Param        body            body      UpdateScoreRequest  true  "Score"
// @Success      200             {object}  statistics.PositionStatistic
// @Failure      400             {object}  map[string]string
// @Failure      404             {object}  map[string]string
// @Router       /guides/{guideName}/chapters/{chapterNumber}/questions/{questionNumber}/score [put]
func (h *Handler) updateScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chapter, ok := pathInt(w, r, "chapterNumber")
	if !ok {
		return
	}
	question, ok := pathInt(w, r, "questionNumber")
	if !ok {
		return
	}
	var req UpdateScoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	score, err := statistics.ParseScore(*req.Score)
	if h.handleStoreError(w, err, "score") {
		return
	}

	name := r.PathValue("guideName")
	if h.handleStoreError(w, h.store.UpdateScore(ctx, name, chapter, question, score), "question") {
		return
	}
	p, err := h.store.GetStatistics(ctx, name)
	if h.handleStoreError(w, err, "statistics") {
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// resetQuestion clears the score of one question.
// @Summary      Reset a question score
// @Tags         Statistics
// @Param        guideName       path  string  true  "Guide name"
// @Param        chapterNumber   path  int     true  "Chapter number"
// @Param        questionNumber  path  int     true  "Question number"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /guides/{guideName}/chapters/{chapterNumber}/questions/{questionNumber}/score [delete]
func (h *Handler) resetQuestion(w http.ResponseWriter, r *http.Request) {
	chapter, ok := pathInt(w, r, "chapterNumber")
	if !ok {
		return
	}
	question, ok := pathInt(w, r, "questionNumber")
	if !ok {
		return
	}
	err := h.store.ResetQuestion(r.Context(), r.PathValue("guideName"), chapter, question)
	if h.handleStoreError(w, err, "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// weakQuestions lists answered questions scored below a threshold.
// @Summary      List weak questions
// @Tags         Statistics
// @Produce      json
// @Param        guideName  path      string  true   "Guide name"
// @Param        threshold  query     int     false  "Scores below this are weak (default 3)"
// @Success      200        {object}  WeakQuestionsResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /guides/{guideName}/weak-questions [get]
func (h *Handler) weakQuestions(w http.ResponseWriter, r *http.Request) {
	threshold := statistics.DefaultWeakThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < statistics.MinScore || v > statistics.MaxScore+1 {
			respondError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = v
	}

	name := r.PathValue("guideName")
	weak, err := h.store.WeakQuestions(r.Context(), name, threshold)
	if h.handleStoreError(w, err, "statistics") {
		return
	}
	respondJSON(w, http.StatusOK, WeakQuestionsResponse{
		GuideName: name,
		Threshold: threshold,
		Questions: weak,
	})
}
