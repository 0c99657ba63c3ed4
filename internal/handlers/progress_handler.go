package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/models"
	"github.com/EscoLessgo/word-craft-arena/internal/service"
	"github.com/EscoLessgo/word-craft-arena/internal/validation"
)

// ProgressHandler handles saving results and reading history and stats
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type saveProgressRequest struct {
	Date          string   `json:"date"`
	Score         int      `json:"score"`
	MaxScore      int      `json:"max_score"`
	WordsFound    []string `json:"words_found"`
	PangramsFound []string `json:"pangrams_found"`
}

type saveProgressResponse struct {
	Record models.DailyGameRecord  `json:"record"`
	Stats  models.UserStatsSummary `json:"stats"`
}

// SaveProgress stores a day's result. The date is optional and defaults to
// the server's current UTC day; clients in other timezones should send
// their local calendar day explicitly.
func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req saveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	today := time.Now().UTC()
	if req.Date != "" {
		parsed, err := models.ParseGameDate(req.Date)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form", "", nil)
			return
		}
		today = parsed
	}

	record, stats, err := h.progressService.SaveProgress(
		identityFromContext(r), req.Score, req.WordsFound, req.PangramsFound, req.MaxScore, today,
	)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrSignedOut):
			respondWithError(w, http.StatusUnauthorized, "authentication required", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "could not save progress", "Failed to save progress", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, saveProgressResponse{Record: record, Stats: stats})
}

type historyResponse struct {
	Games []models.DailyGameRecord `json:"games"`
}

// History returns the user's game records, newest first
func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer", "", nil)
			return
		}
		limit = parsed
	}

	records, err := h.progressService.History(identityFromContext(r), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load history", "Failed to load history", err)
		return
	}

	if records == nil {
		records = []models.DailyGameRecord{}
	}
	respondJSON(w, http.StatusOK, historyResponse{Games: records})
}

// Stats returns the user's running statistics summary
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progressService.Stats(identityFromContext(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load stats", "Failed to load stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Game returns one day's record
func (h *ProgressHandler) Game(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	record, err := h.progressService.Game(identityFromContext(r), date)
	if err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not load game", "Failed to load game", err)
		return
	}
	if record == nil {
		respondWithError(w, http.StatusNotFound, "no game recorded for that day", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, record)
}
