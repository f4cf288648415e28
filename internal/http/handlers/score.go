package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigorhq/vigor-backend/internal/http/response"
	"github.com/vigorhq/vigor-backend/internal/modules/energy"
	"github.com/vigorhq/vigor-backend/internal/platform/apierr"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

var errNoScore = errors.New("no check-ins recorded for that date")

type ScoreHandler struct {
	log    *logger.Logger
	energy energy.Usecases
}

func NewScoreHandler(log *logger.Logger, energy energy.Usecases) *ScoreHandler {
	return &ScoreHandler{log: log.With("Handler", "ScoreHandler"), energy: energy}
}

func (h *ScoreHandler) GetToday(c *gin.Context) {
	h.getForDate(c, "")
}

func (h *ScoreHandler) GetByDate(c *gin.Context) {
	h.getForDate(c, c.Param("date"))
}

func (h *ScoreHandler) getForDate(c *gin.Context, raw string) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	score, err := h.energy.GetOrComputeScore(c.Request.Context(), userID, date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if score == nil {
		// No check-ins that day: a valid empty state, not a failure.
		response.RespondAPIError(c, apierr.NotFound("no_score_available", errNoScore))
		return
	}
	response.RespondOK(c, gin.H{"score": score})
}

// Recompute drops the stored score and rebuilds it from scratch, regardless
// of cache freshness.
func (h *ScoreHandler) Recompute(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	score, err := h.energy.ForceRecompute(c.Request.Context(), userID, date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if score == nil {
		response.RespondAPIError(c, apierr.NotFound("no_score_available", errNoScore))
		return
	}
	response.RespondOK(c, gin.H{"score": score})
}
