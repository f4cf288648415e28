package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigorhq/vigor-backend/internal/http/response"
	"github.com/vigorhq/vigor-backend/internal/modules/insights"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type InsightsHandler struct {
	log      *logger.Logger
	insights insights.Usecases
}

func NewInsightsHandler(log *logger.Logger, insights insights.Usecases) *InsightsHandler {
	return &InsightsHandler{log: log.With("Handler", "InsightsHandler"), insights: insights}
}

// Week runs the weekly analysis for the 7-day window ending on week_ending
// (default today).
func (h *InsightsHandler) Week(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	weekEnding, err := parseDate(c.Query("week_ending"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	pattern, err := h.insights.AnalyzeWeek(c.Request.Context(), userID, weekEnding)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, pattern)
}

func (h *InsightsHandler) Recommendations(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	recs, err := h.insights.TodayRecommendations(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendations": recs})
}
