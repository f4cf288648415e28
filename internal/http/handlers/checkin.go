package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigorhq/vigor-backend/internal/http/response"
	"github.com/vigorhq/vigor-backend/internal/modules/energy"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type CheckInHandler struct {
	log    *logger.Logger
	energy energy.Usecases
}

func NewCheckInHandler(log *logger.Logger, energy energy.Usecases) *CheckInHandler {
	return &CheckInHandler{log: log.With("Handler", "CheckInHandler"), energy: energy}
}

type ingestCheckInRequest struct {
	Kind    string         `json:"kind" binding:"required"`
	Payload map[string]any `json:"payload"`
}

// Ingest stores the check-in and returns it together with the day's score.
// The score field is null when recompute was skipped or failed; the check-in
// itself is committed either way.
func (h *CheckInHandler) Ingest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req ingestCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	checkIn, score, err := h.energy.IngestCheckIn(c.Request.Context(), userID, req.Kind, req.Payload)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"check_in": checkIn,
		"score":    score,
	})
}

func (h *CheckInHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	checkIns, err := h.energy.ListCheckIns(c.Request.Context(), userID, date)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"check_ins": checkIns})
}
