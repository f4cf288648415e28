package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigorhq/vigor-backend/internal/http/response"
	"github.com/vigorhq/vigor-backend/internal/modules/energy"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type HealthRecordHandler struct {
	log    *logger.Logger
	energy energy.Usecases
}

func NewHealthRecordHandler(log *logger.Logger, energy energy.Usecases) *HealthRecordHandler {
	return &HealthRecordHandler{log: log.With("Handler", "HealthRecordHandler"), energy: energy}
}

type upsertHealthRecordRequest struct {
	SourceDate string         `json:"source_date"`
	Payload    map[string]any `json:"payload" binding:"required"`
}

// Upsert replaces the snapshot for (kind, source_date). Device sync jobs call
// this repeatedly with refined data for the same day.
func (h *HealthRecordHandler) Upsert(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req upsertHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	date, err := parseDate(req.SourceDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	record, err := h.energy.UpsertHealthRecord(c.Request.Context(), userID, c.Param("kind"), date, req.Payload)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"health_record": record})
}
