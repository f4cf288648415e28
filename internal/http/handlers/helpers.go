package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vigorhq/vigor-backend/internal/http/response"
	"github.com/vigorhq/vigor-backend/internal/pkg/ctxutil"
)

const dateLayout = "2006-01-02"

// requireUser pulls the authenticated user out of the request context. The
// auth middleware guarantees it on protected routes; a miss means the route
// was wired outside the protected group.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// parseDate reads a calendar date, defaulting to today in UTC when absent.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t.UTC(), nil
}
