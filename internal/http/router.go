package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/vigorhq/vigor-backend/internal/http/handlers"
	httpMW "github.com/vigorhq/vigor-backend/internal/http/middleware"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	TracingEnabled bool

	HealthHandler       *httpH.HealthHandler
	CheckInHandler      *httpH.CheckInHandler
	ScoreHandler        *httpH.ScoreHandler
	InsightsHandler     *httpH.InsightsHandler
	HealthRecordHandler *httpH.HealthRecordHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("vigor"))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.CheckInHandler != nil {
			api.POST("/checkins", cfg.CheckInHandler.Ingest)
			api.GET("/checkins", cfg.CheckInHandler.List)
		}

		if cfg.ScoreHandler != nil {
			api.GET("/scores/today", cfg.ScoreHandler.GetToday)
			api.GET("/scores/:date", cfg.ScoreHandler.GetByDate)
			api.POST("/scores/:date/recompute", cfg.ScoreHandler.Recompute)
		}

		if cfg.InsightsHandler != nil {
			api.GET("/insights/week", cfg.InsightsHandler.Week)
			api.GET("/insights/recommendations", cfg.InsightsHandler.Recommendations)
		}

		if cfg.HealthRecordHandler != nil {
			api.PUT("/health-records/:kind", cfg.HealthRecordHandler.Upsert)
		}
	}

	return r
}
