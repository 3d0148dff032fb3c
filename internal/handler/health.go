package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DBStatus struct {
	Status  string `json:"status"`
	Dialect string `json:"dialect,omitempty"`
}

type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version,omitempty"`
	Uptime  int64     `json:"uptime"`
	DB      *DBStatus `json:"db,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
	version   string
	log       *logging.Loggers
}

func NewHealthHandler(db *gorm.DB, startTime time.Time, version string, log *logging.Loggers) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: startTime,
		version:   version,
		log:       log,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

func (h *HealthHandler) uptime() int64 {
	return int64(time.Since(h.startTime).Seconds())
}

// Health godoc
// @Summary      Liveness probe
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings the database.
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	dialect := h.db.Dialector.Name()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Internal.Warn("readiness check failed",
			zap.String("dialect", dialect),
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Uptime: h.uptime(),
			DB:     &DBStatus{Status: "down", Dialect: dialect},
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ready",
		Version: h.version,
		Uptime:  h.uptime(),
		DB:      &DBStatus{Status: "up", Dialect: dialect},
	})
}
