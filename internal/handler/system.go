package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statusUp   = "API en funcionamiento"
	statusDown = "API no disponible"
)

type CheckResponse struct {
	IP       string `json:"IP"`
	ClientIP string `json:"client_ip"`
	Status   string `json:"status"`
}

type DBInfoResponse struct {
	Status    string   `json:"status"`
	URL       string   `json:"url"`
	Tables    []string `json:"tablas"`
	NumTables int      `json:"num_tablas"`
}

// SystemHandler serves the host and database probes.
type SystemHandler struct {
	db       *gorm.DB
	dsn      string
	lookupIP func() (string, error)
	log      *logging.Loggers
}

// NewSystemHandler takes the already redacted DSN, which is echoed back by
// /db.
func NewSystemHandler(gdb *gorm.DB, redactedDSN string, lookupIP func() (string, error), log *logging.Loggers) *SystemHandler {
	return &SystemHandler{
		db:       gdb,
		dsn:      redactedDSN,
		lookupIP: lookupIP,
		log:      log,
	}
}

func (h *SystemHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/check", h.Check)
	e.GET("/db", h.DBInfo)
}

// Check godoc
// @Summary      Check that the API is running
// @Description  Reports the host's outbound IP and the caller's IP.
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  CheckResponse
// @Router       /check [get]
func (h *SystemHandler) Check(c *gin.Context) {
	resp := CheckResponse{
		ClientIP: c.ClientIP(),
		Status:   statusUp,
	}

	ip, err := h.lookupIP()
	if err != nil {
		h.log.Internal.Warn("outbound ip lookup failed", zap.Error(err))
		resp.Status = statusDown
	}
	resp.IP = ip

	h.log.Internal.Info("check", zap.String("ip", ip), zap.String("client_ip", resp.ClientIP))

	c.JSON(http.StatusOK, resp)
}

// DBInfo godoc
// @Summary      Inspect the database
// @Description  Lists the tables of the connected database. Credentials are masked.
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  DBInfoResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /db [get]
func (h *SystemHandler) DBInfo(c *gin.Context) {
	info, err := db.Inspect(c.Request.Context(), h.db)
	if err != nil {
		serverError(c, h.log.Internal,
			"DB_INSPECT_FAILED",
			"failed to inspect database",
			err,
		)
		return
	}

	h.log.Internal.Info("db inspected", zap.Int("tables", len(info.Tables)))

	c.JSON(http.StatusOK, DBInfoResponse{
		Status:    "ok",
		URL:       h.dsn,
		Tables:    info.Tables,
		NumTables: len(info.Tables),
	})
}
