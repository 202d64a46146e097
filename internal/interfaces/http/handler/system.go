package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sales/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{logger: logger},
		db:          db,
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database status
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.logger.Error("database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.Error(http.StatusServiceUnavailable, "database unreachable"))
		return
	}
	h.Success(c, gin.H{"status": "ok"})
}
