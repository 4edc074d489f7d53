package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"devinv/internal/db"
	"devinv/internal/dto"
	"devinv/internal/httpx"
)

// Handler reports service liveness and store availability.
// It must answer 200 regardless of store state.
type Handler struct {
	db          *gorm.DB
	pingTimeout time.Duration
}

// NewHandler creates a health handler
func NewHandler(gdb *gorm.DB, pingTimeout time.Duration) *Handler {
	return &Handler{db: gdb, pingTimeout: pingTimeout}
}

// Check handles GET /health
func (h *Handler) Check(c *gin.Context) {
	payload := dto.HealthDTO{
		Service:     "devinv",
		DBAvailable: true,
	}

	if err := db.Ping(c.Request.Context(), h.db, h.pingTimeout); err != nil {
		payload.DBAvailable = false
		payload.Error = err.Error()
	}

	httpx.OK(c, payload)
}
