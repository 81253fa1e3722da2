package dashboard

import (
	"time"

	"go_backoffice/internal/dashboard"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles GET /api/dashboard
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Get computes the snapshot fresh on every call; any client-side
// caching is a front-end concern.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var users []model.User
	if err := h.db.WithContext(ctx).Find(&users).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch users", err))
		return
	}

	var orders []model.Order
	if err := h.db.WithContext(ctx).Find(&orders).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch orders", err))
		return
	}

	httpx.OK(c, dashboard.Compute(users, orders, time.Now()))
}
