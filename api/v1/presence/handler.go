package presence

import (
	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"
	"go_backoffice/internal/presence"
	"go_backoffice/internal/rbac"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MarkRequest optionally names the user whose presence changes; the
// authenticated actor is the default
type MarkRequest struct {
	UserID *int `json:"userId"`
}

// UserWithPresence enriches a user listing entry. Presence is null when
// the user has produced no event since the process started ("Unknown",
// distinct from an explicit offline).
type UserWithPresence struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Role     string           `json:"role"`
	Status   string           `json:"status"`
	Presence *presence.Record `json:"presence"`
}

// Handler handles the presence API
type Handler struct {
	db      *gorm.DB
	tracker *presence.Tracker
}

// NewHandler creates a new presence handler
func NewHandler(db *gorm.DB, tracker *presence.Tracker) *Handler {
	return &Handler{db: db, tracker: tracker}
}

func (h *Handler) resolveUserID(c *gin.Context) (int, *httpx.AppError) {
	var req MarkRequest
	// An empty body is fine; the actor is the default subject
	_ = c.ShouldBindJSON(&req)

	if req.UserID != nil {
		if *req.UserID <= 0 {
			return 0, httpx.ErrParamIllegal("userId must be positive")
		}
		return *req.UserID, nil
	}

	actor := middleware.ActorFrom(c)
	if actor.ID == 0 {
		return 0, httpx.ErrUnauthorized("")
	}
	return actor.ID, nil
}

// Login handles POST /api/presence/login
func (h *Handler) Login(c *gin.Context) {
	userID, appErr := h.resolveUserID(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	rec := h.tracker.MarkLogin(userID)
	httpx.OK(c, gin.H{"presence": rec})
}

// Logout handles POST /api/presence/logout
func (h *Handler) Logout(c *gin.Context) {
	userID, appErr := h.resolveUserID(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	rec := h.tracker.MarkLogout(userID)
	httpx.OK(c, gin.H{"presence": rec})
}

// Users handles GET /api/presence/users (admin/owner only; enforced by
// middleware in the router)
func (h *Handler) Users(c *gin.Context) {
	var users []model.User
	if err := h.db.WithContext(c.Request.Context()).Order("id DESC").Find(&users).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch users", err))
		return
	}

	snapshot := h.tracker.Snapshot()

	items := make([]UserWithPresence, len(users))
	for i, u := range users {
		item := UserWithPresence{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   rbac.Normalize(u.Role),
			Status: string(u.Status),
		}
		if rec, ok := snapshot[u.ID]; ok {
			item.Presence = &rec
		}
		items[i] = item
	}

	httpx.OK(c, gin.H{"users": items})
}
