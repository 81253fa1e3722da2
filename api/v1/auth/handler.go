package auth

import (
	"errors"
	"strings"
	"time"

	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/auth"
	"go_backoffice/internal/cache"
	"go_backoffice/internal/config"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"
	"go_backoffice/internal/presence"
	"go_backoffice/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SafeUser is the password-free user shape returned to clients
type SafeUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// LoginResponse represents login response data
type LoginResponse struct {
	Token    string   `json:"token"`
	ExpireAt string   `json:"expireAt"`
	User     SafeUser `json:"user"`
}

// Handler handles login and logout
type Handler struct {
	db       *gorm.DB
	cfg      *config.Config
	auditLog *audit.Log
	tracker  *presence.Tracker
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB, cfg *config.Config, auditLog *audit.Log, tracker *presence.Tracker) *Handler {
	return &Handler{db: db, cfg: cfg, auditLog: auditLog, tracker: tracker}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.User
	if err := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error for unknown email and wrong password
			h.recordFailedLogin(email)
			httpx.FailErr(c, httpx.ErrInvalidToken("invalid credentials"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	if user.Status == model.UserStatusInactive {
		httpx.FailErr(c, httpx.ErrForbidden("user is inactive"))
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.recordFailedLogin(email)
		httpx.FailErr(c, httpx.ErrInvalidToken("invalid credentials"))
		return
	}

	actor := audit.Actor{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  rbac.Normalize(user.Role),
	}

	expireAt := time.Now().Add(time.Duration(h.cfg.JWT.ExpireMinutes) * time.Minute)
	jti := uuid.NewString()
	token, err := auth.GenerateToken(user.ID, user.Name, user.Email, actor.Role, jti, expireAt, h.cfg.JWT.Issuer)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to generate token", err))
		return
	}

	h.tracker.MarkLogin(user.ID)
	// Best-effort side effect; never fails the login
	h.auditLog.Append(actor, audit.ActionLoginSuccess)

	httpx.OK(c, LoginResponse{
		Token:    token,
		ExpireAt: expireAt.Format(time.RFC3339),
		User: SafeUser{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   actor.Role,
			Status: string(user.Status),
		},
	})
}

// Logout handles POST /api/auth/logout. Revokes the session and marks
// the actor offline.
func (h *Handler) Logout(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	jti := middleware.JTIFrom(c)

	// Revoke until the token would expire anyway
	ttl := time.Duration(h.cfg.JWT.ExpireMinutes) * time.Minute
	if err := cache.RevokeSession(c.Request.Context(), jti, ttl); err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to revoke session", err))
		return
	}

	rec := h.tracker.MarkLogout(actor.ID)
	h.auditLog.Append(actor, audit.ActionLogout)

	httpx.OK(c, gin.H{"presence": rec})
}

// recordFailedLogin appends a LOGIN_FAILED entry attributed to the
// attempted email. No user id is known for a failed attempt.
func (h *Handler) recordFailedLogin(email string) {
	h.auditLog.Append(audit.Actor{Email: email, Role: model.RoleUser}, audit.ActionLoginFailed)
}
