package users

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/auth"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"
	"go_backoffice/internal/rbac"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRequest represents create user request
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// UpdateRequest represents update user request; all fields optional
type UpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

// SafeUser is the password-free user shape returned to clients
type SafeUser struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Handler handles users API
type Handler struct {
	db       *gorm.DB
	auditLog *audit.Log
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB, auditLog *audit.Log) *Handler {
	return &Handler{db: db, auditLog: auditLog}
}

func toSafeUser(u model.User) SafeUser {
	return SafeUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      rbac.Normalize(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/users
func (h *Handler) List(c *gin.Context) {
	var users []model.User
	if err := h.db.WithContext(c.Request.Context()).Order("id DESC").Find(&users).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch users", err))
		return
	}

	items := make([]SafeUser, len(users))
	for i, u := range users {
		items[i] = toSafeUser(u)
	}
	httpx.OK(c, gin.H{"users": items})
}

// Get handles GET /api/users/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid user id"))
		return
	}

	var user model.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("user not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch user", err))
		return
	}

	httpx.OK(c, toSafeUser(user))
}

// Create handles POST /api/users
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
		return
	}

	role := model.RoleUser
	if req.Role != "" {
		if !rbac.IsValidRole(req.Role) {
			httpx.FailErr(c, httpx.ErrParamIllegal("unknown role"))
			return
		}
		role = rbac.Normalize(req.Role)
	}

	status := model.UserStatusActive
	if req.Status != "" {
		s, err := parseUserStatus(req.Status)
		if err != nil {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		status = s
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if taken, err := h.emailTaken(c, email, 0); err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to check email", err))
		return
	} else if taken {
		httpx.FailErr(c, httpx.ErrAlreadyExists("email already registered"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to hash password", err))
		return
	}

	user := model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create user", err))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionUserCreated,
		audit.WithEntity(audit.EntityUser, strconv.Itoa(user.ID)))

	httpx.OK(c, toSafeUser(user))
}

// Update handles PUT /api/users/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid user id"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	var user model.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("user not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch user", err))
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			httpx.FailErr(c, httpx.ErrParamInvalid("email must not be empty"))
			return
		}
		if taken, err := h.emailTaken(c, email, user.ID); err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to check email", err))
			return
		} else if taken {
			httpx.FailErr(c, httpx.ErrAlreadyExists("email already registered"))
			return
		}
		user.Email = email
	}
	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("failed to hash password", err))
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !rbac.IsValidRole(*req.Role) {
			httpx.FailErr(c, httpx.ErrParamIllegal("unknown role"))
			return
		}
		user.Role = rbac.Normalize(*req.Role)
	}
	if req.Status != nil {
		status, err := parseUserStatus(*req.Status)
		if err != nil {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		user.Status = status
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update user", err))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionUserUpdated,
		audit.WithEntity(audit.EntityUser, strconv.Itoa(user.ID)))

	httpx.OK(c, toSafeUser(user))
}

// Delete handles DELETE /api/users/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid user id"))
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&model.User{}, id)
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete user", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("user not found"))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionUserDeleted,
		audit.WithEntity(audit.EntityUser, strconv.Itoa(id)))

	httpx.OK(c, gin.H{"deleted": id})
}

func (h *Handler) emailTaken(c *gin.Context, email string, excludeID int) (bool, error) {
	query := h.db.WithContext(c.Request.Context()).Model(&model.User{}).Where("LOWER(email) = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func parseUserStatus(raw string) (model.UserStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return model.UserStatusActive, nil
	case "inactive":
		return model.UserStatusInactive, nil
	default:
		return "", errors.New("status must be active or inactive")
	}
}
