package audit

import (
	"strconv"
	"strings"

	"go_backoffice/api/v1/middleware"
	auditlog "go_backoffice/internal/audit"
	"go_backoffice/internal/httpx"

	"github.com/gin-gonic/gin"
)

// ReportRequest is a client-reported UI event (page view, export
// click). The client self-reports these; they are mapped onto a
// UI_-prefixed action so they never collide with server-emitted ones.
type ReportRequest struct {
	Type  string `json:"type" binding:"required"`
	Route string `json:"route"`
}

// Handler handles the audit API
type Handler struct {
	log *auditlog.Log
}

// NewHandler creates a new audit handler
func NewHandler(log *auditlog.Log) *Handler {
	return &Handler{log: log}
}

// List handles GET /api/audit?limit=N (admin/owner only; enforced by
// middleware in the router)
func (h *Handler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.FailErr(c, httpx.ErrParamInvalid("limit must be an integer"))
			return
		}
		limit = n
	}

	httpx.OK(c, gin.H{"events": h.log.List(limit)})
}

// Report handles POST /api/audit
func (h *Handler) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	action := "UI_" + strings.ToUpper(strings.TrimSpace(req.Type))
	var opts []auditlog.Option
	if req.Route != "" {
		opts = append(opts, auditlog.WithMeta(map[string]any{"route": req.Route}))
	}

	if _, err := h.log.Append(middleware.ActorFrom(c), action, opts...); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	httpx.OK(c, gin.H{"ok": true})
}
