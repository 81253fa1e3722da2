package orders

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/dashboard"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ItemRequest is one line item in a create/update request. Price
// accepts a JSON number or a currency string.
type ItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    any    `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateRequest represents create order request. Total accepts a JSON
// number or a currency string.
type CreateRequest struct {
	CustomerName    string        `json:"customer_name" binding:"required"`
	CustomerEmail   string        `json:"customer_email" binding:"required,email"`
	Date            *time.Time    `json:"date"`
	Total           any           `json:"total"`
	Status          string        `json:"status"`
	PaymentMethod   string        `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address"`
	Items           []ItemRequest `json:"items"`
}

// UpdateRequest represents update order request; all fields optional
type UpdateRequest struct {
	CustomerName    *string       `json:"customer_name"`
	CustomerEmail   *string       `json:"customer_email"`
	Date            *time.Time    `json:"date"`
	Total           any           `json:"total"`
	Status          *string       `json:"status"`
	PaymentMethod   *string       `json:"payment_method"`
	ShippingAddress *string       `json:"shipping_address"`
	Items           []ItemRequest `json:"items"`
}

// Handler handles orders API
type Handler struct {
	db       *gorm.DB
	auditLog *audit.Log
}

// NewHandler creates a new orders handler
func NewHandler(db *gorm.DB, auditLog *audit.Log) *Handler {
	return &Handler{db: db, auditLog: auditLog}
}

// List handles GET /api/orders
func (h *Handler) List(c *gin.Context) {
	var orders []model.Order
	if err := h.db.WithContext(c.Request.Context()).Order("date DESC, id DESC").Find(&orders).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch orders", err))
		return
	}
	httpx.OK(c, gin.H{"orders": orders})
}

// Get handles GET /api/orders/:id
func (h *Handler) Get(c *gin.Context) {
	order, appErr := h.fetch(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	httpx.OK(c, order)
}

// Create handles POST /api/orders
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	status := model.OrderStatusPending
	if req.Status != "" {
		normalized := dashboard.NormalizeStatus(req.Status)
		if !dashboard.IsCanonicalStatus(normalized) {
			httpx.FailErr(c, httpx.ErrParamIllegal("unknown order status"))
			return
		}
		status = normalized
	}

	total := dashboard.CoerceAmount(req.Total)
	if total < 0 {
		httpx.FailErr(c, httpx.ErrParamIllegal("total must be non-negative"))
		return
	}

	itemsJSON, appErr := marshalItems(req.Items)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	order := model.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		Date:            date,
		Total:           total,
		Status:          status,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		ItemsJSON:       itemsJSON,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&order).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create order", err))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionOrderCreated,
		audit.WithEntity(audit.EntityOrder, strconv.Itoa(order.ID)),
		audit.WithMeta(map[string]any{"status": order.Status}))

	httpx.OK(c, order)
}

// Update handles PUT /api/orders/:id. A status change additionally
// appends an ORDER_STATUS_CHANGED audit entry; that append is best
// effort and never fails the mutation.
func (h *Handler) Update(c *gin.Context) {
	order, appErr := h.fetch(c)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	previousStatus := dashboard.NormalizeStatus(order.Status)

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		order.CustomerEmail = *req.CustomerEmail
	}
	if req.Date != nil {
		order.Date = *req.Date
	}
	if req.Total != nil {
		total := dashboard.CoerceAmount(req.Total)
		if total < 0 {
			httpx.FailErr(c, httpx.ErrParamIllegal("total must be non-negative"))
			return
		}
		order.Total = total
	}
	if req.Status != nil {
		normalized := dashboard.NormalizeStatus(*req.Status)
		if !dashboard.IsCanonicalStatus(normalized) {
			httpx.FailErr(c, httpx.ErrParamIllegal("unknown order status"))
			return
		}
		order.Status = normalized
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.Items != nil {
		itemsJSON, appErr := marshalItems(req.Items)
		if appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		order.ItemsJSON = itemsJSON
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&order).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update order", err))
		return
	}

	if newStatus := dashboard.NormalizeStatus(order.Status); newStatus != previousStatus {
		h.auditLog.Append(middleware.ActorFrom(c), audit.ActionOrderStatusChanged,
			audit.WithEntity(audit.EntityOrder, strconv.Itoa(order.ID)),
			audit.WithMeta(map[string]any{"status": newStatus, "previous": previousStatus}))
	}

	httpx.OK(c, order)
}

// Delete handles DELETE /api/orders/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid order id"))
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&model.Order{}, id)
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete order", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("order not found"))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionOrderDeleted,
		audit.WithEntity(audit.EntityOrder, strconv.Itoa(id)))

	httpx.OK(c, gin.H{"deleted": id})
}

func (h *Handler) fetch(c *gin.Context) (model.Order, *httpx.AppError) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return model.Order{}, httpx.ErrParamInvalid("invalid order id")
	}

	var order model.Order
	if err := h.db.WithContext(c.Request.Context()).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Order{}, httpx.ErrNotFound("order not found")
		}
		return model.Order{}, httpx.ErrDatabaseError("failed to fetch order", err)
	}
	return order, nil
}

func marshalItems(items []ItemRequest) (datatypes.JSON, *httpx.AppError) {
	if items == nil {
		return nil, nil
	}

	converted := make([]model.OrderItem, len(items))
	for i, item := range items {
		price := dashboard.CoerceAmount(item.Price)
		if price < 0 {
			return nil, httpx.ErrParamIllegal("item price must be non-negative")
		}
		if item.Quantity < 0 {
			return nil, httpx.ErrParamIllegal("item quantity must be non-negative")
		}
		converted[i] = model.OrderItem{
			Name:     item.Name,
			Price:    price,
			Quantity: item.Quantity,
		}
	}

	raw, err := json.Marshal(converted)
	if err != nil {
		return nil, httpx.ErrInternalError("failed to encode line items", err)
	}
	return datatypes.JSON(raw), nil
}
