package products

import (
	"errors"
	"strconv"
	"strings"

	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/dashboard"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRequest represents create product request. Price accepts a JSON
// number or a currency string.
type CreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Fandom   string `json:"fandom"`
	Price    any    `json:"price"`
	Stock    *int   `json:"stock"`
	Status   string `json:"status"`
}

// UpdateRequest represents update product request; all fields optional
type UpdateRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Fandom   *string `json:"fandom"`
	Price    any     `json:"price"`
	Stock    *int    `json:"stock"`
	Status   *string `json:"status"`
}

// ProductView is the product shape returned to clients. LowStock is
// derived, never stored.
type ProductView struct {
	model.Product
	LowStock bool `json:"lowStock"`
}

// Handler handles products API
type Handler struct {
	db       *gorm.DB
	auditLog *audit.Log
}

// NewHandler creates a new products handler
func NewHandler(db *gorm.DB, auditLog *audit.Log) *Handler {
	return &Handler{db: db, auditLog: auditLog}
}

func toView(p model.Product) ProductView {
	return ProductView{Product: p, LowStock: p.LowStock()}
}

// List handles GET /api/products
func (h *Handler) List(c *gin.Context) {
	var products []model.Product
	if err := h.db.WithContext(c.Request.Context()).Order("id DESC").Find(&products).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch products", err))
		return
	}

	items := make([]ProductView, len(products))
	for i, p := range products {
		items[i] = toView(p)
	}
	httpx.OK(c, gin.H{"products": items})
}

// Get handles GET /api/products/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid product id"))
		return
	}

	var product model.Product
	if err := h.db.WithContext(c.Request.Context()).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("product not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch product", err))
		return
	}

	httpx.OK(c, toView(product))
}

// Create handles POST /api/products
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	price := dashboard.CoerceAmount(req.Price)
	if price < 0 {
		httpx.FailErr(c, httpx.ErrParamIllegal("price must be non-negative"))
		return
	}

	stock := 0
	if req.Stock != nil {
		if *req.Stock < 0 {
			httpx.FailErr(c, httpx.ErrParamIllegal("stock must be non-negative"))
			return
		}
		stock = *req.Stock
	}

	status := model.ProductStatusActive
	if req.Status != "" {
		s, err := parseProductStatus(req.Status)
		if err != nil {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		status = s
	}

	product := model.Product{
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		Fandom:   req.Fandom,
		Price:    price,
		Stock:    stock,
		Status:   status,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create product", err))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionProductCreated,
		audit.WithEntity(audit.EntityProduct, strconv.Itoa(product.ID)))

	httpx.OK(c, toView(product))
}

// Update handles PUT /api/products/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid product id"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	var product model.Product
	if err := h.db.WithContext(c.Request.Context()).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("product not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch product", err))
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Fandom != nil {
		product.Fandom = *req.Fandom
	}
	if req.Price != nil {
		price := dashboard.CoerceAmount(req.Price)
		if price < 0 {
			httpx.FailErr(c, httpx.ErrParamIllegal("price must be non-negative"))
			return
		}
		product.Price = price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			httpx.FailErr(c, httpx.ErrParamIllegal("stock must be non-negative"))
			return
		}
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		status, err := parseProductStatus(*req.Status)
		if err != nil {
			httpx.FailErr(c, httpx.ErrParamIllegal(err.Error()))
			return
		}
		product.Status = status
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update product", err))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionProductUpdated,
		audit.WithEntity(audit.EntityProduct, strconv.Itoa(product.ID)))

	httpx.OK(c, toView(product))
}

// Delete handles DELETE /api/products/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid product id"))
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&model.Product{}, id)
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete product", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("product not found"))
		return
	}

	h.auditLog.Append(middleware.ActorFrom(c), audit.ActionProductDeleted,
		audit.WithEntity(audit.EntityProduct, strconv.Itoa(id)))

	httpx.OK(c, gin.H{"deleted": id})
}

func parseProductStatus(raw string) (model.ProductStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return model.ProductStatusActive, nil
	case "hidden":
		return model.ProductStatusHidden, nil
	case "out_of_stock", "outofstock":
		return model.ProductStatusOutOfStock, nil
	default:
		return "", errors.New("status must be active, hidden or out_of_stock")
	}
}
