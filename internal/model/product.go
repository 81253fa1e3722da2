package model

// ProductStatus represents product visibility status
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusHidden     ProductStatus = "hidden"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// LowStockThreshold is the exclusive upper bound for the derived
// "low stock" flag (0 < stock < threshold). Never stored.
const LowStockThreshold = 5

// Product represents a catalog item
type Product struct {
	BaseModel
	Name     string        `gorm:"type:varchar(255);not null" json:"name"`
	Category string        `gorm:"type:varchar(128);index" json:"category"`
	Fandom   string        `gorm:"type:varchar(128)" json:"fandom"`
	Price    float64       `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Stock    int           `gorm:"not null;default:0" json:"stock"`
	Status   ProductStatus `gorm:"type:enum('active','hidden','out_of_stock');default:'active'" json:"status"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}

// LowStock reports whether the product is in the low-stock band
func (p Product) LowStock() bool {
	return p.Stock > 0 && p.Stock < LowStockThreshold
}
