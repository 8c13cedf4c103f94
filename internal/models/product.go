package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Identity (SKU) is immutable once created;
// pricing and stock thresholds are mutable.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	SKU           string    `json:"sku" db:"sku"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	UnitOfMeasure string    `json:"unit_of_measure" db:"unit_of_measure"`
	CostPrice     float64   `json:"cost_price" db:"cost_price"`
	SellingPrice  float64   `json:"selling_price" db:"selling_price"`
	ReorderLevel  int       `json:"reorder_level" db:"reorder_level"`
	MinStockLevel int       `json:"min_stock_level" db:"min_stock_level"`
	MaxStockLevel int       `json:"max_stock_level" db:"max_stock_level"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ProductImage records an uploaded image object for a product.
type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
