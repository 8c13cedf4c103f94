package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StockRecord is the ledger entry for one (product, warehouse) pair.
// Invariant: 0 <= ReservedQuantity <= Quantity. Records are created lazily on
// the first stock event and never deleted, only zeroed.
type StockRecord struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TenantID         uuid.UUID `json:"tenant_id" db:"tenant_id"`
	WarehouseID      uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	ProductID        uuid.UUID `json:"product_id" db:"product_id"`
	Quantity         int       `json:"quantity" db:"quantity"`
	ReservedQuantity int       `json:"reserved_quantity" db:"reserved_quantity"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}

// AvailableQuantity is on-hand minus reserved, never negative while the
// invariant holds.
func (s *StockRecord) AvailableQuantity() int {
	return s.Quantity - s.ReservedQuantity
}

// MarshalJSON includes the derived available_quantity in API responses.
func (s *StockRecord) MarshalJSON() ([]byte, error) {
	type alias StockRecord
	return json.Marshal(struct {
		*alias
		AvailableQuantity int `json:"available_quantity"`
	}{
		alias:             (*alias)(s),
		AvailableQuantity: s.AvailableQuantity(),
	})
}

// StockStatus classifies a record against its product thresholds.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusOverstock  StockStatus = "overstock"
)

// AlertSeverity grades a non-in_stock status.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityHigh     AlertSeverity = "high"
	SeverityMedium   AlertSeverity = "medium"
)

// ClassifyStock derives the stock status for an on-hand quantity against the
// product's reorder and maximum levels. Out-of-stock wins over low stock;
// overstock applies only when a maximum level is configured.
func ClassifyStock(quantity int, product *Product) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusOutOfStock
	case quantity <= product.ReorderLevel:
		return StockStatusLowStock
	case product.MaxStockLevel > 0 && quantity > product.MaxStockLevel:
		return StockStatusOverstock
	default:
		return StockStatusInStock
	}
}

// SeverityForStatus grades an alert. Low stock escalates to high once the
// quantity falls to half the reorder level or below.
func SeverityForStatus(status StockStatus, quantity, reorderLevel int) AlertSeverity {
	switch status {
	case StockStatusOutOfStock:
		return SeverityCritical
	case StockStatusLowStock:
		if quantity <= reorderLevel/2 {
			return SeverityHigh
		}
		return SeverityMedium
	default:
		return SeverityMedium
	}
}

// StockAlert is a derived, non-persisted view of a record needing attention.
type StockAlert struct {
	ProductID         uuid.UUID     `json:"product_id"`
	ProductSKU        string        `json:"product_sku"`
	ProductName       string        `json:"product_name"`
	WarehouseID       uuid.UUID     `json:"warehouse_id"`
	Quantity          int           `json:"quantity"`
	AvailableQuantity int           `json:"available_quantity"`
	ReorderLevel      int           `json:"reorder_level"`
	Status            StockStatus   `json:"status"`
	Severity          AlertSeverity `json:"severity"`
}

// WarehouseValuation aggregates quantity x cost price for one warehouse.
type WarehouseValuation struct {
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	TotalQuantity int       `json:"total_quantity"`
	TotalValue    float64   `json:"total_value"`
}
