package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStock(t *testing.T) {
	product := &Product{ReorderLevel: 10, MaxStockLevel: 100}

	tests := []struct {
		name     string
		quantity int
		expected StockStatus
	}{
		{"zero quantity is out of stock", 0, StockStatusOutOfStock},
		{"at reorder level is low stock", 10, StockStatusLowStock},
		{"below reorder level is low stock", 3, StockStatusLowStock},
		{"above reorder level is in stock", 11, StockStatusInStock},
		{"at max level is in stock", 100, StockStatusInStock},
		{"above max level is overstock", 101, StockStatusOverstock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyStock(tt.quantity, product))
		})
	}
}

func TestClassifyStockNoMaxLevel(t *testing.T) {
	// Without a configured maximum, overstock never triggers.
	product := &Product{ReorderLevel: 5, MaxStockLevel: 0}
	assert.Equal(t, StockStatusInStock, ClassifyStock(1000000, product))
}

func TestClassifyStockOutOfStockWinsOverLow(t *testing.T) {
	product := &Product{ReorderLevel: 10}
	assert.Equal(t, StockStatusOutOfStock, ClassifyStock(0, product))
}

func TestSeverityForStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       StockStatus
		quantity     int
		reorderLevel int
		expected     AlertSeverity
	}{
		{"out of stock is critical", StockStatusOutOfStock, 0, 10, SeverityCritical},
		{"low stock at half reorder level is high", StockStatusLowStock, 5, 10, SeverityHigh},
		{"low stock below half reorder level is high", StockStatusLowStock, 2, 10, SeverityHigh},
		{"low stock above half reorder level is medium", StockStatusLowStock, 8, 10, SeverityMedium},
		{"overstock is medium", StockStatusOverstock, 200, 10, SeverityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverityForStatus(tt.status, tt.quantity, tt.reorderLevel))
		})
	}
}

func TestStockRecordAvailableQuantity(t *testing.T) {
	record := &StockRecord{Quantity: 50, ReservedQuantity: 20}
	assert.Equal(t, 30, record.AvailableQuantity())
}

func TestStockRecordJSONIncludesAvailable(t *testing.T) {
	record := &StockRecord{Quantity: 50, ReservedQuantity: 20}
	data, err := json.Marshal(record)
	assert.NoError(t, err)

	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(30), out["available_quantity"])
	assert.Equal(t, float64(50), out["quantity"])
}
