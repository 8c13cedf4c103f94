package models

import (
	"time"

	"github.com/google/uuid"
)

// MovementType is the closed set of quantity-changing event kinds.
type MovementType string

const (
	MovementAdjustment      MovementType = "adjustment"
	MovementTransferOut     MovementType = "transfer_out"
	MovementTransferIn      MovementType = "transfer_in"
	MovementPurchaseReceipt MovementType = "purchase_receipt"
	MovementSaleShipment    MovementType = "sale_shipment"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementAdjustment, MovementTransferOut, MovementTransferIn,
		MovementPurchaseReceipt, MovementSaleShipment:
		return true
	}
	return false
}

// StockMovement is an immutable audit entry for one quantity change.
// Entries are append-only; nothing updates or deletes them.
type StockMovement struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	TenantID           uuid.UUID    `json:"tenant_id" db:"tenant_id"`
	ProductID          uuid.UUID    `json:"product_id" db:"product_id"`
	WarehouseID        uuid.UUID    `json:"warehouse_id" db:"warehouse_id"`
	Type               MovementType `json:"type" db:"type"`
	QuantityDelta      int          `json:"quantity_delta" db:"quantity_delta"`
	RelatedWarehouseID *uuid.UUID   `json:"related_warehouse_id" db:"related_warehouse_id"`
	Reference          string       `json:"reference" db:"reference"`
	Notes              *string      `json:"notes" db:"notes"`
	ActorID            *uuid.UUID   `json:"actor_id" db:"actor_id"`
	ResultingQuantity  int          `json:"resulting_quantity" db:"resulting_quantity"`
	ResultingStatus    StockStatus  `json:"resulting_status" db:"resulting_status"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}

// MovementFilter holds query criteria for movement history reads.
type MovementFilter struct {
	Type        *MovementType `json:"type,omitempty"`
	ProductID   *uuid.UUID    `json:"product_id,omitempty"`
	WarehouseID *uuid.UUID    `json:"warehouse_id,omitempty"`
	From        *time.Time    `json:"from,omitempty"`
	To          *time.Time    `json:"to,omitempty"`
	Limit       int           `json:"limit,omitempty"`
	Offset      int           `json:"offset,omitempty"`
}
