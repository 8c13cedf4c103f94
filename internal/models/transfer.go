package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the closed state set for inter-warehouse transfers.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// transferTransitions is the single source of truth for valid transitions.
// completed and cancelled are terminal.
var transferTransitions = map[TransferStatus][]TransferStatus{
	TransferPending:   {TransferInTransit, TransferCancelled},
	TransferInTransit: {TransferCompleted, TransferCancelled},
}

// CanTransitionTo reports whether the transition is listed in the table.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	for _, allowed := range transferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s TransferStatus) Terminal() bool {
	return len(transferTransitions[s]) == 0
}

// Transfer moves a quantity between two warehouses. The reservation it
// creates lives on the source StockRecord, not on this document.
type Transfer struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	TenantID        uuid.UUID      `json:"tenant_id" db:"tenant_id"`
	TransferNumber  string         `json:"transfer_number" db:"transfer_number"`
	ProductID       uuid.UUID      `json:"product_id" db:"product_id"`
	FromWarehouseID uuid.UUID      `json:"from_warehouse_id" db:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID      `json:"to_warehouse_id" db:"to_warehouse_id"`
	Quantity        int            `json:"quantity" db:"quantity"`
	Reason          *string        `json:"reason" db:"reason"`
	Status          TransferStatus `json:"status" db:"status"`
	CreatedBy       *uuid.UUID     `json:"created_by" db:"created_by"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
	CompletedAt     *time.Time     `json:"completed_at" db:"completed_at"`
}
