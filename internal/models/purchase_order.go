package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseOrderStatus is the closed state set for the approval-and-fulfillment
// workflow.
type PurchaseOrderStatus string

const (
	PurchaseOrderDraft           PurchaseOrderStatus = "draft"
	PurchaseOrderPendingApproval PurchaseOrderStatus = "pending_approval"
	PurchaseOrderApproved        PurchaseOrderStatus = "approved"
	PurchaseOrderRejected        PurchaseOrderStatus = "rejected"
	PurchaseOrderSent            PurchaseOrderStatus = "sent"
	PurchaseOrderConfirmed       PurchaseOrderStatus = "confirmed"
	PurchaseOrderPartial         PurchaseOrderStatus = "partial"
	PurchaseOrderReceived        PurchaseOrderStatus = "received"
	PurchaseOrderCancelled       PurchaseOrderStatus = "cancelled"
)

// purchaseOrderTransitions is the single transition table for the workflow.
// rejected, received and cancelled are terminal. partial may repeat while
// receipts accumulate.
var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderDraft:           {PurchaseOrderPendingApproval},
	PurchaseOrderPendingApproval: {PurchaseOrderApproved, PurchaseOrderRejected},
	PurchaseOrderApproved:        {PurchaseOrderSent},
	PurchaseOrderSent:            {PurchaseOrderConfirmed, PurchaseOrderCancelled},
	PurchaseOrderConfirmed:       {PurchaseOrderPartial, PurchaseOrderReceived, PurchaseOrderCancelled},
	PurchaseOrderPartial:         {PurchaseOrderPartial, PurchaseOrderReceived, PurchaseOrderCancelled},
}

// CanTransitionTo reports whether the transition is listed in the table.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	for _, allowed := range purchaseOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s PurchaseOrderStatus) Terminal() bool {
	return len(purchaseOrderTransitions[s]) == 0
}

// PurchaseOrderItem is one ordered line. ReceivedQuantity accumulates through
// partial and full receipts and never exceeds Quantity.
type PurchaseOrderItem struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TenantID         uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PurchaseOrderID  uuid.UUID `json:"purchase_order_id" db:"purchase_order_id"`
	ProductID        uuid.UUID `json:"product_id" db:"product_id"`
	Quantity         int       `json:"quantity" db:"quantity"`
	UnitPrice        float64   `json:"unit_price" db:"unit_price"`
	ReceivedQuantity int       `json:"received_quantity" db:"received_quantity"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// LineTotal is quantity x unit price for this line.
func (i *PurchaseOrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// FullyReceived reports whether the line's receipts reached the ordered
// quantity.
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQuantity >= i.Quantity
}

// PurchaseOrder is the workflow document. Line items, supplier and warehouse
// are editable only while the order is a draft.
type PurchaseOrder struct {
	ID              uuid.UUID            `json:"id" db:"id"`
	TenantID        uuid.UUID            `json:"tenant_id" db:"tenant_id"`
	OrderNumber     string               `json:"order_number" db:"order_number"`
	SupplierID      uuid.UUID            `json:"supplier_id" db:"supplier_id"`
	WarehouseID     uuid.UUID            `json:"warehouse_id" db:"warehouse_id"`
	Status          PurchaseOrderStatus  `json:"status" db:"status"`
	Priority        string               `json:"priority" db:"priority"`
	Subtotal        float64              `json:"subtotal" db:"subtotal"`
	Tax             float64              `json:"tax" db:"tax"`
	Discount        float64              `json:"discount" db:"discount"`
	TotalAmount     float64              `json:"total_amount" db:"total_amount"`
	Notes           *string              `json:"notes" db:"notes"`
	Items           []*PurchaseOrderItem `json:"items" db:"-"`
	CreatedBy       *uuid.UUID           `json:"created_by" db:"created_by"`
	ApprovedBy      *uuid.UUID           `json:"approved_by" db:"approved_by"`
	ApprovedAt      *time.Time           `json:"approved_at" db:"approved_at"`
	RejectedBy      *uuid.UUID           `json:"rejected_by" db:"rejected_by"`
	RejectedAt      *time.Time           `json:"rejected_at" db:"rejected_at"`
	RejectionReason *string              `json:"rejection_reason" db:"rejection_reason"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" db:"updated_at"`
}

// Editable reports whether line items, supplier and warehouse may change.
func (po *PurchaseOrder) Editable() bool {
	return po.Status == PurchaseOrderDraft
}

// RecalculateTotals recomputes subtotal and total from the current items.
// Called on every item change while the order is a draft.
func (po *PurchaseOrder) RecalculateTotals() {
	subtotal := 0.0
	for _, item := range po.Items {
		subtotal += item.LineTotal()
	}
	po.Subtotal = subtotal
	po.TotalAmount = subtotal + po.Tax - po.Discount
}

// FullyReceived reports whether every line reached its ordered quantity.
func (po *PurchaseOrder) FullyReceived() bool {
	for _, item := range po.Items {
		if !item.FullyReceived() {
			return false
		}
	}
	return len(po.Items) > 0
}
