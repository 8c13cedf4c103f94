package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderDraft, PurchaseOrderPendingApproval, PurchaseOrderApproved,
	PurchaseOrderRejected, PurchaseOrderSent, PurchaseOrderConfirmed,
	PurchaseOrderPartial, PurchaseOrderReceived, PurchaseOrderCancelled,
}

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	allowed := map[PurchaseOrderStatus][]PurchaseOrderStatus{
		PurchaseOrderDraft:           {PurchaseOrderPendingApproval},
		PurchaseOrderPendingApproval: {PurchaseOrderApproved, PurchaseOrderRejected},
		PurchaseOrderApproved:        {PurchaseOrderSent},
		PurchaseOrderSent:            {PurchaseOrderConfirmed, PurchaseOrderCancelled},
		PurchaseOrderConfirmed:       {PurchaseOrderPartial, PurchaseOrderReceived, PurchaseOrderCancelled},
		PurchaseOrderPartial:         {PurchaseOrderPartial, PurchaseOrderReceived, PurchaseOrderCancelled},
		PurchaseOrderRejected:        {},
		PurchaseOrderReceived:        {},
		PurchaseOrderCancelled:       {},
	}

	for from, nexts := range allowed {
		permitted := make(map[PurchaseOrderStatus]bool)
		for _, next := range nexts {
			permitted[next] = true
		}
		for _, to := range allPurchaseOrderStatuses {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestPurchaseOrderStatusTerminal(t *testing.T) {
	terminal := map[PurchaseOrderStatus]bool{
		PurchaseOrderRejected:  true,
		PurchaseOrderReceived:  true,
		PurchaseOrderCancelled: true,
	}
	for _, status := range allPurchaseOrderStatuses {
		assert.Equal(t, terminal[status], status.Terminal(), "status %s", status)
	}
}

func TestPurchaseOrderRecalculateTotals(t *testing.T) {
	order := &PurchaseOrder{
		Tax:      12.5,
		Discount: 10,
		Items: []*PurchaseOrderItem{
			{Quantity: 10, UnitPrice: 5},
			{Quantity: 5, UnitPrice: 20},
		},
	}
	order.RecalculateTotals()

	assert.Equal(t, 150.0, order.Subtotal)
	assert.Equal(t, 152.5, order.TotalAmount)
}

func TestPurchaseOrderRecalculateTotalsEmpty(t *testing.T) {
	order := &PurchaseOrder{Tax: 5, Discount: 2}
	order.RecalculateTotals()

	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 3.0, order.TotalAmount)
}

func TestPurchaseOrderFullyReceived(t *testing.T) {
	order := &PurchaseOrder{
		Items: []*PurchaseOrderItem{
			{Quantity: 10, ReceivedQuantity: 10},
			{Quantity: 5, ReceivedQuantity: 3},
		},
	}
	assert.False(t, order.FullyReceived())

	order.Items[1].ReceivedQuantity = 5
	assert.True(t, order.FullyReceived())
}

func TestPurchaseOrderFullyReceivedNoItems(t *testing.T) {
	order := &PurchaseOrder{}
	assert.False(t, order.FullyReceived())
}

func TestPurchaseOrderEditable(t *testing.T) {
	order := &PurchaseOrder{Status: PurchaseOrderDraft}
	assert.True(t, order.Editable())

	order.Status = PurchaseOrderPendingApproval
	assert.False(t, order.Editable())
}

func TestPurchaseOrderItemLineTotal(t *testing.T) {
	item := &PurchaseOrderItem{Quantity: 3, UnitPrice: 7.5}
	assert.Equal(t, 22.5, item.LineTotal())
}
