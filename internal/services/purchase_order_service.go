package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// PurchaseOrderItemRequest is one ordered line in a create or update request.
type PurchaseOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// PurchaseOrderRequest carries the editable fields of a draft order.
type PurchaseOrderRequest struct {
	SupplierID  uuid.UUID                  `json:"supplier_id"`
	WarehouseID uuid.UUID                  `json:"warehouse_id"`
	Priority    string                     `json:"priority"`
	Tax         float64                    `json:"tax"`
	Discount    float64                    `json:"discount"`
	Notes       *string                    `json:"notes"`
	Items       []PurchaseOrderItemRequest `json:"items"`
}

// ReceiptLine records how many units arrived against one order line.
type ReceiptLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

type PurchaseOrderService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *PurchaseOrderRequest) (*models.PurchaseOrder, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, tenantID uuid.UUID, status *models.PurchaseOrderStatus, limit, offset int) ([]*models.PurchaseOrder, error)
	UpdateDraft(ctx context.Context, tenantID, id uuid.UUID, req *PurchaseOrderRequest) (*models.PurchaseOrder, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// SubmitForApproval moves a draft with at least one line into review.
	SubmitForApproval(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	Approve(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	Reject(ctx context.Context, tenantID, id uuid.UUID, reason string) (*models.PurchaseOrder, error)
	MarkSent(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	MarkConfirmed(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	// MarkPartial posts the given receipts into stock and leaves the order
	// partially received.
	MarkPartial(ctx context.Context, tenantID, id uuid.UUID, receipts []ReceiptLine) (*models.PurchaseOrder, error)
	// MarkReceived posts whatever is still outstanding on every line and
	// closes the order.
	MarkReceived(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	// MarkCancelled closes the order without reversing receipts already
	// posted; corrections go through manual adjustments.
	MarkCancelled(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
}

type purchaseOrderService struct {
	db            repositories.DB
	orderRepo     repositories.PurchaseOrderRepository
	productRepo   repositories.ProductRepository
	supplierRepo  repositories.SupplierRepository
	warehouseRepo repositories.WarehouseRepository
	adjustments   AdjustmentService
}

func NewPurchaseOrderService(
	db repositories.DB,
	orderRepo repositories.PurchaseOrderRepository,
	productRepo repositories.ProductRepository,
	supplierRepo repositories.SupplierRepository,
	warehouseRepo repositories.WarehouseRepository,
	adjustments AdjustmentService,
) PurchaseOrderService {
	return &purchaseOrderService{
		db:            db,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		adjustments:   adjustments,
	}
}

func generateOrderNumber() string {
	return "PO-" + random.String(8, random.Uppercase+random.Numeric)
}

func (s *purchaseOrderService) validateRequest(ctx context.Context, tenantID uuid.UUID, req *PurchaseOrderRequest) error {
	if _, err := s.supplierRepo.GetByID(ctx, tenantID, req.SupplierID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: supplier %s", common.ErrNotFound, req.SupplierID)
		}
		return err
	}
	if _, err := s.warehouseRepo.GetByID(ctx, tenantID, req.WarehouseID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: warehouse %s", common.ErrNotFound, req.WarehouseID)
		}
		return err
	}
	if req.Tax < 0 || req.Discount < 0 {
		return fmt.Errorf("%w: tax and discount cannot be negative", common.ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", common.ErrValidation)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: unit price cannot be negative", common.ErrValidation)
		}
		if _, err := s.productRepo.GetByID(ctx, tenantID, item.ProductID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("%w: product %s", common.ErrNotFound, item.ProductID)
			}
			return err
		}
	}
	return nil
}

func buildOrderItems(req *PurchaseOrderRequest) []*models.PurchaseOrderItem {
	items := make([]*models.PurchaseOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.PurchaseOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return items
}

func (s *purchaseOrderService) Create(ctx context.Context, tenantID uuid.UUID, req *PurchaseOrderRequest) (*models.PurchaseOrder, error) {
	if err := s.validateRequest(ctx, tenantID, req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}
	var createdBy *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		createdBy = &userID
	}

	order := &models.PurchaseOrder{
		TenantID:    tenantID,
		OrderNumber: generateOrderNumber(),
		SupplierID:  req.SupplierID,
		WarehouseID: req.WarehouseID,
		Status:      models.PurchaseOrderDraft,
		Priority:    priority,
		Tax:         req.Tax,
		Discount:    req.Discount,
		Notes:       req.Notes,
		Items:       buildOrderItems(req),
		CreatedBy:   createdBy,
	}
	order.RecalculateTotals()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *purchaseOrderService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, status *models.PurchaseOrderStatus, limit, offset int) ([]*models.PurchaseOrder, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.orderRepo.List(ctx, tenantID, status, limit, offset)
}

func (s *purchaseOrderService) UpdateDraft(ctx context.Context, tenantID, id uuid.UUID, req *PurchaseOrderRequest) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.Editable() {
		return nil, fmt.Errorf("%w: purchase order %s is %s and no longer editable",
			common.ErrInvalidStateTransition, order.OrderNumber, order.Status)
	}
	if err := s.validateRequest(ctx, tenantID, req); err != nil {
		return nil, err
	}

	order.SupplierID = req.SupplierID
	order.WarehouseID = req.WarehouseID
	if req.Priority != "" {
		order.Priority = req.Priority
	}
	order.Tax = req.Tax
	order.Discount = req.Discount
	order.Notes = req.Notes
	order.Items = buildOrderItems(req)
	order.RecalculateTotals()

	if err := s.orderRepo.UpdateDraft(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *purchaseOrderService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.orderRepo.DeleteDraft(ctx, tenantID, id)
}

func (s *purchaseOrderService) SubmitForApproval(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase order %s has no items", common.ErrValidation, order.OrderNumber)
	}
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, models.PurchaseOrderDraft, models.PurchaseOrderPendingApproval, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) Approve(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, models.PurchaseOrderPendingApproval, models.PurchaseOrderApproved, actorID, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) Reject(ctx context.Context, tenantID, id uuid.UUID, reason string) (*models.PurchaseOrder, error) {
	if err := common.ValidateRequiredString(reason, "rejection reason"); err != nil {
		return nil, err
	}
	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, models.PurchaseOrderPendingApproval, models.PurchaseOrderRejected, actorID, &reason); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) MarkSent(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, models.PurchaseOrderApproved, models.PurchaseOrderSent, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) MarkConfirmed(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, models.PurchaseOrderSent, models.PurchaseOrderConfirmed, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

// postReceipt puts arrived units into stock and accumulates them on the line.
// Both writes share one transaction so a failure cannot leave stock posted
// without the matching received quantity.
func (s *purchaseOrderService) postReceipt(ctx context.Context, order *models.PurchaseOrder, item *models.PurchaseOrderItem, quantity int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := s.adjustments.Adjust(ctx, tx, order.TenantID, &AdjustmentRequest{
		WarehouseID:  order.WarehouseID,
		ProductID:    item.ProductID,
		Type:         models.AdjustmentIncrease,
		Quantity:     quantity,
		Reason:       models.ReasonPurchaseReceipt,
		Reference:    order.OrderNumber,
		MovementType: models.MovementPurchaseReceipt,
	}); err != nil {
		return err
	}
	if err := s.orderRepo.AddItemReceipt(ctx, tx, order.TenantID, item.ID, quantity); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *purchaseOrderService) MarkPartial(ctx context.Context, tenantID, id uuid.UUID, receipts []ReceiptLine) (*models.PurchaseOrder, error) {
	if len(receipts) == 0 {
		return nil, fmt.Errorf("%w: at least one receipt line is required", common.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.PurchaseOrderPartial) {
		return nil, fmt.Errorf("%w: purchase order %s cannot receive goods while %s",
			common.ErrInvalidStateTransition, order.OrderNumber, order.Status)
	}

	itemsByID := make(map[uuid.UUID]*models.PurchaseOrderItem, len(order.Items))
	for _, item := range order.Items {
		itemsByID[item.ID] = item
	}
	for _, receipt := range receipts {
		item, ok := itemsByID[receipt.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s does not belong to order %s",
				common.ErrValidation, receipt.ItemID, order.OrderNumber)
		}
		if receipt.Quantity <= 0 {
			return nil, fmt.Errorf("%w: receipt quantity must be positive", common.ErrValidation)
		}
		if remaining := item.Quantity - item.ReceivedQuantity; receipt.Quantity > remaining {
			return nil, fmt.Errorf("%w: receipt of %d exceeds remaining %d on item %s",
				common.ErrValidation, receipt.Quantity, remaining, receipt.ItemID)
		}
	}

	for _, receipt := range receipts {
		if err := s.postReceipt(ctx, order, itemsByID[receipt.ItemID], receipt.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, order.Status, models.PurchaseOrderPartial, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) MarkReceived(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.PurchaseOrderReceived) {
		return nil, fmt.Errorf("%w: purchase order %s cannot be received while %s",
			common.ErrInvalidStateTransition, order.OrderNumber, order.Status)
	}

	for _, item := range order.Items {
		remaining := item.Quantity - item.ReceivedQuantity
		if remaining <= 0 {
			continue
		}
		if err := s.postReceipt(ctx, order, item, remaining); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, order.Status, models.PurchaseOrderReceived, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}

func (s *purchaseOrderService) MarkCancelled(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(models.PurchaseOrderCancelled) {
		return nil, fmt.Errorf("%w: purchase order %s cannot cancel from %s",
			common.ErrInvalidStateTransition, order.OrderNumber, order.Status)
	}
	if err := s.orderRepo.UpdateStatus(ctx, nil, tenantID, id, order.Status, models.PurchaseOrderCancelled, nil, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, tenantID, id)
}
