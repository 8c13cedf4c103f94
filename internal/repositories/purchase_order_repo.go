package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error)
	List(ctx context.Context, tenantID uuid.UUID, status *models.PurchaseOrderStatus, limit, offset int) ([]*models.PurchaseOrder, error)
	// UpdateDraft replaces the order header and line items in one transaction.
	// The status guard keeps it from touching anything past draft.
	UpdateDraft(ctx context.Context, order *models.PurchaseOrder) error
	DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error
	// UpdateStatus moves the order from expected to next with the same SQL
	// status guard as transfers; zero rows means ErrInvalidStateTransition.
	// actorID and reason land in the approval/rejection metadata columns
	// when next is approved or rejected.
	UpdateStatus(ctx context.Context, q Querier, tenantID, id uuid.UUID, expected, next models.PurchaseOrderStatus, actorID *uuid.UUID, reason *string) error
	// AddItemReceipt accumulates a receipt on one line, capped at the ordered
	// quantity by the SQL guard.
	AddItemReceipt(ctx context.Context, q Querier, tenantID, itemID uuid.UUID, quantity int) error
}

type purchaseOrderRepo struct {
	db DB
}

func NewPurchaseOrderRepository(db DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

const purchaseOrderColumns = `id, tenant_id, order_number, supplier_id, warehouse_id, status, priority, subtotal, tax, discount, total_amount, notes, created_by, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at, updated_at`

const purchaseOrderItemColumns = `id, tenant_id, purchase_order_id, product_id, quantity, unit_price, received_quantity, created_at, updated_at`

func scanPurchaseOrder(row pgx.Row) (*models.PurchaseOrder, error) {
	po := &models.PurchaseOrder{}
	err := row.Scan(&po.ID, &po.TenantID, &po.OrderNumber, &po.SupplierID, &po.WarehouseID,
		&po.Status, &po.Priority, &po.Subtotal, &po.Tax, &po.Discount, &po.TotalAmount,
		&po.Notes, &po.CreatedBy, &po.ApprovedBy, &po.ApprovedAt,
		&po.RejectedBy, &po.RejectedAt, &po.RejectionReason, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func insertOrderItems(ctx context.Context, q Querier, order *models.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_order_items (id, tenant_id, purchase_order_id, product_id, quantity, unit_price, received_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now()
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.TenantID = order.TenantID
		item.PurchaseOrderID = order.ID
		item.CreatedAt = now
		item.UpdatedAt = now
		if _, err := q.Exec(ctx, query,
			item.ID, item.TenantID, item.PurchaseOrderID, item.ProductID,
			item.Quantity, item.UnitPrice, item.ReceivedQuantity, item.CreatedAt, item.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *purchaseOrderRepo) Create(ctx context.Context, order *models.PurchaseOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO purchase_orders (id, tenant_id, order_number, supplier_id, warehouse_id, status, priority, subtotal, tax, discount, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.TenantID, order.OrderNumber, order.SupplierID, order.WarehouseID,
		order.Status, order.Priority, order.Subtotal, order.Tax, order.Discount,
		order.TotalAmount, order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}
	if err := insertOrderItems(ctx, tx, order); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE tenant_id = $1 AND id = $2
	`
	po, err := scanPurchaseOrder(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	itemQuery := `
		SELECT ` + purchaseOrderItemColumns + `
		FROM purchase_order_items
		WHERE tenant_id = $1 AND purchase_order_id = $2
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, itemQuery, tenantID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		item := &models.PurchaseOrderItem{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.PurchaseOrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.ReceivedQuantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		po.Items = append(po.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, tenantID uuid.UUID, status *models.PurchaseOrderStatus, limit, offset int) ([]*models.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE tenant_id = $1
	`
	args := []any{tenantID}
	if status != nil {
		query += ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, *status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PurchaseOrder
	for rows.Next() {
		po := &models.PurchaseOrder{}
		if err := rows.Scan(&po.ID, &po.TenantID, &po.OrderNumber, &po.SupplierID, &po.WarehouseID,
			&po.Status, &po.Priority, &po.Subtotal, &po.Tax, &po.Discount, &po.TotalAmount,
			&po.Notes, &po.CreatedBy, &po.ApprovedBy, &po.ApprovedAt,
			&po.RejectedBy, &po.RejectedAt, &po.RejectionReason, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (r *purchaseOrderRepo) UpdateDraft(ctx context.Context, order *models.PurchaseOrder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE purchase_orders
		SET supplier_id = $3, warehouse_id = $4, priority = $5, subtotal = $6, tax = $7, discount = $8, total_amount = $9, notes = $10, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND status = 'draft'
	`
	tag, err := tx.Exec(ctx, query,
		order.TenantID, order.ID, order.SupplierID, order.WarehouseID, order.Priority,
		order.Subtotal, order.Tax, order.Discount, order.TotalAmount, order.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %s is not editable", common.ErrInvalidStateTransition, order.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE tenant_id = $1 AND purchase_order_id = $2`, order.TenantID, order.ID); err != nil {
		return err
	}
	if err := insertOrderItems(ctx, tx, order); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *purchaseOrderRepo) DeleteDraft(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE tenant_id = $1 AND purchase_order_id = $2`, tenantID, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE tenant_id = $1 AND id = $2 AND status = 'draft'`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %s is not a draft", common.ErrInvalidStateTransition, id)
	}
	return tx.Commit(ctx)
}

func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, q Querier, tenantID, id uuid.UUID, expected, next models.PurchaseOrderStatus, actorID *uuid.UUID, reason *string) error {
	if q == nil {
		q = r.db
	}

	var query string
	var args []any
	switch next {
	case models.PurchaseOrderApproved:
		query = `
			UPDATE purchase_orders
			SET status = $4, approved_by = $5, approved_at = NOW(), updated_at = NOW()
			WHERE tenant_id = $1 AND id = $2 AND status = $3
		`
		args = []any{tenantID, id, expected, next, actorID}
	case models.PurchaseOrderRejected:
		query = `
			UPDATE purchase_orders
			SET status = $4, rejected_by = $5, rejected_at = NOW(), rejection_reason = $6, updated_at = NOW()
			WHERE tenant_id = $1 AND id = $2 AND status = $3
		`
		args = []any{tenantID, id, expected, next, actorID, reason}
	default:
		query = `
			UPDATE purchase_orders
			SET status = $4, updated_at = NOW()
			WHERE tenant_id = $1 AND id = $2 AND status = $3
		`
		args = []any{tenantID, id, expected, next}
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %s is not %s", common.ErrInvalidStateTransition, id, expected)
	}
	return nil
}

func (r *purchaseOrderRepo) AddItemReceipt(ctx context.Context, q Querier, tenantID, itemID uuid.UUID, quantity int) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE purchase_order_items
		SET received_quantity = received_quantity + $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2 AND received_quantity + $3 <= quantity
	`
	tag, err := q.Exec(ctx, query, tenantID, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: receipt of %d exceeds remaining quantity on item %s", common.ErrValidation, quantity, itemID)
	}
	return nil
}
