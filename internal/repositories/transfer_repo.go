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

type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error)
	List(ctx context.Context, tenantID uuid.UUID, status *models.TransferStatus, limit, offset int) ([]*models.Transfer, error)
	// UpdateStatus moves the transfer from expected to next. The status guard
	// runs in SQL so two concurrent transitions cannot both succeed; a zero
	// row count means the document was not in the expected state and
	// common.ErrInvalidStateTransition is returned. Runs on q so completion
	// can share the stock transaction.
	UpdateStatus(ctx context.Context, q Querier, tenantID, id uuid.UUID, expected, next models.TransferStatus) error
}

type transferRepo struct {
	db DB
}

func NewTransferRepository(db DB) TransferRepository {
	return &transferRepo{db: db}
}

const transferColumns = `id, tenant_id, transfer_number, product_id, from_warehouse_id, to_warehouse_id, quantity, reason, status, created_by, created_at, updated_at, completed_at`

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	t := &models.Transfer{}
	err := row.Scan(&t.ID, &t.TenantID, &t.TransferNumber, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Quantity, &t.Reason, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *transferRepo) Create(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}
	now := time.Now()
	transfer.CreatedAt = now
	transfer.UpdatedAt = now

	query := `
		INSERT INTO stock_transfers (id, tenant_id, transfer_number, product_id, from_warehouse_id, to_warehouse_id, quantity, reason, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		transfer.ID, transfer.TenantID, transfer.TransferNumber, transfer.ProductID,
		transfer.FromWarehouseID, transfer.ToWarehouseID, transfer.Quantity,
		transfer.Reason, transfer.Status, transfer.CreatedBy, transfer.CreatedAt, transfer.UpdatedAt)
	return err
}

func (r *transferRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers
		WHERE tenant_id = $1 AND id = $2
	`
	t, err := scanTransfer(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *transferRepo) List(ctx context.Context, tenantID uuid.UUID, status *models.TransferStatus, limit, offset int) ([]*models.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers
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

	var transfers []*models.Transfer
	for rows.Next() {
		t := &models.Transfer{}
		if err := rows.Scan(&t.ID, &t.TenantID, &t.TransferNumber, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.Quantity, &t.Reason, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (r *transferRepo) UpdateStatus(ctx context.Context, q Querier, tenantID, id uuid.UUID, expected, next models.TransferStatus) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE stock_transfers
		SET status = $4,
		    updated_at = NOW(),
		    completed_at = CASE WHEN $4 = 'completed' THEN NOW() ELSE completed_at END
		WHERE tenant_id = $1 AND id = $2 AND status = $3
	`
	tag, err := q.Exec(ctx, query, tenantID, id, expected, next)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transfer %s is not %s", common.ErrInvalidStateTransition, id, expected)
	}
	return nil
}
