package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
)

// MovementRepository is the append-only audit log of quantity changes.
// There is deliberately no update or delete.
type MovementRepository interface {
	Create(ctx context.Context, q Querier, movement *models.StockMovement) error
	List(ctx context.Context, tenantID uuid.UUID, filter *models.MovementFilter) ([]*models.StockMovement, error)
}

type movementRepo struct {
	db DB
}

func NewMovementRepository(db DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) Create(ctx context.Context, q Querier, movement *models.StockMovement) error {
	if q == nil {
		q = r.db
	}
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO stock_movements (id, tenant_id, product_id, warehouse_id, type, quantity_delta, related_warehouse_id, reference, notes, actor_id, resulting_quantity, resulting_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query,
		movement.ID, movement.TenantID, movement.ProductID, movement.WarehouseID,
		movement.Type, movement.QuantityDelta, movement.RelatedWarehouseID,
		movement.Reference, movement.Notes, movement.ActorID, movement.ResultingQuantity,
		movement.ResultingStatus, movement.CreatedAt)
	return err
}

func (r *movementRepo) List(ctx context.Context, tenantID uuid.UUID, filter *models.MovementFilter) ([]*models.StockMovement, error) {
	if filter == nil {
		filter = &models.MovementFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT id, tenant_id, product_id, warehouse_id, type, quantity_delta, related_warehouse_id, reference, notes, actor_id, resulting_quantity, resulting_status, created_at
		FROM stock_movements
		WHERE tenant_id = $1
	`
	args := []any{tenantID}
	argCount := 1

	if filter.Type != nil {
		argCount++
		queryBase += fmt.Sprintf(` AND type = $%d`, argCount)
		args = append(args, *filter.Type)
	}
	if filter.ProductID != nil {
		argCount++
		queryBase += fmt.Sprintf(` AND product_id = $%d`, argCount)
		args = append(args, *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		argCount++
		queryBase += fmt.Sprintf(` AND warehouse_id = $%d`, argCount)
		args = append(args, *filter.WarehouseID)
	}
	if filter.From != nil {
		argCount++
		queryBase += fmt.Sprintf(` AND created_at >= $%d`, argCount)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		argCount++
		queryBase += fmt.Sprintf(` AND created_at <= $%d`, argCount)
		args = append(args, *filter.To)
	}

	queryBase += ` ORDER BY created_at DESC`

	argCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, argCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		argCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, argCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		m := &models.StockMovement{}
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &m.WarehouseID, &m.Type, &m.QuantityDelta, &m.RelatedWarehouseID, &m.Reference, &m.Notes, &m.ActorID, &m.ResultingQuantity, &m.ResultingStatus, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
