package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockRepository interface {
	GetByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*models.StockRecord, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.StockRecord, error)
	ListByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, limit, offset int) ([]*models.StockRecord, error)
	// ApplyDelta atomically adds quantityDelta/reservedDelta to the record,
	// materializing it on first positive delta. The whole operation is one
	// conditional statement: if the post-condition
	// 0 <= reserved <= quantity would not hold, nothing is written and
	// common.ErrInvariantViolation is returned. Runs on q so callers can
	// scope it to a transaction.
	ApplyDelta(ctx context.Context, q Querier, tenantID, warehouseID, productID uuid.UUID, quantityDelta, reservedDelta int) (*models.StockRecord, error)
	// SetQuantity writes an absolute quantity keyed on the expected current
	// value, so a concurrent writer surfaces as a conflict instead of being
	// overwritten. The reservation must still fit under the target.
	SetQuantity(ctx context.Context, q Querier, tenantID, warehouseID, productID uuid.UUID, expected, target int) (*models.StockRecord, error)
	Valuation(ctx context.Context, tenantID uuid.UUID) ([]*models.WarehouseValuation, error)
}

type stockRepo struct {
	db DB
}

func NewStockRepository(db DB) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, tenant_id, warehouse_id, product_id, quantity, reserved_quantity, last_updated`

func scanStockRecord(row pgx.Row) (*models.StockRecord, error) {
	rec := &models.StockRecord{}
	err := row.Scan(&rec.ID, &rec.TenantID, &rec.WarehouseID, &rec.ProductID, &rec.Quantity, &rec.ReservedQuantity, &rec.LastUpdated)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *stockRepo) GetByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*models.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE tenant_id = $1 AND warehouse_id = $2 AND product_id = $3
	`
	rec, err := scanStockRecord(r.db.QueryRow(ctx, query, tenantID, warehouseID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *stockRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE tenant_id = $1
		ORDER BY last_updated DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

func (r *stockRepo) ListByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, limit, offset int) ([]*models.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE tenant_id = $1 AND warehouse_id = $2
		ORDER BY last_updated DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

func collectStockRecords(rows pgx.Rows) ([]*models.StockRecord, error) {
	var records []*models.StockRecord
	for rows.Next() {
		rec := &models.StockRecord{}
		if err := rows.Scan(&rec.ID, &rec.TenantID, &rec.WarehouseID, &rec.ProductID, &rec.Quantity, &rec.ReservedQuantity, &rec.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// applyDeltaUpsertSQL handles deltas that are valid against a zero base: the
// insert arm materializes a fresh record, the conflict arm adds the deltas
// guarded by the invariant. When the guard fails the statement returns no row
// and nothing is written.
const applyDeltaUpsertSQL = `
	INSERT INTO stock_records AS s (id, tenant_id, warehouse_id, product_id, quantity, reserved_quantity, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (tenant_id, warehouse_id, product_id) DO UPDATE
	SET quantity = s.quantity + $5,
	    reserved_quantity = s.reserved_quantity + $6,
	    last_updated = NOW()
	WHERE s.quantity + $5 >= 0
	  AND s.reserved_quantity + $6 >= 0
	  AND s.reserved_quantity + $6 <= s.quantity + $5
	RETURNING ` + stockColumns

// applyDeltaUpdateSQL handles deltas that could not create a valid record from
// a zero base (net-negative corrections, reservation releases). An absent
// record behaves like a zeroed one, so a missing row is the same guard
// failure as a violated post-condition.
const applyDeltaUpdateSQL = `
	UPDATE stock_records
	SET quantity = quantity + $4,
	    reserved_quantity = reserved_quantity + $5,
	    last_updated = NOW()
	WHERE tenant_id = $1 AND warehouse_id = $2 AND product_id = $3
	  AND quantity + $4 >= 0
	  AND reserved_quantity + $5 >= 0
	  AND reserved_quantity + $5 <= quantity + $4
	RETURNING ` + stockColumns

func (r *stockRepo) ApplyDelta(ctx context.Context, q Querier, tenantID, warehouseID, productID uuid.UUID, quantityDelta, reservedDelta int) (*models.StockRecord, error) {
	if q == nil {
		q = r.db
	}

	var row pgx.Row
	if quantityDelta >= 0 && reservedDelta >= 0 && reservedDelta <= quantityDelta {
		row = q.QueryRow(ctx, applyDeltaUpsertSQL,
			uuid.New(), tenantID, warehouseID, productID, quantityDelta, reservedDelta)
	} else {
		row = q.QueryRow(ctx, applyDeltaUpdateSQL,
			tenantID, warehouseID, productID, quantityDelta, reservedDelta)
	}

	rec, err := scanStockRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: delta (%d, %d) rejected for product %s in warehouse %s",
				common.ErrInvariantViolation, quantityDelta, reservedDelta, productID, warehouseID)
		}
		return nil, err
	}
	return rec, nil
}

const setQuantitySQL = `
	UPDATE stock_records
	SET quantity = $5,
	    last_updated = NOW()
	WHERE tenant_id = $1 AND warehouse_id = $2 AND product_id = $3
	  AND quantity = $4
	  AND reserved_quantity <= $5
	RETURNING ` + stockColumns

func (r *stockRepo) SetQuantity(ctx context.Context, q Querier, tenantID, warehouseID, productID uuid.UUID, expected, target int) (*models.StockRecord, error) {
	if q == nil {
		q = r.db
	}

	rec, err := scanStockRecord(q.QueryRow(ctx, setQuantitySQL, tenantID, warehouseID, productID, expected, target))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: set to %d rejected for product %s in warehouse %s (quantity changed concurrently or reservation exceeds target)",
				common.ErrInvariantViolation, target, productID, warehouseID)
		}
		return nil, err
	}
	return rec, nil
}

func (r *stockRepo) Valuation(ctx context.Context, tenantID uuid.UUID) ([]*models.WarehouseValuation, error) {
	query := `
		SELECT s.warehouse_id, w.name, COALESCE(SUM(s.quantity), 0), COALESCE(SUM(s.quantity * p.cost_price), 0)
		FROM stock_records s
		JOIN warehouses w ON w.tenant_id = s.tenant_id AND w.id = s.warehouse_id
		JOIN products p ON p.tenant_id = s.tenant_id AND p.id = s.product_id
		WHERE s.tenant_id = $1
		GROUP BY s.warehouse_id, w.name
		ORDER BY w.name
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var valuations []*models.WarehouseValuation
	for rows.Next() {
		v := &models.WarehouseValuation{}
		if err := rows.Scan(&v.WarehouseID, &v.WarehouseName, &v.TotalQuantity, &v.TotalValue); err != nil {
			return nil, err
		}
		valuations = append(valuations, v)
	}
	return valuations, rows.Err()
}
