package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Warehouse, error)
	GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*models.Warehouse, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type warehouseRepo struct {
	db DB
}

func NewWarehouseRepository(db DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

const warehouseColumns = `id, tenant_id, code, name, address, capacity, active, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*models.Warehouse, error) {
	w := &models.Warehouse{}
	err := row.Scan(&w.ID, &w.TenantID, &w.Code, &w.Name, &w.Address, &w.Capacity, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	if warehouse.ID == uuid.Nil {
		warehouse.ID = uuid.New()
	}
	now := time.Now()
	warehouse.CreatedAt = now
	warehouse.UpdatedAt = now

	query := `
		INSERT INTO warehouses (id, tenant_id, code, name, address, capacity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		warehouse.ID, warehouse.TenantID, warehouse.Code, warehouse.Name,
		warehouse.Address, warehouse.Capacity, warehouse.Active,
		warehouse.CreatedAt, warehouse.UpdatedAt)
	return err
}

func (r *warehouseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE tenant_id = $1 AND id = $2
	`
	w, err := scanWarehouse(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE tenant_id = $1 AND code = $2
	`
	w, err := scanWarehouse(r.db.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		w := &models.Warehouse{}
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Code, &w.Name, &w.Address, &w.Capacity, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $3, address = $4, capacity = $5, active = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		warehouse.TenantID, warehouse.ID, warehouse.Name,
		warehouse.Address, warehouse.Capacity, warehouse.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *warehouseRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM warehouses WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
