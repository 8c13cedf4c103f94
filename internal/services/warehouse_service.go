package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

// WarehouseRequest carries warehouse fields. Code is only honored on create.
type WarehouseRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	Capacity *int    `json:"capacity"`
	Active   *bool   `json:"active"`
}

type WarehouseService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Warehouse, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Warehouse, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository) WarehouseService {
	return &warehouseService{warehouseRepo: warehouseRepo}
}

func (s *warehouseService) Create(ctx context.Context, tenantID uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error) {
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", common.ErrValidation)
	}

	if _, err := s.warehouseRepo.GetByCode(ctx, tenantID, req.Code); err == nil {
		return nil, fmt.Errorf("%w: warehouse code %q already exists", common.ErrValidation, req.Code)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	warehouse := &models.Warehouse{
		TenantID: tenantID,
		Code:     req.Code,
		Name:     req.Name,
		Address:  req.Address,
		Capacity: req.Capacity,
		Active:   active,
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Warehouse, error) {
	return s.warehouseRepo.GetByID(ctx, tenantID, id)
}

func (s *warehouseService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Warehouse, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.warehouseRepo.List(ctx, tenantID, limit, offset)
}

func (s *warehouseService) Update(ctx context.Context, tenantID, id uuid.UUID, req *WarehouseRequest) (*models.Warehouse, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", common.ErrValidation)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	warehouse.Name = req.Name
	warehouse.Address = req.Address
	warehouse.Capacity = req.Capacity
	if req.Active != nil {
		warehouse.Active = *req.Active
	}
	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.warehouseRepo.Delete(ctx, tenantID, id)
}
