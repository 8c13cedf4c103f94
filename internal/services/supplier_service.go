package services

import (
	"context"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

type SupplierRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

type SupplierService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *SupplierRequest) (*models.Supplier, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req *SupplierRequest) (*models.Supplier, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, tenantID uuid.UUID, req *SupplierRequest) (*models.Supplier, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{
		TenantID:      tenantID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, tenantID, id)
}

func (s *supplierService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Supplier, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.supplierRepo.List(ctx, tenantID, limit, offset)
}

func (s *supplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req *SupplierRequest) (*models.Supplier, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, tenantID, id)
}
