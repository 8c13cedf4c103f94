package services

import (
	"context"
	"log"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

// ValuationReport is the per-warehouse breakdown plus the tenant grand total.
type ValuationReport struct {
	Warehouses    []*models.WarehouseValuation `json:"warehouses"`
	TotalQuantity int                          `json:"total_quantity"`
	TotalValue    float64                      `json:"total_value"`
}

type StockService interface {
	GetRecord(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*models.StockRecord, error)
	List(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, limit, offset int) ([]*models.StockRecord, error)
	Movements(ctx context.Context, tenantID uuid.UUID, filter *models.MovementFilter) ([]*models.StockMovement, error)
	Valuation(ctx context.Context, tenantID uuid.UUID) (*ValuationReport, error)
}

type stockService struct {
	stockRepo    repositories.StockRepository
	movementRepo repositories.MovementRepository
	cache        caching.CacheService
}

func NewStockService(stockRepo repositories.StockRepository, movementRepo repositories.MovementRepository, cache caching.CacheService) StockService {
	return &stockService{stockRepo: stockRepo, movementRepo: movementRepo, cache: cache}
}

func (s *stockService) GetRecord(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*models.StockRecord, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStockRecord(ctx, tenantID, warehouseID, productID); err == nil && cached != nil {
			return cached, nil
		}
	}

	record, err := s.stockRepo.GetByWarehouseAndProduct(ctx, tenantID, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetStockRecord(ctx, tenantID, record, stockCacheTTL); err != nil {
			log.Printf("WARN: stock cache write failed: %v", err)
		}
	}
	return record, nil
}

func (s *stockService) List(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, limit, offset int) ([]*models.StockRecord, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	if warehouseID != nil {
		return s.stockRepo.ListByWarehouse(ctx, tenantID, *warehouseID, limit, offset)
	}
	return s.stockRepo.List(ctx, tenantID, limit, offset)
}

func (s *stockService) Movements(ctx context.Context, tenantID uuid.UUID, filter *models.MovementFilter) ([]*models.StockMovement, error) {
	return s.movementRepo.List(ctx, tenantID, filter)
}

func (s *stockService) Valuation(ctx context.Context, tenantID uuid.UUID) (*ValuationReport, error) {
	valuations, err := s.stockRepo.Valuation(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &ValuationReport{Warehouses: valuations}
	for _, v := range valuations {
		report.TotalQuantity += v.TotalQuantity
		report.TotalValue += v.TotalValue
	}
	return report, nil
}
