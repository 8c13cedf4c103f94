package services

import (
	"context"
	"log"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

const alertScanPageSize = 500

type AlertService interface {
	// ListAlerts classifies every stock record for the tenant and returns
	// those that need attention, optionally scoped to one warehouse.
	ListAlerts(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]*models.StockAlert, error)
}

type alertService struct {
	stockRepo   repositories.StockRepository
	productRepo repositories.ProductRepository
	cache       caching.CacheService
}

func NewAlertService(stockRepo repositories.StockRepository, productRepo repositories.ProductRepository, cache caching.CacheService) AlertService {
	return &alertService{stockRepo: stockRepo, productRepo: productRepo, cache: cache}
}

func (s *alertService) lookupProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProduct(ctx, tenantID, productID); err == nil && cached != nil {
			return cached, nil
		}
	}
	product, err := s.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, tenantID, product, stockCacheTTL); err != nil {
			log.Printf("WARN: product cache write failed: %v", err)
		}
	}
	return product, nil
}

func (s *alertService) ListAlerts(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]*models.StockAlert, error) {
	var alerts []*models.StockAlert

	for offset := 0; ; offset += alertScanPageSize {
		var records []*models.StockRecord
		var err error
		if warehouseID != nil {
			records, err = s.stockRepo.ListByWarehouse(ctx, tenantID, *warehouseID, alertScanPageSize, offset)
		} else {
			records, err = s.stockRepo.List(ctx, tenantID, alertScanPageSize, offset)
		}
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			product, err := s.lookupProduct(ctx, tenantID, record.ProductID)
			if err != nil {
				return nil, err
			}

			status := models.ClassifyStock(record.Quantity, product)
			if status == models.StockStatusInStock {
				continue
			}
			alerts = append(alerts, &models.StockAlert{
				ProductID:         record.ProductID,
				ProductSKU:        product.SKU,
				ProductName:       product.Name,
				WarehouseID:       record.WarehouseID,
				Quantity:          record.Quantity,
				AvailableQuantity: record.AvailableQuantity(),
				ReorderLevel:      product.ReorderLevel,
				Status:            status,
				Severity:          models.SeverityForStatus(status, record.Quantity, product.ReorderLevel),
			})
		}

		if len(records) < alertScanPageSize {
			break
		}
	}
	return alerts, nil
}
