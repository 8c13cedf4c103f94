package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
)

const stockCacheTTL = 5 * time.Minute

// AdjustmentRequest describes one manual correction or workflow-driven
// receipt against a single (warehouse, product) pair.
type AdjustmentRequest struct {
	WarehouseID  uuid.UUID               `json:"warehouse_id"`
	ProductID    uuid.UUID               `json:"product_id"`
	Type         models.AdjustmentType   `json:"type"`
	Quantity     int                     `json:"quantity"`
	Reason       models.AdjustmentReason `json:"reason"`
	Reference    string                  `json:"reference"`
	Notes        *string                 `json:"notes"`
	MovementType models.MovementType     `json:"-"`
}

type AdjustmentService interface {
	// Adjust applies the request atomically and appends the audit movement.
	// A set to the current quantity is a no-op and writes no movement. A
	// non-nil q scopes both writes to the caller's transaction; workflow
	// services use this to post receipts together with their own rows.
	Adjust(ctx context.Context, q repositories.Querier, tenantID uuid.UUID, req *AdjustmentRequest) (*models.StockRecord, error)
}

type adjustmentService struct {
	stockRepo     repositories.StockRepository
	movementRepo  repositories.MovementRepository
	productRepo   repositories.ProductRepository
	warehouseRepo repositories.WarehouseRepository
	cache         caching.CacheService
}

func NewAdjustmentService(
	stockRepo repositories.StockRepository,
	movementRepo repositories.MovementRepository,
	productRepo repositories.ProductRepository,
	warehouseRepo repositories.WarehouseRepository,
	cache caching.CacheService,
) AdjustmentService {
	return &adjustmentService{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

func (s *adjustmentService) validate(req *AdjustmentRequest) error {
	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown adjustment type %q", common.ErrValidation, req.Type)
	}
	if !req.Reason.Valid() {
		return fmt.Errorf("%w: unknown adjustment reason %q", common.ErrValidation, req.Reason)
	}
	switch req.Type {
	case models.AdjustmentSet:
		if req.Quantity < 0 {
			return fmt.Errorf("%w: set quantity cannot be negative", common.ErrValidation)
		}
	default:
		if req.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", common.ErrValidation)
		}
	}
	return nil
}

// lookupProduct resolves the product through the cache first.
func (s *adjustmentService) lookupProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
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

func (s *adjustmentService) Adjust(ctx context.Context, q repositories.Querier, tenantID uuid.UUID, req *AdjustmentRequest) (*models.StockRecord, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	product, err := s.lookupProduct(ctx, tenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", common.ErrNotFound, req.ProductID)
		}
		return nil, err
	}
	if _, err := s.warehouseRepo.GetByID(ctx, tenantID, req.WarehouseID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: warehouse %s", common.ErrNotFound, req.WarehouseID)
		}
		return nil, err
	}

	var record *models.StockRecord
	var delta int
	switch req.Type {
	case models.AdjustmentSet:
		existing, err := s.stockRepo.GetByWarehouseAndProduct(ctx, tenantID, req.WarehouseID, req.ProductID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		if existing == nil {
			// First write materializes the record at the target level.
			delta = req.Quantity
			record, err = s.stockRepo.ApplyDelta(ctx, q, tenantID, req.WarehouseID, req.ProductID, delta, 0)
			if err != nil {
				return nil, err
			}
		} else {
			delta = req.Quantity - existing.Quantity
			if delta == 0 {
				// Already at the target; nothing to record.
				return existing, nil
			}
			// Keyed on the quantity just read, so a racing writer turns this
			// into a conflict instead of being silently folded in.
			record, err = s.stockRepo.SetQuantity(ctx, q, tenantID, req.WarehouseID, req.ProductID, existing.Quantity, req.Quantity)
			if err != nil {
				return nil, err
			}
		}
	default:
		delta = req.Quantity
		if req.Type == models.AdjustmentDecrease {
			delta = -req.Quantity
		}
		var err error
		record, err = s.stockRepo.ApplyDelta(ctx, q, tenantID, req.WarehouseID, req.ProductID, delta, 0)
		if err != nil {
			if errors.Is(err, common.ErrInvariantViolation) && delta < 0 {
				return nil, fmt.Errorf("%w: cannot remove %d units of product %s from warehouse %s",
					common.ErrInsufficientStock, -delta, req.ProductID, req.WarehouseID)
			}
			return nil, err
		}
	}
	if delta == 0 {
		return record, nil
	}

	movementType := req.MovementType
	if movementType == "" {
		movementType = models.MovementAdjustment
	}
	reference := req.Reference
	if reference == "" {
		reference = string(req.Reason)
	}
	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}

	movement := &models.StockMovement{
		TenantID:          tenantID,
		ProductID:         req.ProductID,
		WarehouseID:       req.WarehouseID,
		Type:              movementType,
		QuantityDelta:     delta,
		Reference:         reference,
		Notes:             req.Notes,
		ActorID:           actorID,
		ResultingQuantity: record.Quantity,
		ResultingStatus:   models.ClassifyStock(record.Quantity, product),
	}
	if err := s.movementRepo.Create(ctx, q, movement); err != nil {
		return nil, fmt.Errorf("stock updated but movement write failed: %w", err)
	}

	if s.cache != nil {
		if q == nil {
			if err := s.cache.SetStockRecord(ctx, tenantID, record, stockCacheTTL); err != nil {
				log.Printf("WARN: stock cache write failed: %v", err)
			}
		} else {
			// Inside a caller's transaction the record is not committed yet;
			// drop the cached entry instead of writing a value that may roll
			// back.
			if err := s.cache.DeleteStockRecord(ctx, tenantID, req.WarehouseID, req.ProductID); err != nil {
				log.Printf("WARN: stock cache invalidation failed: %v", err)
			}
		}
	}
	return record, nil
}
