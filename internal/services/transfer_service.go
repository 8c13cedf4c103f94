package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// CreateTransferRequest asks to move a quantity between two warehouses.
type CreateTransferRequest struct {
	ProductID       uuid.UUID `json:"product_id"`
	FromWarehouseID uuid.UUID `json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID `json:"to_warehouse_id"`
	Quantity        int       `json:"quantity"`
	Reason          *string   `json:"reason"`
}

type TransferService interface {
	// Create reserves the quantity at the source and records a pending
	// transfer. The reservation holds the stock without shipping it.
	Create(ctx context.Context, tenantID uuid.UUID, req *CreateTransferRequest) (*models.Transfer, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error)
	List(ctx context.Context, tenantID uuid.UUID, status *models.TransferStatus, limit, offset int) ([]*models.Transfer, error)
	// Approve moves pending to in_transit.
	Approve(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error)
	// Complete ships the goods: source loses quantity and reservation,
	// destination gains quantity, all in one transaction with the status
	// change and both audit movements.
	Complete(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error)
	// Cancel releases the reservation and closes the transfer.
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error)
}

type transferService struct {
	db            repositories.DB
	transferRepo  repositories.TransferRepository
	stockRepo     repositories.StockRepository
	movementRepo  repositories.MovementRepository
	productRepo   repositories.ProductRepository
	warehouseRepo repositories.WarehouseRepository
	cache         caching.CacheService
}

func NewTransferService(
	db repositories.DB,
	transferRepo repositories.TransferRepository,
	stockRepo repositories.StockRepository,
	movementRepo repositories.MovementRepository,
	productRepo repositories.ProductRepository,
	warehouseRepo repositories.WarehouseRepository,
	cache caching.CacheService,
) TransferService {
	return &transferService{
		db:            db,
		transferRepo:  transferRepo,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

func generateTransferNumber() string {
	return "TRF-" + random.String(8, random.Uppercase+random.Numeric)
}

func (s *transferService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateTransferRequest) (*models.Transfer, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", common.ErrValidation)
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, fmt.Errorf("%w: source and destination warehouses must differ", common.ErrValidation)
	}

	if _, err := s.productRepo.GetByID(ctx, tenantID, req.ProductID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", common.ErrNotFound, req.ProductID)
		}
		return nil, err
	}
	for _, warehouseID := range []uuid.UUID{req.FromWarehouseID, req.ToWarehouseID} {
		warehouse, err := s.warehouseRepo.GetByID(ctx, tenantID, warehouseID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, fmt.Errorf("%w: warehouse %s", common.ErrNotFound, warehouseID)
			}
			return nil, err
		}
		if !warehouse.Active {
			return nil, fmt.Errorf("%w: warehouse %s is inactive", common.ErrValidation, warehouse.Code)
		}
	}

	// Reserve at the source. The reservation fails when available stock
	// (on-hand minus already reserved) is short.
	if _, err := s.stockRepo.ApplyDelta(ctx, nil, tenantID, req.FromWarehouseID, req.ProductID, 0, req.Quantity); err != nil {
		if errors.Is(err, common.ErrInvariantViolation) {
			return nil, fmt.Errorf("%w: cannot reserve %d units of product %s in warehouse %s",
				common.ErrInsufficientStock, req.Quantity, req.ProductID, req.FromWarehouseID)
		}
		return nil, err
	}

	var createdBy *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		createdBy = &userID
	}
	transfer := &models.Transfer{
		TenantID:        tenantID,
		TransferNumber:  generateTransferNumber(),
		ProductID:       req.ProductID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Quantity:        req.Quantity,
		Reason:          req.Reason,
		Status:          models.TransferPending,
		CreatedBy:       createdBy,
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		// Release the reservation so the failed create leaves no hold behind.
		if _, relErr := s.stockRepo.ApplyDelta(ctx, nil, tenantID, req.FromWarehouseID, req.ProductID, 0, -req.Quantity); relErr != nil {
			log.Printf("ERROR: failed to release reservation after transfer create error: %v", relErr)
		}
		return nil, err
	}

	s.invalidateStock(ctx, tenantID, req.FromWarehouseID, req.ProductID)
	return transfer, nil
}

func (s *transferService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
	return s.transferRepo.GetByID(ctx, tenantID, id)
}

func (s *transferService) List(ctx context.Context, tenantID uuid.UUID, status *models.TransferStatus, limit, offset int) ([]*models.Transfer, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.transferRepo.List(ctx, tenantID, status, limit, offset)
}

func (s *transferService) Approve(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
	if err := s.transferRepo.UpdateStatus(ctx, nil, tenantID, id, models.TransferPending, models.TransferInTransit); err != nil {
		return nil, err
	}
	return s.transferRepo.GetByID(ctx, tenantID, id)
}

func (s *transferService) Complete(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !transfer.Status.CanTransitionTo(models.TransferCompleted) {
		return nil, fmt.Errorf("%w: transfer %s cannot complete from %s",
			common.ErrInvalidStateTransition, transfer.TransferNumber, transfer.Status)
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, transfer.ProductID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Source drops both the quantity and its reservation together; the
	// destination simply gains the quantity.
	srcRecord, err := s.stockRepo.ApplyDelta(ctx, tx, tenantID, transfer.FromWarehouseID, transfer.ProductID, -transfer.Quantity, -transfer.Quantity)
	if err != nil {
		return nil, err
	}
	dstRecord, err := s.stockRepo.ApplyDelta(ctx, tx, tenantID, transfer.ToWarehouseID, transfer.ProductID, transfer.Quantity, 0)
	if err != nil {
		return nil, err
	}
	if err := s.transferRepo.UpdateStatus(ctx, tx, tenantID, id, models.TransferInTransit, models.TransferCompleted); err != nil {
		return nil, err
	}

	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}
	outMovement := &models.StockMovement{
		TenantID:           tenantID,
		ProductID:          transfer.ProductID,
		WarehouseID:        transfer.FromWarehouseID,
		Type:               models.MovementTransferOut,
		QuantityDelta:      -transfer.Quantity,
		RelatedWarehouseID: &transfer.ToWarehouseID,
		Reference:          transfer.TransferNumber,
		ActorID:            actorID,
		ResultingQuantity:  srcRecord.Quantity,
		ResultingStatus:    models.ClassifyStock(srcRecord.Quantity, product),
	}
	inMovement := &models.StockMovement{
		TenantID:           tenantID,
		ProductID:          transfer.ProductID,
		WarehouseID:        transfer.ToWarehouseID,
		Type:               models.MovementTransferIn,
		QuantityDelta:      transfer.Quantity,
		RelatedWarehouseID: &transfer.FromWarehouseID,
		Reference:          transfer.TransferNumber,
		ActorID:            actorID,
		ResultingQuantity:  dstRecord.Quantity,
		ResultingStatus:    models.ClassifyStock(dstRecord.Quantity, product),
	}
	if err := s.movementRepo.Create(ctx, tx, outMovement); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Create(ctx, tx, inMovement); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidateStock(ctx, tenantID, transfer.FromWarehouseID, transfer.ProductID)
	s.invalidateStock(ctx, tenantID, transfer.ToWarehouseID, transfer.ProductID)
	return s.transferRepo.GetByID(ctx, tenantID, id)
}

func (s *transferService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !transfer.Status.CanTransitionTo(models.TransferCancelled) {
		return nil, fmt.Errorf("%w: transfer %s cannot cancel from %s",
			common.ErrInvalidStateTransition, transfer.TransferNumber, transfer.Status)
	}

	// Status flip and reservation release commit together; a failed release
	// must not leave a cancelled transfer still holding stock.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.transferRepo.UpdateStatus(ctx, tx, tenantID, id, transfer.Status, models.TransferCancelled); err != nil {
		return nil, err
	}
	// Goods never moved, so only the hold at the source comes off.
	if _, err := s.stockRepo.ApplyDelta(ctx, tx, tenantID, transfer.FromWarehouseID, transfer.ProductID, 0, -transfer.Quantity); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidateStock(ctx, tenantID, transfer.FromWarehouseID, transfer.ProductID)
	return s.transferRepo.GetByID(ctx, tenantID, id)
}

func (s *transferService) invalidateStock(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteStockRecord(ctx, tenantID, warehouseID, productID); err != nil {
		log.Printf("WARN: stock cache invalidation failed: %v", err)
	}
}
