package services

import (
	"context"
	"errors"
	"testing"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	stockRepo     *repositories.MockStockRepository
	movementRepo  *repositories.MockMovementRepository
	productRepo   *repositories.MockProductRepository
	warehouseRepo *repositories.MockWarehouseRepository
	service       AdjustmentService
	tenantID      uuid.UUID
	warehouseID   uuid.UUID
	productID     uuid.UUID
	product       *models.Product
	warehouse     *models.Warehouse
	context       context.Context
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.stockRepo = new(repositories.MockStockRepository)
	suite.movementRepo = new(repositories.MockMovementRepository)
	suite.productRepo = new(repositories.MockProductRepository)
	suite.warehouseRepo = new(repositories.MockWarehouseRepository)
	suite.service = NewAdjustmentService(suite.stockRepo, suite.movementRepo, suite.productRepo, suite.warehouseRepo, nil)

	suite.tenantID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.productID = uuid.New()
	suite.product = &models.Product{ID: suite.productID, TenantID: suite.tenantID, SKU: "SKU-1", Name: "Widget", ReorderLevel: 10}
	suite.warehouse = &models.Warehouse{ID: suite.warehouseID, TenantID: suite.tenantID, Code: "W1", Active: true}
	suite.context = context.Background()
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}

func (suite *AdjustmentServiceTestSuite) expectLookups() {
	suite.productRepo.On("GetByID", suite.context, suite.tenantID, suite.productID).Return(suite.product, nil)
	suite.warehouseRepo.On("GetByID", suite.context, suite.tenantID, suite.warehouseID).Return(suite.warehouse, nil)
}

func (suite *AdjustmentServiceTestSuite) record(quantity, reserved int) *models.StockRecord {
	return &models.StockRecord{
		TenantID:         suite.tenantID,
		WarehouseID:      suite.warehouseID,
		ProductID:        suite.productID,
		Quantity:         quantity,
		ReservedQuantity: reserved,
	}
}

func (suite *AdjustmentServiceTestSuite) TestIncrease() {
	suite.expectLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 30, 0).
		Return(suite.record(80, 0), nil)
	suite.movementRepo.On("Create", suite.context, nil, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.Type == models.MovementAdjustment && m.QuantityDelta == 30 &&
			m.ResultingQuantity == 80 && m.ResultingStatus == models.StockStatusInStock
	})).Return(nil)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentIncrease,
		Quantity:    30,
		Reason:      models.ReasonFound,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 80, record.Quantity)
	suite.movementRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestDecreaseBeyondStockFails() {
	suite.expectLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, -100, 0).
		Return(nil, common.ErrInvariantViolation)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentDecrease,
		Quantity:    100,
		Reason:      models.ReasonDamage,
	})
	assert.Nil(suite.T(), record)
	assert.True(suite.T(), errors.Is(err, common.ErrInsufficientStock))
	// No movement is written for a rejected adjustment.
	suite.movementRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestSetComputesDeltaFromCurrent() {
	// On-hand is 70 after an earlier -30; a set to 50 must record a -20 move,
	// keyed on the 70 that was read.
	suite.expectLookups()
	suite.stockRepo.On("GetByWarehouseAndProduct", suite.context, suite.tenantID, suite.warehouseID, suite.productID).
		Return(suite.record(70, 0), nil)
	suite.stockRepo.On("SetQuantity", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 70, 50).
		Return(suite.record(50, 0), nil)
	suite.movementRepo.On("Create", suite.context, nil, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.QuantityDelta == -20 && m.ResultingQuantity == 50
	})).Return(nil)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentSet,
		Quantity:    50,
		Reason:      models.ReasonRecount,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50, record.Quantity)
	suite.movementRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestSetToCurrentIsNoOp() {
	suite.expectLookups()
	suite.stockRepo.On("GetByWarehouseAndProduct", suite.context, suite.tenantID, suite.warehouseID, suite.productID).
		Return(suite.record(50, 0), nil)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentSet,
		Quantity:    50,
		Reason:      models.ReasonRecount,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50, record.Quantity)
	suite.stockRepo.AssertNotCalled(suite.T(), "SetQuantity",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.movementRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestSetConflictsWithConcurrentWriter() {
	// The guarded write matches no row when the quantity moved between the
	// read and the set; the caller sees a conflict and can retry.
	suite.expectLookups()
	suite.stockRepo.On("GetByWarehouseAndProduct", suite.context, suite.tenantID, suite.warehouseID, suite.productID).
		Return(suite.record(70, 0), nil)
	suite.stockRepo.On("SetQuantity", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 70, 50).
		Return(nil, common.ErrInvariantViolation)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentSet,
		Quantity:    50,
		Reason:      models.ReasonRecount,
	})
	assert.Nil(suite.T(), record)
	assert.True(suite.T(), errors.Is(err, common.ErrInvariantViolation))
	suite.movementRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdjustmentServiceTestSuite) TestNotesRecordedOnMovement() {
	notes := "pallet damaged during unloading"
	suite.expectLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, -3, 0).
		Return(suite.record(47, 0), nil)
	suite.movementRepo.On("Create", suite.context, nil, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.Notes != nil && *m.Notes == notes
	})).Return(nil)

	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentDecrease,
		Quantity:    3,
		Reason:      models.ReasonDamage,
		Notes:       &notes,
	})
	assert.NoError(suite.T(), err)
	suite.movementRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestSetOnMissingRecordMaterializes() {
	suite.expectLookups()
	suite.stockRepo.On("GetByWarehouseAndProduct", suite.context, suite.tenantID, suite.warehouseID, suite.productID).
		Return(nil, common.ErrNotFound)
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 25, 0).
		Return(suite.record(25, 0), nil)
	suite.movementRepo.On("Create", suite.context, nil, mock.Anything).Return(nil)

	record, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentSet,
		Quantity:    25,
		Reason:      models.ReasonRecount,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 25, record.Quantity)
}

func (suite *AdjustmentServiceTestSuite) TestMovementTypeOverrideForReceipts() {
	suite.expectLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 10, 0).
		Return(suite.record(10, 0), nil)
	suite.movementRepo.On("Create", suite.context, nil, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.Type == models.MovementPurchaseReceipt && m.Reference == "PO-TEST1234"
	})).Return(nil)

	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID:  suite.warehouseID,
		ProductID:    suite.productID,
		Type:         models.AdjustmentIncrease,
		Quantity:     10,
		Reason:       models.ReasonPurchaseReceipt,
		Reference:    "PO-TEST1234",
		MovementType: models.MovementPurchaseReceipt,
	})
	assert.NoError(suite.T(), err)
	suite.movementRepo.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestInvalidTypeRejected() {
	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        "multiply",
		Quantity:    2,
		Reason:      models.ReasonRecount,
	})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *AdjustmentServiceTestSuite) TestInvalidReasonRejected() {
	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentIncrease,
		Quantity:    2,
		Reason:      "because",
	})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *AdjustmentServiceTestSuite) TestZeroQuantityRejected() {
	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentIncrease,
		Quantity:    0,
		Reason:      models.ReasonRecount,
	})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *AdjustmentServiceTestSuite) TestUnknownProduct() {
	suite.productRepo.On("GetByID", suite.context, suite.tenantID, suite.productID).
		Return(nil, common.ErrNotFound)

	_, err := suite.service.Adjust(suite.context, nil, suite.tenantID, &AdjustmentRequest{
		WarehouseID: suite.warehouseID,
		ProductID:   suite.productID,
		Type:        models.AdjustmentIncrease,
		Quantity:    5,
		Reason:      models.ReasonFound,
	})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}
