package services

import (
	"context"
	"errors"
	"testing"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	suite.Suite
	db            pgxmock.PgxPoolIface
	transferRepo  *repositories.MockTransferRepository
	stockRepo     *repositories.MockStockRepository
	movementRepo  *repositories.MockMovementRepository
	productRepo   *repositories.MockProductRepository
	warehouseRepo *repositories.MockWarehouseRepository
	service       TransferService
	tenantID      uuid.UUID
	productID     uuid.UUID
	fromID        uuid.UUID
	toID          uuid.UUID
	product       *models.Product
	context       context.Context
}

func (suite *TransferServiceTestSuite) SetupTest() {
	db, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.db = db

	suite.transferRepo = new(repositories.MockTransferRepository)
	suite.stockRepo = new(repositories.MockStockRepository)
	suite.movementRepo = new(repositories.MockMovementRepository)
	suite.productRepo = new(repositories.MockProductRepository)
	suite.warehouseRepo = new(repositories.MockWarehouseRepository)
	suite.service = NewTransferService(db, suite.transferRepo, suite.stockRepo, suite.movementRepo,
		suite.productRepo, suite.warehouseRepo, nil)

	suite.tenantID = uuid.New()
	suite.productID = uuid.New()
	suite.fromID = uuid.New()
	suite.toID = uuid.New()
	suite.product = &models.Product{ID: suite.productID, TenantID: suite.tenantID, SKU: "SKU-1", Name: "Widget", ReorderLevel: 5}
	suite.context = context.Background()
}

func (suite *TransferServiceTestSuite) TearDownTest() {
	suite.db.Close()
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func (suite *TransferServiceTestSuite) activeWarehouse(id uuid.UUID, code string) *models.Warehouse {
	return &models.Warehouse{ID: id, TenantID: suite.tenantID, Code: code, Active: true}
}

func (suite *TransferServiceTestSuite) expectCreateLookups() {
	suite.productRepo.On("GetByID", suite.context, suite.tenantID, suite.productID).Return(suite.product, nil)
	suite.warehouseRepo.On("GetByID", suite.context, suite.tenantID, suite.fromID).Return(suite.activeWarehouse(suite.fromID, "W1"), nil)
	suite.warehouseRepo.On("GetByID", suite.context, suite.tenantID, suite.toID).Return(suite.activeWarehouse(suite.toID, "W2"), nil)
}

func (suite *TransferServiceTestSuite) stockRecord(warehouseID uuid.UUID, quantity, reserved int) *models.StockRecord {
	return &models.StockRecord{
		TenantID:         suite.tenantID,
		WarehouseID:      warehouseID,
		ProductID:        suite.productID,
		Quantity:         quantity,
		ReservedQuantity: reserved,
	}
}

func (suite *TransferServiceTestSuite) TestCreateReservesAtSource() {
	suite.expectCreateLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.fromID, suite.productID, 0, 20).
		Return(suite.stockRecord(suite.fromID, 50, 20), nil)
	suite.transferRepo.On("Create", suite.context, mock.MatchedBy(func(tr *models.Transfer) bool {
		return tr.Status == models.TransferPending && tr.Quantity == 20 && tr.TransferNumber != ""
	})).Return(nil)

	transfer, err := suite.service.Create(suite.context, suite.tenantID, &CreateTransferRequest{
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.toID,
		Quantity:        20,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransferPending, transfer.Status)
	suite.transferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateInsufficientAvailable() {
	suite.expectCreateLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.fromID, suite.productID, 0, 20).
		Return(nil, common.ErrInvariantViolation)

	transfer, err := suite.service.Create(suite.context, suite.tenantID, &CreateTransferRequest{
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.toID,
		Quantity:        20,
	})
	assert.Nil(suite.T(), transfer)
	assert.True(suite.T(), errors.Is(err, common.ErrInsufficientStock))
	suite.transferRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateReleasesReservationOnFailure() {
	suite.expectCreateLookups()
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.fromID, suite.productID, 0, 20).
		Return(suite.stockRecord(suite.fromID, 50, 20), nil)
	suite.transferRepo.On("Create", suite.context, mock.Anything).Return(errors.New("insert failed"))
	suite.stockRepo.On("ApplyDelta", suite.context, nil, suite.tenantID, suite.fromID, suite.productID, 0, -20).
		Return(suite.stockRecord(suite.fromID, 50, 0), nil)

	_, err := suite.service.Create(suite.context, suite.tenantID, &CreateTransferRequest{
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.toID,
		Quantity:        20,
	})
	assert.Error(suite.T(), err)
	suite.stockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateSameWarehouseRejected() {
	_, err := suite.service.Create(suite.context, suite.tenantID, &CreateTransferRequest{
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.fromID,
		Quantity:        20,
	})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *TransferServiceTestSuite) TestCreateInactiveWarehouseRejected() {
	suite.productRepo.On("GetByID", suite.context, suite.tenantID, suite.productID).Return(suite.product, nil)
	suite.warehouseRepo.On("GetByID", suite.context, suite.tenantID, suite.fromID).
		Return(&models.Warehouse{ID: suite.fromID, TenantID: suite.tenantID, Code: "W1", Active: false}, nil)

	_, err := suite.service.Create(suite.context, suite.tenantID, &CreateTransferRequest{
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.toID,
		Quantity:        20,
	})
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *TransferServiceTestSuite) pendingTransfer(status models.TransferStatus) *models.Transfer {
	return &models.Transfer{
		ID:              uuid.New(),
		TenantID:        suite.tenantID,
		TransferNumber:  "TRF-TEST0001",
		ProductID:       suite.productID,
		FromWarehouseID: suite.fromID,
		ToWarehouseID:   suite.toID,
		Quantity:        20,
		Status:          status,
	}
}

func (suite *TransferServiceTestSuite) TestCompleteMovesStockTransactionally() {
	transfer := suite.pendingTransfer(models.TransferInTransit)
	completed := suite.pendingTransfer(models.TransferCompleted)
	completed.ID = transfer.ID

	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).
		Return(transfer, nil).Once()
	suite.productRepo.On("GetByID", suite.context, suite.tenantID, suite.productID).Return(suite.product, nil)

	suite.db.ExpectBegin()
	// Source: 50 on hand with 20 reserved becomes 30/0; destination 10 -> 30.
	// Total on-hand across both warehouses stays 60.
	suite.stockRepo.On("ApplyDelta", suite.context, mock.Anything, suite.tenantID, suite.fromID, suite.productID, -20, -20).
		Return(suite.stockRecord(suite.fromID, 30, 0), nil)
	suite.stockRepo.On("ApplyDelta", suite.context, mock.Anything, suite.tenantID, suite.toID, suite.productID, 20, 0).
		Return(suite.stockRecord(suite.toID, 30, 0), nil)
	suite.transferRepo.On("UpdateStatus", suite.context, mock.Anything, suite.tenantID, transfer.ID,
		models.TransferInTransit, models.TransferCompleted).Return(nil)
	suite.movementRepo.On("Create", suite.context, mock.Anything, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.Type == models.MovementTransferOut && m.QuantityDelta == -20 &&
			m.WarehouseID == suite.fromID && *m.RelatedWarehouseID == suite.toID &&
			m.Reference == transfer.TransferNumber
	})).Return(nil)
	suite.movementRepo.On("Create", suite.context, mock.Anything, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.Type == models.MovementTransferIn && m.QuantityDelta == 20 &&
			m.WarehouseID == suite.toID && *m.RelatedWarehouseID == suite.fromID &&
			m.Reference == transfer.TransferNumber
	})).Return(nil)
	suite.db.ExpectCommit()

	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).
		Return(completed, nil).Once()

	result, err := suite.service.Complete(suite.context, suite.tenantID, transfer.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransferCompleted, result.Status)
	assert.NoError(suite.T(), suite.db.ExpectationsWereMet())
	suite.movementRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCompleteFromPendingRejected() {
	transfer := suite.pendingTransfer(models.TransferPending)
	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).Return(transfer, nil)

	_, err := suite.service.Complete(suite.context, suite.tenantID, transfer.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrInvalidStateTransition))
}

func (suite *TransferServiceTestSuite) TestCancelReleasesReservation() {
	transfer := suite.pendingTransfer(models.TransferPending)
	cancelled := suite.pendingTransfer(models.TransferCancelled)
	cancelled.ID = transfer.ID

	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).
		Return(transfer, nil).Once()
	suite.db.ExpectBegin()
	suite.transferRepo.On("UpdateStatus", suite.context, mock.Anything, suite.tenantID, transfer.ID,
		models.TransferPending, models.TransferCancelled).Return(nil)
	suite.stockRepo.On("ApplyDelta", suite.context, mock.Anything, suite.tenantID, suite.fromID, suite.productID, 0, -20).
		Return(suite.stockRecord(suite.fromID, 50, 0), nil)
	suite.db.ExpectCommit()
	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).
		Return(cancelled, nil).Once()

	result, err := suite.service.Cancel(suite.context, suite.tenantID, transfer.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransferCancelled, result.Status)
	assert.NoError(suite.T(), suite.db.ExpectationsWereMet())
	suite.stockRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCancelRollsBackWhenReleaseFails() {
	// The cancelled status must not commit if the reservation release fails;
	// both ride the same transaction.
	transfer := suite.pendingTransfer(models.TransferPending)

	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).
		Return(transfer, nil).Once()
	suite.db.ExpectBegin()
	suite.transferRepo.On("UpdateStatus", suite.context, mock.Anything, suite.tenantID, transfer.ID,
		models.TransferPending, models.TransferCancelled).Return(nil)
	suite.stockRepo.On("ApplyDelta", suite.context, mock.Anything, suite.tenantID, suite.fromID, suite.productID, 0, -20).
		Return(nil, errors.New("connection reset"))
	suite.db.ExpectRollback()

	result, err := suite.service.Cancel(suite.context, suite.tenantID, transfer.ID)
	assert.Nil(suite.T(), result)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.db.ExpectationsWereMet())
}

func (suite *TransferServiceTestSuite) TestCancelCompletedRejected() {
	transfer := suite.pendingTransfer(models.TransferCompleted)
	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).Return(transfer, nil)

	_, err := suite.service.Cancel(suite.context, suite.tenantID, transfer.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrInvalidStateTransition))
}

func (suite *TransferServiceTestSuite) TestApprove() {
	transfer := suite.pendingTransfer(models.TransferInTransit)
	suite.transferRepo.On("UpdateStatus", suite.context, nil, suite.tenantID, transfer.ID,
		models.TransferPending, models.TransferInTransit).Return(nil)
	suite.transferRepo.On("GetByID", suite.context, suite.tenantID, transfer.ID).Return(transfer, nil)

	result, err := suite.service.Approve(suite.context, suite.tenantID, transfer.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TransferInTransit, result.Status)
}
