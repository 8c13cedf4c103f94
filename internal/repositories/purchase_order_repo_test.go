package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PurchaseOrderRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     PurchaseOrderRepository
	tenantID uuid.UUID
	context  context.Context
}

func (suite *PurchaseOrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPurchaseOrderRepository(mock)
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *PurchaseOrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPurchaseOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseOrderRepoTestSuite))
}

func (suite *PurchaseOrderRepoTestSuite) TestCreateWritesHeaderAndItemsInOneTransaction() {
	order := &models.PurchaseOrder{
		TenantID:    suite.tenantID,
		OrderNumber: "PO-ABC12345",
		SupplierID:  uuid.New(),
		WarehouseID: uuid.New(),
		Status:      models.PurchaseOrderDraft,
		Priority:    "normal",
		Items: []*models.PurchaseOrderItem{
			{ProductID: uuid.New(), Quantity: 10, UnitPrice: 5},
			{ProductID: uuid.New(), Quantity: 5, UnitPrice: 20},
		},
	}
	order.RecalculateTotals()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO purchase_orders`).
		WithArgs(pgxmock.AnyArg(), order.TenantID, order.OrderNumber, order.SupplierID, order.WarehouseID,
			order.Status, order.Priority, order.Subtotal, order.Tax, order.Discount,
			order.TotalAmount, order.Notes, order.CreatedBy, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for range order.Items {
		suite.mock.ExpectExec(`INSERT INTO purchase_order_items`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, order)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, order.ID)
	assert.Equal(suite.T(), order.ID, order.Items[0].PurchaseOrderID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseOrderRepoTestSuite) TestUpdateDraftGuardBlocksSubmittedOrder() {
	order := &models.PurchaseOrder{
		ID:          uuid.New(),
		TenantID:    suite.tenantID,
		SupplierID:  uuid.New(),
		WarehouseID: uuid.New(),
		Priority:    "normal",
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE purchase_orders`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.UpdateDraft(suite.context, order)
	assert.True(suite.T(), errors.Is(err, common.ErrInvalidStateTransition))
}

func (suite *PurchaseOrderRepoTestSuite) TestUpdateStatusApprovalStampsActor() {
	id := uuid.New()
	actorID := uuid.New()

	suite.mock.ExpectExec(`UPDATE purchase_orders`).
		WithArgs(suite.tenantID, id, models.PurchaseOrderPendingApproval, models.PurchaseOrderApproved, &actorID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.context, nil, suite.tenantID, id,
		models.PurchaseOrderPendingApproval, models.PurchaseOrderApproved, &actorID, nil)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseOrderRepoTestSuite) TestUpdateStatusWrongStateRejected() {
	id := uuid.New()

	suite.mock.ExpectExec(`UPDATE purchase_orders`).
		WithArgs(suite.tenantID, id, models.PurchaseOrderSent, models.PurchaseOrderConfirmed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.UpdateStatus(suite.context, nil, suite.tenantID, id,
		models.PurchaseOrderSent, models.PurchaseOrderConfirmed, nil, nil)
	assert.True(suite.T(), errors.Is(err, common.ErrInvalidStateTransition))
}

func (suite *PurchaseOrderRepoTestSuite) TestAddItemReceiptCappedAtOrderedQuantity() {
	itemID := uuid.New()

	suite.mock.ExpectExec(`UPDATE purchase_order_items`).
		WithArgs(suite.tenantID, itemID, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.AddItemReceipt(suite.context, nil, suite.tenantID, itemID, 7)
	assert.True(suite.T(), errors.Is(err, common.ErrValidation))
}

func (suite *PurchaseOrderRepoTestSuite) TestAddItemReceiptAccumulates() {
	itemID := uuid.New()

	suite.mock.ExpectExec(`UPDATE purchase_order_items`).
		WithArgs(suite.tenantID, itemID, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.AddItemReceipt(suite.context, nil, suite.tenantID, itemID, 4)
	assert.NoError(suite.T(), err)
}
