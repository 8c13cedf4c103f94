package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StockRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        StockRepository
	tenantID    uuid.UUID
	warehouseID uuid.UUID
	productID   uuid.UUID
	context     context.Context
}

func (suite *StockRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewStockRepository(mock)
	suite.tenantID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.productID = uuid.New()
	suite.context = context.Background()
}

func (suite *StockRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StockRepoTestSuite))
}

func (suite *StockRepoTestSuite) stockRow(quantity, reserved int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "tenant_id", "warehouse_id", "product_id", "quantity", "reserved_quantity", "last_updated"}).
		AddRow(uuid.New(), suite.tenantID, suite.warehouseID, suite.productID, quantity, reserved, time.Now())
}

func (suite *StockRepoTestSuite) TestGetByWarehouseAndProduct_Success() {
	suite.mock.ExpectQuery(`SELECT .+ FROM stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID).
		WillReturnRows(suite.stockRow(42, 5))

	record, err := suite.repo.GetByWarehouseAndProduct(suite.context, suite.tenantID, suite.warehouseID, suite.productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, record.Quantity)
	assert.Equal(suite.T(), 5, record.ReservedQuantity)
	assert.Equal(suite.T(), 37, record.AvailableQuantity())
}

func (suite *StockRepoTestSuite) TestGetByWarehouseAndProduct_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID).
		WillReturnError(pgx.ErrNoRows)

	record, err := suite.repo.GetByWarehouseAndProduct(suite.context, suite.tenantID, suite.warehouseID, suite.productID)
	assert.Nil(suite.T(), record)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *StockRepoTestSuite) TestApplyDelta_PositiveDeltaUpserts() {
	// A purely additive delta may materialize a missing record, so it takes
	// the upsert arm.
	suite.mock.ExpectQuery(`INSERT INTO stock_records`).
		WithArgs(pgxmock.AnyArg(), suite.tenantID, suite.warehouseID, suite.productID, 30, 0).
		WillReturnRows(suite.stockRow(30, 0))

	record, err := suite.repo.ApplyDelta(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 30, 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30, record.Quantity)
}

func (suite *StockRepoTestSuite) TestApplyDelta_NegativeDeltaUpdates() {
	suite.mock.ExpectQuery(`UPDATE stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID, -10, 0).
		WillReturnRows(suite.stockRow(20, 0))

	record, err := suite.repo.ApplyDelta(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, -10, 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 20, record.Quantity)
}

func (suite *StockRepoTestSuite) TestApplyDelta_GuardFailureIsInvariantViolation() {
	// The conditional statement returns no row when the post-condition
	// 0 <= reserved <= quantity would break.
	suite.mock.ExpectQuery(`UPDATE stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID, -100, 0).
		WillReturnError(pgx.ErrNoRows)

	record, err := suite.repo.ApplyDelta(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, -100, 0)
	assert.Nil(suite.T(), record)
	assert.True(suite.T(), errors.Is(err, common.ErrInvariantViolation))
}

func (suite *StockRepoTestSuite) TestApplyDelta_ReservationTakesUpdateArm() {
	// A reservation (0, +n) cannot create a valid record from a zero base,
	// so it must not insert.
	suite.mock.ExpectQuery(`UPDATE stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID, 0, 20).
		WillReturnRows(suite.stockRow(50, 20))

	record, err := suite.repo.ApplyDelta(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 0, 20)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 20, record.ReservedQuantity)
	assert.Equal(suite.T(), 30, record.AvailableQuantity())
}

func (suite *StockRepoTestSuite) TestSetQuantity_KeyedOnExpectedValue() {
	suite.mock.ExpectQuery(`UPDATE stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID, 70, 50).
		WillReturnRows(suite.stockRow(50, 0))

	record, err := suite.repo.SetQuantity(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 70, 50)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50, record.Quantity)
}

func (suite *StockRepoTestSuite) TestSetQuantity_ConcurrentChangeConflicts() {
	// No row matches when the stored quantity is no longer the expected one.
	suite.mock.ExpectQuery(`UPDATE stock_records`).
		WithArgs(suite.tenantID, suite.warehouseID, suite.productID, 70, 50).
		WillReturnError(pgx.ErrNoRows)

	record, err := suite.repo.SetQuantity(suite.context, nil, suite.tenantID, suite.warehouseID, suite.productID, 70, 50)
	assert.Nil(suite.T(), record)
	assert.True(suite.T(), errors.Is(err, common.ErrInvariantViolation))
}

func (suite *StockRepoTestSuite) TestValuation() {
	warehouseID2 := uuid.New()
	rows := pgxmock.NewRows([]string{"warehouse_id", "name", "sum", "sum"}).
		AddRow(suite.warehouseID, "Main", 100, 2500.0).
		AddRow(warehouseID2, "Overflow", 40, 900.0)
	suite.mock.ExpectQuery(`SELECT .+ FROM stock_records`).
		WithArgs(suite.tenantID).
		WillReturnRows(rows)

	valuations, err := suite.repo.Valuation(suite.context, suite.tenantID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), valuations, 2)
	assert.Equal(suite.T(), "Main", valuations[0].WarehouseName)
	assert.Equal(suite.T(), 2500.0, valuations[0].TotalValue)
}
