package caching

import (
	"context"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCacheService is used by service tests.
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCacheService) SetProduct(ctx context.Context, tenantID uuid.UUID, product *models.Product, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, product, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID)
	return args.Error(0)
}

func (m *MockCacheService) GetStockRecord(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*models.StockRecord, error) {
	args := m.Called(ctx, tenantID, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockRecord), args.Error(1)
}

func (m *MockCacheService) SetStockRecord(ctx context.Context, tenantID uuid.UUID, record *models.StockRecord, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, record, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStockRecord(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) error {
	args := m.Called(ctx, tenantID, warehouseID, productID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}
