package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) ListAlerts(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]*models.StockAlert, error) {
	args := m.Called(ctx, tenantID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockAlert), args.Error(1)
}

func TestSweepCoversAllActiveTenants(t *testing.T) {
	tenantRepo := new(repositories.MockTenantRepository)
	alertService := new(MockAlertService)
	sweeper := NewAlertSweeper(tenantRepo, alertService)

	tenantA := &models.Tenant{ID: uuid.New(), Name: "Acme"}
	tenantB := &models.Tenant{ID: uuid.New(), Name: "Globex"}
	tenantRepo.On("ListActive", mock.Anything).Return([]*models.Tenant{tenantA, tenantB}, nil)
	alertService.On("ListAlerts", mock.Anything, tenantA.ID, (*uuid.UUID)(nil)).
		Return([]*models.StockAlert{{ProductSKU: "SKU-1", Status: models.StockStatusOutOfStock, Severity: models.SeverityCritical}}, nil)
	alertService.On("ListAlerts", mock.Anything, tenantB.ID, (*uuid.UUID)(nil)).
		Return([]*models.StockAlert{}, nil)

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	alertService.AssertNumberOfCalls(t, "ListAlerts", 2)
}

func TestSweepContinuesPastFailingTenant(t *testing.T) {
	tenantRepo := new(repositories.MockTenantRepository)
	alertService := new(MockAlertService)
	sweeper := NewAlertSweeper(tenantRepo, alertService)

	broken := &models.Tenant{ID: uuid.New(), Name: "Broken"}
	healthy := &models.Tenant{ID: uuid.New(), Name: "Healthy"}
	tenantRepo.On("ListActive", mock.Anything).Return([]*models.Tenant{broken, healthy}, nil)
	alertService.On("ListAlerts", mock.Anything, broken.ID, (*uuid.UUID)(nil)).
		Return(nil, errors.New("classification failed"))
	alertService.On("ListAlerts", mock.Anything, healthy.ID, (*uuid.UUID)(nil)).
		Return([]*models.StockAlert{}, nil)

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	alertService.AssertNumberOfCalls(t, "ListAlerts", 2)
}

func TestSweepFailsWhenTenantListUnavailable(t *testing.T) {
	tenantRepo := new(repositories.MockTenantRepository)
	alertService := new(MockAlertService)
	sweeper := NewAlertSweeper(tenantRepo, alertService)

	tenantRepo.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))

	err := sweeper.Sweep(context.Background())
	assert.Error(t, err)
	alertService.AssertNotCalled(t, "ListAlerts", mock.Anything, mock.Anything, mock.Anything)
}
