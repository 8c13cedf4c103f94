package jobs

import (
	"context"
	"log"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/services"
)

// AlertSweeper runs the stock classifier across every active tenant and logs
// the findings. It backs the periodic alert job.
type AlertSweeper struct {
	tenantRepo   repositories.TenantRepository
	alertService services.AlertService
}

func NewAlertSweeper(tenantRepo repositories.TenantRepository, alertService services.AlertService) *AlertSweeper {
	return &AlertSweeper{tenantRepo: tenantRepo, alertService: alertService}
}

// Sweep classifies stock for all active tenants. Per-tenant failures are
// logged and skipped so one bad tenant does not stall the rest.
func (s *AlertSweeper) Sweep(ctx context.Context) error {
	tenants, err := s.tenantRepo.ListActive(ctx)
	if err != nil {
		log.Printf("ERROR: alert sweep could not list tenants: %v", err)
		return err
	}

	for _, tenant := range tenants {
		alerts, err := s.alertService.ListAlerts(ctx, tenant.ID, nil)
		if err != nil {
			log.Printf("ERROR: alert sweep failed for tenant %s: %v", tenant.ID, err)
			continue
		}
		s.logAlerts(tenant.Name, alerts)
	}
	return nil
}

func (s *AlertSweeper) logAlerts(tenantName string, alerts []*models.StockAlert) {
	if len(alerts) == 0 {
		return
	}
	log.Printf("Stock alerts for tenant %s (%d):", tenantName, len(alerts))
	for _, alert := range alerts {
		log.Printf("- [%s/%s] product %s (%s) in warehouse %s: %d on hand, reorder level %d",
			alert.Severity, alert.Status, alert.ProductName, alert.ProductSKU,
			alert.WarehouseID, alert.Quantity, alert.ReorderLevel)
	}
}
