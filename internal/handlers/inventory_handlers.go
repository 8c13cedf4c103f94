package handlers

import (
	"net/http"
	"time"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers serves stock records, adjustments, movement history,
// alerts and valuation.
type InventoryHandlers struct {
	stockService      services.StockService
	adjustmentService services.AdjustmentService
	alertService      services.AlertService
}

func NewInventoryHandlers(stockService services.StockService, adjustmentService services.AdjustmentService, alertService services.AlertService) *InventoryHandlers {
	return &InventoryHandlers{
		stockService:      stockService,
		adjustmentService: adjustmentService,
		alertService:      alertService,
	}
}

// ListStockRequest represents query parameters for listing stock records
type ListStockRequest struct {
	WarehouseID string `query:"warehouse_id"`
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}

// ListStock returns the tenant's stock records, optionally for one warehouse.
func (h *InventoryHandlers) ListStock(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ListStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "query", "invalid query parameters")
	}

	var warehouseID *uuid.UUID
	if req.WarehouseID != "" {
		id, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return common.SendValidationError(c, "warehouse_id", "must be a valid UUID")
		}
		warehouseID = &id
	}

	records, err := h.stockService.List(ctx, tenantID, warehouseID, req.Limit, req.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stock_records": records,
		"limit":         req.Limit,
		"offset":        req.Offset,
	})
}

// GetStockRecord returns one (warehouse, product) ledger entry.
func (h *InventoryHandlers) GetStockRecord(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	warehouseID, err := uuid.Parse(c.Param("warehouseID"))
	if err != nil {
		return common.SendValidationError(c, "warehouseID", "must be a valid UUID")
	}
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return common.SendValidationError(c, "productID", "must be a valid UUID")
	}

	record, err := h.stockService.GetRecord(ctx, tenantID, warehouseID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// CreateAdjustment applies a manual stock correction.
func (h *InventoryHandlers) CreateAdjustment(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.AdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}

	record, err := h.adjustmentService.Adjust(ctx, nil, tenantID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// ListMovementsRequest represents query parameters for the movement history
type ListMovementsRequest struct {
	Type        string `query:"type"`
	ProductID   string `query:"product_id"`
	WarehouseID string `query:"warehouse_id"`
	From        string `query:"from"`
	To          string `query:"to"`
	Limit       int    `query:"limit"`
	Offset      int    `query:"offset"`
}

// ListMovements returns the audit history, newest first.
func (h *InventoryHandlers) ListMovements(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ListMovementsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "query", "invalid query parameters")
	}

	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)
	filter := &models.MovementFilter{Limit: limit, Offset: offset}

	if req.Type != "" {
		movementType := models.MovementType(req.Type)
		if !movementType.Valid() {
			return common.SendValidationError(c, "type", "unknown movement type")
		}
		filter.Type = &movementType
	}
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return common.SendValidationError(c, "product_id", "must be a valid UUID")
		}
		filter.ProductID = &id
	}
	if req.WarehouseID != "" {
		id, err := uuid.Parse(req.WarehouseID)
		if err != nil {
			return common.SendValidationError(c, "warehouse_id", "must be a valid UUID")
		}
		filter.WarehouseID = &id
	}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return common.SendValidationError(c, "from", "must be an RFC3339 timestamp")
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return common.SendValidationError(c, "to", "must be an RFC3339 timestamp")
		}
		filter.To = &to
	}

	movements, err := h.stockService.Movements(ctx, tenantID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}

// ListAlerts returns the records whose classification needs attention.
func (h *InventoryHandlers) ListAlerts(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var warehouseID *uuid.UUID
	if raw := c.QueryParam("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return common.SendValidationError(c, "warehouse_id", "must be a valid UUID")
		}
		warehouseID = &id
	}

	alerts, err := h.alertService.ListAlerts(ctx, tenantID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// GetValuation returns the per-warehouse stock value and the tenant total.
func (h *InventoryHandlers) GetValuation(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	report, err := h.stockService.Valuation(ctx, tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
