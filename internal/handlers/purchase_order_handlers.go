package handlers

import (
	"net/http"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PurchaseOrderHandlers serves the purchase order workflow.
type PurchaseOrderHandlers struct {
	orderService services.PurchaseOrderService
}

func NewPurchaseOrderHandlers(orderService services.PurchaseOrderService) *PurchaseOrderHandlers {
	return &PurchaseOrderHandlers{orderService: orderService}
}

func (h *PurchaseOrderHandlers) CreatePurchaseOrder(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.PurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}

	order, err := h.orderService.Create(ctx, tenantID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *PurchaseOrderHandlers) GetPurchaseOrder(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	order, err := h.orderService.GetByID(ctx, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListPurchaseOrdersRequest represents query parameters for listing orders
type ListPurchaseOrdersRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *PurchaseOrderHandlers) ListPurchaseOrders(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ListPurchaseOrdersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "query", "invalid query parameters")
	}

	var status *models.PurchaseOrderStatus
	if req.Status != "" {
		s := models.PurchaseOrderStatus(req.Status)
		status = &s
	}

	orders, err := h.orderService.List(ctx, tenantID, status, req.Limit, req.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"purchase_orders": orders,
		"limit":           req.Limit,
		"offset":          req.Offset,
	})
}

func (h *PurchaseOrderHandlers) UpdatePurchaseOrder(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	var req services.PurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}

	order, err := h.orderService.UpdateDraft(ctx, tenantID, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *PurchaseOrderHandlers) DeletePurchaseOrder(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	if err := h.orderService.Delete(ctx, tenantID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PurchaseOrderHandlers) transition(c echo.Context, apply func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error)) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	order, err := apply(tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *PurchaseOrderHandlers) SubmitPurchaseOrder(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.SubmitForApproval(c.Request().Context(), tenantID, id)
	})
}

func (h *PurchaseOrderHandlers) ApprovePurchaseOrder(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.Approve(c.Request().Context(), tenantID, id)
	})
}

// RejectPurchaseOrderRequest carries the mandatory rejection reason
type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason"`
}

func (h *PurchaseOrderHandlers) RejectPurchaseOrder(c echo.Context) error {
	var req RejectPurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.Reject(c.Request().Context(), tenantID, id, req.Reason)
	})
}

func (h *PurchaseOrderHandlers) MarkPurchaseOrderSent(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.MarkSent(c.Request().Context(), tenantID, id)
	})
}

func (h *PurchaseOrderHandlers) MarkPurchaseOrderConfirmed(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.MarkConfirmed(c.Request().Context(), tenantID, id)
	})
}

// ReceiveGoodsRequest lists the receipt lines for a partial delivery
type ReceiveGoodsRequest struct {
	Receipts []services.ReceiptLine `json:"receipts"`
}

func (h *PurchaseOrderHandlers) MarkPurchaseOrderPartial(c echo.Context) error {
	var req ReceiveGoodsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.MarkPartial(c.Request().Context(), tenantID, id, req.Receipts)
	})
}

func (h *PurchaseOrderHandlers) MarkPurchaseOrderReceived(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.MarkReceived(c.Request().Context(), tenantID, id)
	})
}

func (h *PurchaseOrderHandlers) CancelPurchaseOrder(c echo.Context) error {
	return h.transition(c, func(tenantID, id uuid.UUID) (*models.PurchaseOrder, error) {
		return h.orderService.MarkCancelled(c.Request().Context(), tenantID, id)
	})
}
