package handlers

import (
	"net/http"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/models"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransferHandlers serves the inter-warehouse transfer workflow.
type TransferHandlers struct {
	transferService services.TransferService
}

func NewTransferHandlers(transferService services.TransferService) *TransferHandlers {
	return &TransferHandlers{transferService: transferService}
}

func (h *TransferHandlers) CreateTransfer(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateTransferRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "invalid request payload")
	}

	transfer, err := h.transferService.Create(ctx, tenantID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, transfer)
}

func (h *TransferHandlers) GetTransfer(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	transfer, err := h.transferService.GetByID(ctx, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transfer)
}

// ListTransfersRequest represents query parameters for listing transfers
type ListTransfersRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *TransferHandlers) ListTransfers(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req ListTransfersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "query", "invalid query parameters")
	}

	var status *models.TransferStatus
	if req.Status != "" {
		s := models.TransferStatus(req.Status)
		status = &s
	}

	transfers, err := h.transferService.List(ctx, tenantID, status, req.Limit, req.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"transfers": transfers,
		"limit":     req.Limit,
		"offset":    req.Offset,
	})
}

func (h *TransferHandlers) transition(c echo.Context, apply func(ctx echo.Context, tenantID, id uuid.UUID) (*models.Transfer, error)) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "must be a valid UUID")
	}

	transfer, err := apply(c, tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transfer)
}

func (h *TransferHandlers) ApproveTransfer(c echo.Context) error {
	return h.transition(c, func(c echo.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
		return h.transferService.Approve(c.Request().Context(), tenantID, id)
	})
}

func (h *TransferHandlers) CompleteTransfer(c echo.Context) error {
	return h.transition(c, func(c echo.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
		return h.transferService.Complete(c.Request().Context(), tenantID, id)
	})
}

func (h *TransferHandlers) CancelTransfer(c echo.Context) error {
	return h.transition(c, func(c echo.Context, tenantID, id uuid.UUID) (*models.Transfer, error) {
		return h.transferService.Cancel(c.Request().Context(), tenantID, id)
	})
}
