package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/common"

	"github.com/labstack/echo/v4"
)

// respondError maps engine error kinds onto the HTTP error contract.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", err.Error(), nil))
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, common.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("INSUFFICIENT_STOCK", err.Error(), nil))
	case errors.Is(err, common.ErrInvalidStateTransition):
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("INVALID_STATE_TRANSITION", err.Error(), nil))
	case errors.Is(err, common.ErrInvariantViolation):
		// A violation that escapes the repositories points at contention or a
		// logic defect, so it is logged before being surfaced.
		log.Printf("ERROR: stock invariant violation: %v", err)
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("INVARIANT_VIOLATION", err.Error(), nil))
	default:
		log.Printf("ERROR: %v", err)
		return common.SendServerError(c, "Internal server error")
	}
}
