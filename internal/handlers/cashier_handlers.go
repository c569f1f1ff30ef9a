package handlers

import (
	"errors"
	"net/http"

	"playground_pos_backend/internal/services"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CashierHandler holds the cashier service.
type CashierHandler struct {
	cashierService  services.CashierService
	activityService services.ActivityService
}

// NewCashierHandler creates a new CashierHandler.
func NewCashierHandler(cs services.CashierService, as services.ActivityService) *CashierHandler {
	return &CashierHandler{cashierService: cs, activityService: as}
}

// Quote prices a visit without closing it.
func (h *CashierHandler) Quote(c *gin.Context) {
	quote, err := h.cashierService.Quote(c.Param("sequence"))
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Active visit not found.", ""))
			return
		}
		utils.LogError(err, "Quote: Error from cashierService.Quote")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to price visit.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Finalize bills a visit and closes it.
func (h *CashierHandler) Finalize(c *gin.Context) {
	var req services.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	sequence := c.Param("sequence")
	receipt, err := h.cashierService.Finalize(sequence, actorName(c), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVisitNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Active visit not found.", ""))
		case errors.Is(err, services.ErrInsufficientCash):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Cash received is less than the total.", err.Error()))
		case errors.Is(err, services.ErrInvalidPaymentMethod), errors.Is(err, services.ErrMissingBankName), errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "Finalize: Error from cashierService.Finalize")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to finalize checkout.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Checkout tiket "+sequence+" total "+utils.FormatRupiah(receipt.Transaction.TotalAmount))
	c.JSON(http.StatusCreated, receipt)
}
