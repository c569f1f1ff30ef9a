package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"playground_pos_backend/internal/services"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService    services.OrderService
	activityService services.ActivityService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService, as services.ActivityService) *OrderHandler {
	return &OrderHandler{orderService: os, activityService: as}
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrVisitNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Active visit not found.", ""))
	case errors.Is(err, services.ErrInventoryNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", ""))
	case errors.Is(err, services.ErrOrderItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order item not found.", ""))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock.", err.Error()))
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Quantity must be positive.", err.Error()))
	default:
		utils.LogError(err, context)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process order.", "Internal error"))
	}
}

// GetOrder returns the open cafe order of an active visit.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("sequence"))
	if err != nil {
		h.respondOrderError(c, err, "GetOrder: Error from orderService.GetOrder")
		return
	}
	c.JSON(http.StatusOK, order)
}

// AddItem adds an inventory item to a visit's order.
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req services.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	sequence := c.Param("sequence")
	order, err := h.orderService.AddItem(sequence, req)
	if err != nil {
		h.respondOrderError(c, err, "AddItem: Error from orderService.AddItem")
		return
	}

	h.activityService.Record(actorName(c), "Menambah pesanan untuk tiket "+sequence)
	c.JSON(http.StatusCreated, order)
}

// UpdateItemQty overwrites the quantity of an order line.
func (h *OrderHandler) UpdateItemQty(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	var req services.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.UpdateItemQty(c.Param("sequence"), itemID, req)
	if err != nil {
		h.respondOrderError(c, err, "UpdateItemQty: Error from orderService.UpdateItemQty")
		return
	}
	c.JSON(http.StatusOK, order)
}

// RemoveItem deletes an order line and returns its stock.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	order, err := h.orderService.RemoveItem(c.Param("sequence"), itemID)
	if err != nil {
		h.respondOrderError(c, err, "RemoveItem: Error from orderService.RemoveItem")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOpenOrders lists every active visit with order lines.
func (h *OrderHandler) GetOpenOrders(c *gin.Context) {
	orders, err := h.orderService.GetOpenOrders()
	if err != nil {
		utils.LogError(err, "GetOpenOrders: Error from orderService.GetOpenOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch open orders.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": len(orders)})
}
