package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/services"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
	activityService  services.ActivityService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService, as services.ActivityService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, activityService: as}
}

// CreateItem adds a stock item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req services.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrInvalidCategory) ||
			errors.Is(err, services.ErrInvalidItemPrice) || errors.Is(err, services.ErrInvalidItemStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateItem: Error from inventoryService.CreateItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create inventory item.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Menambah barang "+item.Name)
	c.JSON(http.StatusCreated, item)
}

// GetItems lists stock items, optionally filtered by category.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	category := c.Query("category")

	items, totalCount, err := h.inventoryService.GetItems(category, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category.", err.Error()))
			return
		}
		utils.LogError(err, "GetItems: Error from inventoryService.GetItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventory items.", "Internal error"))
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "total": totalCount})
}

// GetItemByID fetches a single stock item.
func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	item, err := h.inventoryService.GetItemByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", ""))
			return
		}
		utils.LogError(err, "GetItemByID: Error from inventoryService.GetItemByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventory item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces a stock item.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	var req services.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateItem(id, req)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", ""))
		} else if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrInvalidCategory) ||
			errors.Is(err, services.ErrInvalidItemPrice) || errors.Is(err, services.ErrInvalidItemStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateItem: Error from inventoryService.UpdateItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inventory item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a stock item.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID format.", err.Error()))
		return
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", ""))
			return
		}
		utils.LogError(err, "DeleteItem: Error from inventoryService.DeleteItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete inventory item.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Menghapus barang dari inventaris")
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

// CreateAsset adds a fixed asset.
func (h *InventoryHandler) CreateAsset(c *gin.Context) {
	var req services.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	asset, err := h.inventoryService.CreateAsset(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateAsset: Error from inventoryService.CreateAsset")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create asset.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Menambah aset "+asset.Name)
	c.JSON(http.StatusCreated, asset)
}

// GetAssets lists fixed assets.
func (h *InventoryHandler) GetAssets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	assets, totalCount, err := h.inventoryService.GetAssets(limit, offset)
	if err != nil {
		utils.LogError(err, "GetAssets: Error from inventoryService.GetAssets")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch assets.", "Internal error"))
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	c.JSON(http.StatusOK, gin.H{"data": assets, "total": totalCount})
}

// UpdateAsset replaces a fixed asset.
func (h *InventoryHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid asset ID format.", err.Error()))
		return
	}

	var req services.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	asset, err := h.inventoryService.UpdateAsset(id, req)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Asset not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateAsset: Error from inventoryService.UpdateAsset")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update asset.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, asset)
}

// DeleteAsset removes a fixed asset.
func (h *InventoryHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid asset ID format.", err.Error()))
		return
	}

	if err := h.inventoryService.DeleteAsset(id); err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Asset not found.", ""))
			return
		}
		utils.LogError(err, "DeleteAsset: Error from inventoryService.DeleteAsset")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete asset.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Menghapus aset")
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
