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

// SettingHandler holds the settings and activity services.
type SettingHandler struct {
	settingsService services.SettingsService
	activityService services.ActivityService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingsService, as services.ActivityService) *SettingHandler {
	return &SettingHandler{settingsService: ss, activityService: as}
}

// GetSettings returns the business configuration.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingsService.GetSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the business configuration.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateSettings(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrInvalidDiscount) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateSettings: Error from settingsService.UpdateSettings")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update settings.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Memperbarui pengaturan usaha")
	c.JSON(http.StatusOK, settings)
}

// ResetAllData wipes every operational table. Requires explicit confirmation
// in the request body.
func (h *SettingHandler) ResetAllData(c *gin.Context) {
	var req struct {
		Confirm string `json:"confirm" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != "RESET" {
		utils.RespondValidationFailed(c, `confirmation field must be "RESET"`)
		return
	}

	if err := h.settingsService.ResetAllData(); err != nil {
		utils.LogError(err, "ResetAllData: Error from settingsService.ResetAllData")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset data.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Mereset seluruh data operasional")
	c.JSON(http.StatusOK, gin.H{"message": "All operational data has been reset"})
}

// GetActivityLogs lists the staff activity feed.
func (h *SettingHandler) GetActivityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, totalCount, err := h.activityService.GetLogs(limit, offset)
	if err != nil {
		utils.LogError(err, "GetActivityLogs: Error from activityService.GetLogs")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch activity logs.", "Internal error"))
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}

	c.JSON(http.StatusOK, gin.H{"data": logs, "total": totalCount})
}
