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

// AttendanceHandler holds the attendance service.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

type attendancePunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// ClockIn opens today's attendance entry for an employee.
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req attendancePunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.attendanceService.ClockIn(req.EmployeeID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", ""))
		} else if errors.Is(err, services.ErrAlreadyClockedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Already clocked in today.", err.Error()))
		} else {
			utils.LogError(err, "ClockIn: Error from attendanceService.ClockIn")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ClockOut closes today's open entry for an employee.
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	var req attendancePunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.attendanceService.ClockOut(req.EmployeeID)
	if err != nil {
		if errors.Is(err, services.ErrNotClockedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Not clocked in today.", err.Error()))
		} else if errors.Is(err, services.ErrAttendanceDone) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Attendance for today is already completed.", err.Error()))
		} else {
			utils.LogError(err, "ClockOut: Error from attendanceService.ClockOut")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock out.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetStatus reports an employee's attendance state for today.
func (h *AttendanceHandler) GetStatus(c *gin.Context) {
	employeeID := c.Param("employee_id")
	if utils.IsEmpty(employeeID) {
		utils.RespondValidationFailed(c, "employee_id is required")
		return
	}

	status, err := h.attendanceService.GetStatus(employeeID)
	if err != nil {
		utils.LogError(err, "GetStatus: Error from attendanceService.GetStatus")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance status.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetEntries lists attendance entries, optionally filtered by date.
func (h *AttendanceHandler) GetEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	var pDate *string
	if date := c.Query("date"); date != "" {
		pDate = &date
	}

	entries, totalCount, err := h.attendanceService.GetEntries(pDate, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetEntries: Error from attendanceService.GetEntries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch attendance entries.", "Internal error"))
		return
	}
	if entries == nil {
		entries = []models.AttendanceEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      entries,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}
