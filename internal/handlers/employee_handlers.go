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

// EmployeeHandler holds the employee service.
type EmployeeHandler struct {
	employeeService services.EmployeeService
	activityService services.ActivityService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService, as services.ActivityService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es, activityService: as}
}

// RegisterEmployee handles new staff registration.
func (h *EmployeeHandler) RegisterEmployee(c *gin.Context) {
	var req services.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.RegisterEmployee(req)
	if err != nil {
		if errors.Is(err, services.ErrPhoneAlreadyUsed) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered.", err.Error()))
		} else if errors.Is(err, services.ErrEmployeeIDTaken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff ID collision, please retry.", err.Error()))
		} else if errors.Is(err, services.ErrUnknownRole) || errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "RegisterEmployee: Error from employeeService.RegisterEmployee")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register employee.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Mendaftarkan karyawan "+employee.FullName+" ("+employee.EmployeeID+")")
	c.JSON(http.StatusCreated, employee)
}

// GetEmployees handles fetching staff with pagination and search.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pSearchTerm := utils.NewNullString(c.Query("search"))

	employees, totalCount, err := h.employeeService.GetEmployees(page, pageSize, pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetEmployees: Error from employeeService.GetEmployees")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employees.", "Internal error"))
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      employees,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEmployeeByID handles fetching a single employee.
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", ""))
			return
		}
		utils.LogError(err, "GetEmployeeByID: Error from employeeService.GetEmployeeByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employee.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee handles a partial staff update.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(id, req)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", ""))
		} else if errors.Is(err, services.ErrPhoneAlreadyUsed) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateEmployee: Error from employeeService.UpdateEmployee")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update employee.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Memperbarui data karyawan "+employee.EmployeeID)
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles staff removal.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", ""))
		} else if errors.Is(err, services.ErrLastOwnerProtection) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "The last staff account cannot be removed.", err.Error()))
		} else {
			utils.LogError(err, "DeleteEmployee: Error from employeeService.DeleteEmployee")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete employee.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Menghapus akun karyawan")
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// actorName pulls the display name of the authenticated employee from the
// gin context, set by the auth middleware.
func actorName(c *gin.Context) string {
	if name, ok := c.Get("fullName"); ok {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	return "system"
}
