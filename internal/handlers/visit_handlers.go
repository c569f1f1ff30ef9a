package handlers

import (
	"errors"
	"net/http"

	"playground_pos_backend/internal/services"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// VisitHandler holds the visit service.
type VisitHandler struct {
	visitService    services.VisitService
	activityService services.ActivityService
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(vs services.VisitService, as services.ActivityService) *VisitHandler {
	return &VisitHandler{visitService: vs, activityService: as}
}

// PeekTicket previews the next ticket number for the front-desk display.
func (h *VisitHandler) PeekTicket(c *gin.Context) {
	ticket, err := h.visitService.PeekTicketNumber()
	if err != nil {
		utils.LogError(err, "PeekTicket: Error from visitService.PeekTicketNumber")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch next ticket number.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_ticket": ticket})
}

// CheckIn opens a visit for a walk-in or a scanned member.
func (h *VisitHandler) CheckIn(c *gin.Context) {
	var req services.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customer, err := h.visitService.CheckIn(req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Member is already checked in.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CheckIn: Error from visitService.CheckIn")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to check in visitor.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Check-in pengunjung "+customer.ChildName+" tiket "+customer.DailySequence)
	c.JSON(http.StatusCreated, customer)
}

// GetActiveVisits lists everyone currently on the floor.
func (h *VisitHandler) GetActiveVisits(c *gin.Context) {
	visits, err := h.visitService.GetActiveVisits()
	if err != nil {
		utils.LogError(err, "GetActiveVisits: Error from visitService.GetActiveVisits")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch active visits.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": visits, "total": len(visits)})
}

// GetVisit returns a single active visit with its running bill.
func (h *VisitHandler) GetVisit(c *gin.Context) {
	sequence := c.Param("sequence")
	visit, err := h.visitService.GetVisit(sequence)
	if err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Active visit not found.", ""))
			return
		}
		utils.LogError(err, "GetVisit: Error from visitService.GetVisit")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch visit.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, visit)
}

// CancelVisit removes an active visit without billing.
func (h *VisitHandler) CancelVisit(c *gin.Context) {
	sequence := c.Param("sequence")
	if err := h.visitService.CancelVisit(sequence); err != nil {
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Active visit not found.", ""))
			return
		}
		utils.LogError(err, "CancelVisit: Error from visitService.CancelVisit")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to cancel visit.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Membatalkan kunjungan tiket "+sequence)
	c.JSON(http.StatusOK, gin.H{"message": "Visit cancelled"})
}
