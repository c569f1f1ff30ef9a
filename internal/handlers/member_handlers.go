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

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService   services.MemberService
	activityService services.ActivityService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService, as services.ActivityService) *MemberHandler {
	return &MemberHandler{memberService: ms, activityService: as}
}

// RegisterMember handles a new membership registration.
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req services.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.RegisterMember(req)
	if err != nil {
		if errors.Is(err, services.ErrMemberPhoneInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered to a member.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "RegisterMember: Error from memberService.RegisterMember")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register member.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Mendaftarkan member baru "+member.ChildName+" ("+member.Barcode+")")
	c.JSON(http.StatusCreated, member)
}

// GetMembers handles fetching members with pagination and search.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	pSearchTerm := utils.NewNullString(c.Query("search"))

	members, totalCount, err := h.memberService.GetMembers(page, pageSize, pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch members.", "Internal error"))
		return
	}
	if members == nil {
		members = []models.Member{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      members,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetMemberByID handles fetching a single member.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", ""))
			return
		}
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, member)
}

// LookupByBarcode resolves a scanned membership card. An expired card
// returns the member with HTTP 410 so the desk can offer a renewal.
func (h *MemberHandler) LookupByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if utils.IsEmpty(barcode) {
		utils.RespondValidationFailed(c, "barcode is required")
		return
	}

	member, err := h.memberService.GetMemberByBarcode(barcode)
	if err != nil {
		if errors.Is(err, services.ErrMembershipExpired) {
			c.JSON(http.StatusGone, gin.H{"member": member, "expired": true})
			return
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", ""))
			return
		}
		utils.LogError(err, "LookupByBarcode: Error from memberService.GetMemberByBarcode")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to look up member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member, "expired": false})
}

// UpdateMember handles a partial member update.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.UpdateMember(id, req)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", ""))
		} else if errors.Is(err, services.ErrMemberPhoneInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered to a member.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update member.", "Internal error"))
		}
		return
	}

	h.activityService.Record(actorName(c), "Memperbarui data member "+member.Barcode)
	c.JSON(http.StatusOK, member)
}

// RenewMember extends a membership by one year.
func (h *MemberHandler) RenewMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.RenewMember(id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", ""))
			return
		}
		utils.LogError(err, "RenewMember: Error from memberService.RenewMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to renew member.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Memperpanjang membership "+member.Barcode)
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles member removal.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	if err := h.memberService.DeleteMember(id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", ""))
			return
		}
		utils.LogError(err, "DeleteMember: Error from memberService.DeleteMember")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete member.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Menghapus data member")
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
