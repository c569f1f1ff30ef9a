package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/services"
	"playground_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService   services.ReportService
	activityService services.ActivityService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, as services.ActivityService) *ReportHandler {
	return &ReportHandler{reportService: rs, activityService: as}
}

// GetTransactions lists finalized checkouts for a period.
func (h *ReportHandler) GetTransactions(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodAll)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	pSearch := utils.NewNullString(c.Query("search"))

	transactions, totalCount, err := h.reportService.GetTransactions(period, pSearch, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report period.", err.Error()))
			return
		}
		utils.LogError(err, "GetTransactions: Error from reportService.GetTransactions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transactions.", "Internal error"))
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      transactions,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetTransactionByID fetches one transaction with its frozen items.
func (h *ReportHandler) GetTransactionByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	transaction, err := h.reportService.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Transaction not found.", ""))
			return
		}
		utils.LogError(err, "GetTransactionByID: Error from reportService.GetTransactionByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transaction.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// GetSummary aggregates a period's revenue and transaction count.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodToday)

	summary, err := h.reportService.GetSummary(period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report period.", err.Error()))
			return
		}
		utils.LogError(err, "GetSummary: Error from reportService.GetSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDashboard returns the landing-page figures.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.GetDashboard()
	if err != nil {
		utils.LogError(err, "GetDashboard: Error from reportService.GetDashboard")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ExportExcel streams a period's transactions as an xlsx download.
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	period := c.DefaultQuery("period", services.PeriodMonth)

	data, err := h.reportService.ExportExcel(period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report period.", err.Error()))
			return
		}
		utils.LogError(err, "ExportExcel: Error from reportService.ExportExcel")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export report.", "Internal error"))
		return
	}

	filename := fmt.Sprintf("transactions-%s-%s.xlsx", period, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Receipt streams a printable PDF receipt for one transaction.
func (h *ReportHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	data, err := h.reportService.ReceiptPDF(id)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Transaction not found.", ""))
			return
		}
		utils.LogError(err, "Receipt: Error from reportService.ReceiptPDF")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to render receipt.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ClearHistory wipes all finalized transactions.
func (h *ReportHandler) ClearHistory(c *gin.Context) {
	if err := h.reportService.ClearHistory(); err != nil {
		utils.LogError(err, "ClearHistory: Error from reportService.ClearHistory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clear transaction history.", "Internal error"))
		return
	}

	h.activityService.Record(actorName(c), "Menghapus seluruh riwayat transaksi")
	c.JSON(http.StatusOK, gin.H{"message": "Transaction history cleared"})
}
