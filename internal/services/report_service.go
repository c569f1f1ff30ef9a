package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidPeriod       = errors.New("invalid report period")
)

// Report periods selectable on the reports page.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// ReportSummary aggregates one period of transactions.
type ReportSummary struct {
	Period           string `json:"period"`
	TransactionCount int    `json:"transaction_count"`
	TotalRevenue     int64  `json:"total_revenue"`
}

type ReportService interface {
	GetTransactions(period string, search *string, page, pageSize int) ([]models.Transaction, int, error)
	GetTransactionByID(id int64) (*models.Transaction, error)
	GetSummary(period string) (*ReportSummary, error)
	GetDashboard() (*models.DashboardSummary, error)
	ExportExcel(period string) ([]byte, error)
	ReceiptPDF(transactionID int64) ([]byte, error)
	ClearHistory() error
}

type reportService struct {
	transactionRepo repositories.TransactionRepository
	memberRepo      repositories.MemberRepository
	employeeRepo    repositories.EmployeeRepository
	settingsRepo    repositories.SettingsRepository
	db              *sql.DB
	now             func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	transactionRepo repositories.TransactionRepository,
	memberRepo repositories.MemberRepository,
	employeeRepo repositories.EmployeeRepository,
	settingsRepo repositories.SettingsRepository,
	db *sql.DB,
) ReportService {
	return &reportService{
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
		employeeRepo:    employeeRepo,
		settingsRepo:    settingsRepo,
		db:              db,
		now:             time.Now,
	}
}

// periodBounds converts a named period into a half-open [from, to) range in
// local time. "all" returns the zero time through far future.
func (s *reportService) periodBounds(period string) (time.Time, time.Time, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodToday:
		return today, today.AddDate(0, 0, 1), nil
	case PeriodWeek:
		// ISO-style week starting Monday.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), nil
	case PeriodAll, "":
		return time.Time{}, now.AddDate(100, 0, 0), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
}

func (s *reportService) GetTransactions(period string, search *string, page, pageSize int) ([]models.Transaction, int, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	filters := models.TransactionFilters{
		From:     &from,
		To:       &to,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	}
	transactions, total, err := s.transactionRepo.GetTransactions(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}

func (s *reportService) GetTransactionByID(id int64) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to fetch transaction %d: %w", id, err)
	}
	return transaction, nil
}

func (s *reportService) GetSummary(period string) (*ReportSummary, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}
	revenue, err := s.transactionRepo.SumRevenue(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	count, err := s.transactionRepo.CountTransactions(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	return &ReportSummary{Period: period, TransactionCount: count, TotalRevenue: revenue}, nil
}

// GetDashboard aggregates the landing-page numbers.
func (s *reportService) GetDashboard() (*models.DashboardSummary, error) {
	from, to, err := s.periodBounds(PeriodToday)
	if err != nil {
		return nil, err
	}
	revenue, err := s.transactionRepo.SumRevenue(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}
	visitors, err := s.transactionRepo.CountTransactions(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's visitors: %w", err)
	}
	memberCount, err := s.memberRepo.CountMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	employeeCount, err := s.employeeRepo.CountEmployees()
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	return &models.DashboardSummary{
		TodayRevenue:  revenue,
		TodayVisitors: visitors,
		MemberCount:   memberCount,
		EmployeeCount: employeeCount,
	}, nil
}

// ExportExcel writes a period's transactions to an xlsx workbook.
// The export always covers the whole period, never a single page.
func (s *reportService) ExportExcel(period string) ([]byte, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}
	transactions, _, err := s.transactionRepo.GetTransactions(models.TransactionFilters{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{
		"Ticket", "Date", "Customer", "Member", "Duration", "Hours",
		"Play Cost", "Order Cost", "Discount", "Total", "Payment", "Cashier",
	}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, tx := range transactions {
		member := "No"
		if tx.IsMember {
			member = "Yes"
		}
		values := []any{
			tx.TicketNumber,
			tx.Date.Format("2006-01-02 15:04"),
			tx.CustomerName,
			member,
			tx.Duration,
			tx.BillableHours,
			tx.PlayCost,
			tx.OrderCost,
			tx.DiscountAmount,
			tx.TotalAmount,
			tx.PaymentMethod,
			tx.CashierName,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReceiptPDF renders a printable receipt for one finalized transaction.
func (s *reportService) ReceiptPDF(transactionID int64) ([]byte, error) {
	tx, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(125, 8, "Sukabumi Playground", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(125, 5, fmt.Sprintf("Jam Operasional %s", settings.OpeningHours), "", 1, "C", false, 0, "")
	pdf.CellFormat(125, 5, tx.Date.Format("02-01-2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(125, 6, fmt.Sprintf("Tiket %s - %s", tx.TicketNumber, tx.CustomerName), "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(80, 6, fmt.Sprintf("Bermain %s (%d jam)", tx.Duration, tx.BillableHours), "", 0, "L", false, 0, "")
	pdf.CellFormat(45, 6, utils.FormatRupiah(tx.PlayCost), "", 1, "R", false, 0, "")

	for _, item := range tx.Items {
		pdf.CellFormat(80, 6, fmt.Sprintf("%s x%d", item.Name, item.Qty), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, utils.FormatRupiah(item.Price*int64(item.Qty)), "", 1, "R", false, 0, "")
	}

	if tx.DiscountAmount > 0 {
		pdf.CellFormat(80, 6, fmt.Sprintf("Diskon member %d%%", tx.DiscountPercent), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, "-"+utils.FormatRupiah(tx.DiscountAmount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, utils.FormatRupiah(tx.TotalAmount), "T", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(80, 6, fmt.Sprintf("Pembayaran: %s", tx.PaymentMethod), "", 1, "L", false, 0, "")
	if tx.CashReceived != nil {
		pdf.CellFormat(80, 6, "Tunai", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, utils.FormatRupiah(*tx.CashReceived), "", 1, "R", false, 0, "")
	}
	if tx.ChangeGiven != nil {
		pdf.CellFormat(80, 6, "Kembalian", "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, utils.FormatRupiah(*tx.ChangeGiven), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(125, 5, fmt.Sprintf("Kasir: %s", tx.CashierName), "", 1, "C", false, 0, "")
	pdf.CellFormat(125, 5, "Terima kasih atas kunjungan Anda", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// ClearHistory wipes all finalized transactions. Owner-level operation.
func (s *reportService) ClearHistory() error {
	if err := s.transactionRepo.DeleteAllTransactions(s.db); err != nil {
		return fmt.Errorf("failed to clear transaction history: %w", err)
	}
	return nil
}
