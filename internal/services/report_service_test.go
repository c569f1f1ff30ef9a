package services

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

type fakeTransactionRepo struct {
	transactions []models.Transaction
	lastFilters  models.TransactionFilters
}

func (f *fakeTransactionRepo) CreateTransaction(_ repositories.SQLExecutor, _ *models.Transaction) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeTransactionRepo) CreateTransactionItems(_ repositories.SQLExecutor, _ int64, _ []models.TransactionItem) error {
	return errors.New("not implemented")
}
func (f *fakeTransactionRepo) GetTransactionByID(_ int64) (*models.Transaction, error) {
	return nil, repositories.ErrNotFound
}

// GetTransactions pages like the real repository: a zero PageSize means no
// LIMIT clause and the whole result set comes back.
func (f *fakeTransactionRepo) GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int, error) {
	f.lastFilters = filters
	total := len(f.transactions)
	rows := f.transactions
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filters.PageSize
		if start > total {
			start = total
		}
		end := start + filters.PageSize
		if end > total {
			end = total
		}
		rows = rows[start:end]
	}
	return rows, total, nil
}
func (f *fakeTransactionRepo) SumRevenue(_, _ time.Time) (int64, error) {
	var sum int64
	for _, tx := range f.transactions {
		sum += tx.TotalAmount
	}
	return sum, nil
}
func (f *fakeTransactionRepo) CountTransactions(_, _ time.Time) (int, error) {
	return len(f.transactions), nil
}
func (f *fakeTransactionRepo) DeleteAllTransactions(_ repositories.SQLExecutor) error {
	f.transactions = nil
	return nil
}

func TestExportExcelCoversWholePeriod(t *testing.T) {
	now := time.Date(2026, time.August, 31, 18, 0, 0, 0, time.Local)
	transactionRepo := &fakeTransactionRepo{}
	for i := 0; i < 25; i++ {
		transactionRepo.transactions = append(transactionRepo.transactions, models.Transaction{
			ID:            int64(i + 1),
			TicketNumber:  fmt.Sprintf("%05d", i+1),
			Date:          now.Add(-time.Duration(i) * time.Minute),
			CustomerName:  fmt.Sprintf("Anak %d", i+1),
			Duration:      "1j 30m",
			BillableHours: 2,
			PlayCost:      2 * models.DefaultTicketPrice,
			TotalAmount:   2 * models.DefaultTicketPrice,
			PaymentMethod: models.PaymentCash,
			CashierName:   "Sari",
		})
	}
	svc := &reportService{
		transactionRepo: transactionRepo,
		now:             func() time.Time { return now },
	}

	data, err := svc.ExportExcel(PeriodToday)
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}
	if transactionRepo.lastFilters.PageSize != 0 {
		t.Errorf("export fetched with PageSize = %d, want unpaged", transactionRepo.lastFilters.PageSize)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer workbook.Close()
	rows, err := workbook.GetRows("Transactions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// One header row plus every transaction of the day.
	if len(rows) != 26 {
		t.Fatalf("len(rows) = %d, want 26", len(rows))
	}
	if rows[1][0] != "00001" || rows[25][0] != "00025" {
		t.Errorf("ticket column = %q ... %q, want 00001 ... 00025", rows[1][0], rows[25][0])
	}
}

func TestExportExcelRejectsUnknownPeriod(t *testing.T) {
	svc := &reportService{
		transactionRepo: &fakeTransactionRepo{},
		now:             time.Now,
	}
	if _, err := svc.ExportExcel("fortnight"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("ExportExcel(fortnight) error = %v, want ErrInvalidPeriod", err)
	}
}
