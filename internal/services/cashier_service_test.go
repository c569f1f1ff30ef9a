package services

import (
	"errors"
	"testing"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

type fakeVisitRepo struct {
	customers map[string]*models.ActiveCustomer
	seq       *models.DailySequenceState
}

func (f *fakeVisitRepo) CreateActiveCustomer(_ repositories.SQLExecutor, c *models.ActiveCustomer) (int64, error) {
	if _, ok := f.customers[c.DailySequence]; ok {
		return 0, repositories.ErrDuplicateKey
	}
	f.customers[c.DailySequence] = c
	return int64(len(f.customers)), nil
}
func (f *fakeVisitRepo) GetActiveCustomerBySequence(sequence string) (*models.ActiveCustomer, error) {
	if c, ok := f.customers[sequence]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeVisitRepo) GetActiveCustomerByBarcode(barcode string) (*models.ActiveCustomer, error) {
	for _, c := range f.customers {
		if c.Barcode != nil && *c.Barcode == barcode {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeVisitRepo) GetActiveCustomers() ([]models.ActiveCustomer, error) {
	out := []models.ActiveCustomer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}
func (f *fakeVisitRepo) DeleteActiveCustomer(_ repositories.SQLExecutor, sequence string) error {
	if _, ok := f.customers[sequence]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.customers, sequence)
	return nil
}
func (f *fakeVisitRepo) PeekSequence() (*models.DailySequenceState, error) {
	if f.seq == nil {
		return nil, repositories.ErrNotFound
	}
	state := *f.seq
	return &state, nil
}
func (f *fakeVisitRepo) CommitSequence(_ repositories.SQLExecutor, _ string) (int, error) {
	return 1, nil
}

type fakeOrderRepo struct {
	items map[string][]models.OrderItem
}

func (f *fakeOrderRepo) GetOrderItems(sequence string) ([]models.OrderItem, error) {
	return f.items[sequence], nil
}
func (f *fakeOrderRepo) GetOrderItem(sequence string, itemID int64) (*models.OrderItem, error) {
	for _, item := range f.items[sequence] {
		if item.InventoryItemID == itemID {
			return &item, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeOrderRepo) UpsertOrderItem(_ repositories.SQLExecutor, _ *models.OrderItem) error {
	return errors.New("not implemented")
}
func (f *fakeOrderRepo) UpdateOrderItemQty(_ repositories.SQLExecutor, _ string, _ int64, _ int) error {
	return errors.New("not implemented")
}
func (f *fakeOrderRepo) DeleteOrderItem(_ repositories.SQLExecutor, _ string, _ int64) error {
	return errors.New("not implemented")
}
func (f *fakeOrderRepo) DeleteOrder(_ repositories.SQLExecutor, sequence string) error {
	delete(f.items, sequence)
	return nil
}
func (f *fakeOrderRepo) GetOpenOrderSequences() ([]string, error) {
	out := []string{}
	for seq := range f.items {
		out = append(out, seq)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func (f *fakeSettingsRepo) GetSettings() (*models.Settings, error) {
	s := f.settings
	return &s, nil
}
func (f *fakeSettingsRepo) PutSettings(_ repositories.SQLExecutor, s *models.Settings) error {
	f.settings = *s
	return nil
}
func (f *fakeSettingsRepo) ResetOperationalData(_ repositories.SQLExecutor) error { return nil }

func newCashierFixture(now time.Time) (*cashierService, *fakeVisitRepo, *fakeOrderRepo) {
	visitRepo := &fakeVisitRepo{customers: map[string]*models.ActiveCustomer{}}
	orderRepo := &fakeOrderRepo{items: map[string][]models.OrderItem{}}
	settingsRepo := &fakeSettingsRepo{settings: models.DefaultSettings()}
	svc := &cashierService{
		visitRepo:    visitRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		now:          func() time.Time { return now },
	}
	return svc, visitRepo, orderRepo
}

func TestCashierQuote(t *testing.T) {
	now := time.Date(2026, time.August, 31, 11, 5, 0, 0, time.Local)
	svc, visitRepo, orderRepo := newCashierFixture(now)

	barcode := "SKB-070319-0001-08/26"
	visitRepo.customers["00003"] = &models.ActiveCustomer{
		DailySequence:   "00003",
		ChildName:       "Bima",
		Barcode:         &barcode,
		IsMember:        true,
		DiscountPercent: 10,
		CheckedInAt:     time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local),
	}
	orderRepo.items["00003"] = []models.OrderItem{
		{InventoryItemID: 7, Name: "Teh Botol", Price: 7500, Qty: 2},
	}

	quote, err := svc.Quote("00003")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// 65 minutes -> 2 hours * 25000 = 50000, 10% member discount = 5000,
	// order 15000, total 60000.
	if quote.Bill.BillableHours != 2 {
		t.Errorf("BillableHours = %d, want 2", quote.Bill.BillableHours)
	}
	if quote.Bill.DiscountAmount != 5000 {
		t.Errorf("DiscountAmount = %d, want 5000", quote.Bill.DiscountAmount)
	}
	if quote.Bill.TotalAmount != 60000 {
		t.Errorf("TotalAmount = %d, want 60000", quote.Bill.TotalAmount)
	}

	if _, err := svc.Quote("99999"); !errors.Is(err, ErrVisitNotFound) {
		t.Errorf("Quote missing visit error = %v, want ErrVisitNotFound", err)
	}
}

func TestCashierFinalizeValidation(t *testing.T) {
	now := time.Date(2026, time.August, 31, 11, 5, 0, 0, time.Local)
	svc, visitRepo, _ := newCashierFixture(now)

	visitRepo.customers["00001"] = &models.ActiveCustomer{
		DailySequence: "00001",
		ChildName:     "Sari",
		CheckedInAt:   time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local),
	}

	cash := int64(50000)
	tests := []struct {
		name     string
		sequence string
		req      FinalizeRequest
		wantErr  error
	}{
		{
			name:     "unknown payment method",
			sequence: "00001",
			req:      FinalizeRequest{PaymentMethod: "Cek"},
			wantErr:  ErrInvalidPaymentMethod,
		},
		{
			name:     "debit without bank",
			sequence: "00001",
			req:      FinalizeRequest{PaymentMethod: models.PaymentDebit},
			wantErr:  ErrMissingBankName,
		},
		{
			name:     "missing visit",
			sequence: "00042",
			req:      FinalizeRequest{PaymentMethod: models.PaymentCash, CashReceived: &cash},
			wantErr:  ErrVisitNotFound,
		},
		{
			// 65 minutes bills 2 hours at 25000, so the total is 50000.
			name:     "cash below total",
			sequence: "00001",
			req:      FinalizeRequest{PaymentMethod: models.PaymentCash, CashReceived: func() *int64 { v := int64(49000); return &v }()},
			wantErr:  ErrInsufficientCash,
		},
		{
			name:     "cash payment without amount",
			sequence: "00001",
			req:      FinalizeRequest{PaymentMethod: models.PaymentCash},
			wantErr:  ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Finalize(tt.sequence, "Rina", tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Finalize error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// The rejected finalizes must leave the visit on the floor.
	if _, ok := visitRepo.customers["00001"]; !ok {
		t.Error("visit removed by a rejected finalize")
	}
}
