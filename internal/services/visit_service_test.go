package services

import (
	"errors"
	"testing"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
)

type fakeMemberRepo struct {
	members map[string]*models.Member // keyed by barcode
}

func (f *fakeMemberRepo) CreateMember(_ repositories.SQLExecutor, _ *models.Member) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeMemberRepo) GetMemberByID(_ int64) (*models.Member, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeMemberRepo) GetMemberByPhone(_ string) (*models.Member, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeMemberRepo) GetMemberByBarcode(barcode string) (*models.Member, error) {
	if m, ok := f.members[barcode]; ok {
		return m, nil
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeMemberRepo) GetMembers(_, _ int, _ *string) ([]models.Member, int, error) {
	return nil, 0, nil
}
func (f *fakeMemberRepo) UpdateMember(_ repositories.SQLExecutor, _ *models.Member) error {
	return errors.New("not implemented")
}
func (f *fakeMemberRepo) DeleteMember(_ repositories.SQLExecutor, _ int64) error {
	return errors.New("not implemented")
}
func (f *fakeMemberRepo) CountMembers() (int, error) { return len(f.members), nil }
func (f *fakeMemberRepo) NextBarcodeSequence(_ repositories.SQLExecutor) (int, error) {
	return 1, nil
}

func newVisitFixture(now time.Time) (*visitService, *fakeVisitRepo, *fakeMemberRepo) {
	visitRepo := &fakeVisitRepo{customers: map[string]*models.ActiveCustomer{}}
	memberRepo := &fakeMemberRepo{members: map[string]*models.Member{}}
	orderRepo := &fakeOrderRepo{items: map[string][]models.OrderItem{}}
	settingsRepo := &fakeSettingsRepo{settings: models.DefaultSettings()}
	svc := &visitService{
		visitRepo:    visitRepo,
		memberRepo:   memberRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		now:          func() time.Time { return now },
	}
	return svc, visitRepo, memberRepo
}

func TestPeekTicketNumberFreshDay(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.Local)
	svc, _, _ := newVisitFixture(now)

	got, err := svc.PeekTicketNumber()
	if err != nil {
		t.Fatalf("PeekTicketNumber: %v", err)
	}
	if got != "00001" {
		t.Errorf("PeekTicketNumber = %q, want 00001", got)
	}
}

func TestPeekTicketNumberDateRollover(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.Local)
	svc, visitRepo, _ := newVisitFixture(now)

	// The counter still holds yesterday's state; the candidate resets.
	visitRepo.seq = &models.DailySequenceState{Date: "2026-08-30", NextNumber: 7}
	got, err := svc.PeekTicketNumber()
	if err != nil {
		t.Fatalf("PeekTicketNumber: %v", err)
	}
	if got != "00001" {
		t.Errorf("PeekTicketNumber after rollover = %q, want 00001", got)
	}
}

func TestPeekTicketNumberSameDayStable(t *testing.T) {
	now := time.Date(2026, time.August, 31, 14, 0, 0, 0, time.Local)
	svc, visitRepo, _ := newVisitFixture(now)

	visitRepo.seq = &models.DailySequenceState{Date: "2026-08-31", NextNumber: 7}
	first, err := svc.PeekTicketNumber()
	if err != nil {
		t.Fatalf("PeekTicketNumber: %v", err)
	}
	second, err := svc.PeekTicketNumber()
	if err != nil {
		t.Fatalf("PeekTicketNumber: %v", err)
	}
	if first != "00007" || second != first {
		t.Errorf("peek twice = %q, %q; want 00007 both times", first, second)
	}
}

func TestCheckInValidation(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)
	svc, visitRepo, memberRepo := newVisitFixture(now)

	barcode := "SKB-070319-0001-08/26"
	memberRepo.members[barcode] = &models.Member{
		ID:        1,
		ChildName: "Bima",
		Barcode:   barcode,
		Phone:     "081234567890",
		ExpiresAt: now.AddDate(1, 0, 0),
	}
	visitRepo.customers["00001"] = &models.ActiveCustomer{
		DailySequence: "00001",
		ChildName:     "Bima",
		Barcode:       &barcode,
		IsMember:      true,
		CheckedInAt:   now.Add(-time.Hour),
	}

	if _, err := svc.CheckIn(CheckInRequest{ChildName: "  "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name error = %v, want ErrValidation", err)
	}

	if _, err := svc.CheckIn(CheckInRequest{ChildName: "Bima", Barcode: &barcode}); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("double check-in error = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestCheckInUnknownBarcodeAdmitsGuest(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)
	svc, _, _ := newVisitFixture(now)

	// A card that matches no member is not an error: the visitor goes in
	// as a regular guest under the name given at the desk.
	customer := &models.ActiveCustomer{ChildName: "Raka", CheckedInAt: now}
	if err := svc.applyMemberCard(customer, "SKB-000000-0099-01/20", now); err != nil {
		t.Fatalf("applyMemberCard with unknown barcode: %v", err)
	}
	if customer.IsMember || customer.Barcode != nil || customer.DiscountPercent != 0 {
		t.Errorf("unknown card attached a membership, want regular guest: %+v", customer)
	}
	if customer.ChildName != "Raka" {
		t.Errorf("ChildName = %q, want Raka", customer.ChildName)
	}
}

func TestCheckInExpiredCardAdmitsGuest(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)
	svc, _, memberRepo := newVisitFixture(now)

	barcode := "SKB-070319-0002-08/25"
	memberRepo.members[barcode] = &models.Member{
		ID:        2,
		ChildName: "Dewi",
		Barcode:   barcode,
		Phone:     "081234567891",
		ExpiresAt: now.AddDate(-1, 0, 0),
	}

	customer := &models.ActiveCustomer{ChildName: "Dewi", CheckedInAt: now}
	if err := svc.applyMemberCard(customer, barcode, now); err != nil {
		t.Fatalf("applyMemberCard with expired card: %v", err)
	}
	if customer.IsMember || customer.DiscountPercent != 0 {
		t.Errorf("expired card attached a membership, want regular guest: %+v", customer)
	}
}

func TestCheckInValidCardAttachesMembership(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.Local)
	svc, _, memberRepo := newVisitFixture(now)

	barcode := "SKB-070319-0003-08/26"
	memberRepo.members[barcode] = &models.Member{
		ID:        3,
		ChildName: "Bima",
		Barcode:   barcode,
		Phone:     "081234567892",
		ExpiresAt: now.AddDate(1, 0, 0),
	}

	customer := &models.ActiveCustomer{ChildName: "typo name", CheckedInAt: now}
	if err := svc.applyMemberCard(customer, barcode, now); err != nil {
		t.Fatalf("applyMemberCard: %v", err)
	}
	if !customer.IsMember {
		t.Fatal("valid card did not attach the membership")
	}
	if customer.DiscountPercent != models.DefaultMemberDiscount {
		t.Errorf("DiscountPercent = %d, want %d", customer.DiscountPercent, models.DefaultMemberDiscount)
	}
	if customer.ChildName != "Bima" || customer.Phone != "081234567892" {
		t.Errorf("membership did not overwrite guest details: %+v", customer)
	}
}

func TestGetActiveVisitsBillsRunningTime(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 30, 0, 0, time.Local)
	svc, visitRepo, _ := newVisitFixture(now)

	visitRepo.customers["00005"] = &models.ActiveCustomer{
		DailySequence: "00005",
		ChildName:     "Sari",
		CheckedInAt:   time.Date(2026, time.August, 31, 10, 45, 0, 0, time.Local),
	}

	visits, err := svc.GetActiveVisits()
	if err != nil {
		t.Fatalf("GetActiveVisits: %v", err)
	}
	if len(visits) != 1 {
		t.Fatalf("len(visits) = %d, want 1", len(visits))
	}
	// 1h45m on the floor bills 2 hours at the default rate.
	if visits[0].Bill.BillableHours != 2 {
		t.Errorf("BillableHours = %d, want 2", visits[0].Bill.BillableHours)
	}
	if visits[0].Bill.TotalAmount != 2*models.DefaultTicketPrice {
		t.Errorf("TotalAmount = %d, want %d", visits[0].Bill.TotalAmount, 2*models.DefaultTicketPrice)
	}
}
