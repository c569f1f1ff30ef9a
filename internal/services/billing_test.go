package services

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.Local)
}

func TestBillableHours(t *testing.T) {
	tests := []struct {
		name    string
		checkIn time.Time
		now     time.Time
		want    int
	}{
		{"under one hour charges one", at(10, 0), at(10, 45), 1},
		{"exactly one hour", at(10, 0), at(11, 0), 1},
		{"just over one hour rounds up", at(10, 0), at(11, 5), 2},
		{"exactly two hours", at(10, 0), at(12, 0), 2},
		{"zero elapsed charges one", at(10, 0), at(10, 0), 1},
		{"one minute charges one", at(10, 0), at(10, 1), 1},
		{"clock skew never charges zero", at(10, 30), at(10, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BillableHours(tt.checkIn, tt.now); got != tt.want {
				t.Errorf("BillableHours() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateBill(t *testing.T) {
	const rate = int64(25000)

	tests := []struct {
		name            string
		checkIn, now    time.Time
		isMember        bool
		discountPercent int
		orderCost       int64
		wantHours       int
		wantPlay        int64
		wantDiscount    int64
		wantTotal       int64
	}{
		{
			name: "45 minute walk-in", checkIn: at(10, 0), now: at(10, 45),
			wantHours: 1, wantPlay: 25000, wantDiscount: 0, wantTotal: 25000,
		},
		{
			name: "65 minutes bills two hours", checkIn: at(10, 0), now: at(11, 5),
			wantHours: 2, wantPlay: 50000, wantDiscount: 0, wantTotal: 50000,
		},
		{
			name: "member discount applies to play cost only",
			checkIn: at(10, 0), now: at(11, 5),
			isMember: true, discountPercent: 10, orderCost: 15000,
			wantHours: 2, wantPlay: 50000, wantDiscount: 5000, wantTotal: 60000,
		},
		{
			name: "non-member discount percent is ignored",
			checkIn: at(10, 0), now: at(10, 30),
			isMember: false, discountPercent: 10,
			wantHours: 1, wantPlay: 25000, wantDiscount: 0, wantTotal: 25000,
		},
		{
			name: "order cost charged at full price",
			checkIn: at(10, 0), now: at(10, 30), orderCost: 42000,
			wantHours: 1, wantPlay: 25000, wantDiscount: 0, wantTotal: 67000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := CalculateBill(tt.checkIn, tt.now, rate, tt.isMember, tt.discountPercent, tt.orderCost)
			if bill.BillableHours != tt.wantHours {
				t.Errorf("BillableHours = %d, want %d", bill.BillableHours, tt.wantHours)
			}
			if bill.PlayCost != tt.wantPlay {
				t.Errorf("PlayCost = %d, want %d", bill.PlayCost, tt.wantPlay)
			}
			if bill.DiscountAmount != tt.wantDiscount {
				t.Errorf("DiscountAmount = %d, want %d", bill.DiscountAmount, tt.wantDiscount)
			}
			if bill.TotalAmount != tt.wantTotal {
				t.Errorf("TotalAmount = %d, want %d", bill.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestCalculateChange(t *testing.T) {
	tests := []struct {
		name          string
		cash, total   int64
		want          int64
	}{
		{"exact payment", 60000, 60000, 0},
		{"overpayment", 100000, 60000, 40000},
		{"underpayment clamps to zero", 50000, 60000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateChange(tt.cash, tt.total); got != tt.want {
				t.Errorf("CalculateChange(%d, %d) = %d, want %d", tt.cash, tt.total, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name         string
		checkIn, now time.Time
		want         string
	}{
		{"under a minute", at(10, 0), at(10, 0), "< 1 menit"},
		{"minutes only", at(10, 0), at(10, 45), "45 menit"},
		{"hours and minutes", at(10, 0), at(12, 15), "2 jam 15 menit"},
		{"whole hours", at(10, 0), at(11, 0), "1 jam 0 menit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.checkIn, tt.now); got != tt.want {
				t.Errorf("FormatDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}
