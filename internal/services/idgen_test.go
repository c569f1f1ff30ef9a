package services

import (
	"testing"
	"time"
)

func TestRolePrefix(t *testing.T) {
	tests := []struct {
		role   string
		want   string
		wantOK bool
	}{
		{"owner", "OWN", true},
		{"manager", "MGR", true},
		{"supervisor", "SPV", true},
		{"kasir", "KSR", true},
		{"staff", "STF", true},
		{"admin", "ADM", true},
		{"Kasir", "KSR", true},
		{"janitor", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, ok := RolePrefix(tt.role)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RolePrefix(%q) = (%q, %v), want (%q, %v)", tt.role, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatEmployeeID(t *testing.T) {
	if got := FormatEmployeeID("KSR", 1); got != "KSR-001" {
		t.Errorf("FormatEmployeeID = %q, want KSR-001", got)
	}
	if got := FormatEmployeeID("OWN", 42); got != "OWN-042" {
		t.Errorf("FormatEmployeeID = %q, want OWN-042", got)
	}
	if got := FormatEmployeeID("STF", 1234); got != "STF-1234" {
		t.Errorf("FormatEmployeeID = %q, want STF-1234", got)
	}
}

func TestBranchCode(t *testing.T) {
	tests := []struct {
		branch string
		want   string
	}{
		{"Sukabumi", "SKB"},
		{"Jakarta", "JKT"},
		{"Bandung", "BDG"},
		{"Cianjur", "CIA"},
		{"bo", "BO"},
	}
	for _, tt := range tests {
		if got := BranchCode(tt.branch); got != tt.want {
			t.Errorf("BranchCode(%q) = %q, want %q", tt.branch, got, tt.want)
		}
	}
}

func TestComposeBarcode(t *testing.T) {
	registered := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.Local)

	got, err := ComposeBarcode("Sukabumi", "2019-03-07", 12, registered)
	if err != nil {
		t.Fatalf("ComposeBarcode returned error: %v", err)
	}
	want := "SKB-070319-0012-08/26"
	if got != want {
		t.Errorf("ComposeBarcode = %q, want %q", got, want)
	}

	if _, err := ComposeBarcode("Sukabumi", "07-03-2019", 1, registered); err == nil {
		t.Error("ComposeBarcode accepted malformed date of birth")
	}
}

func TestFormatTicketNumber(t *testing.T) {
	if got := FormatTicketNumber(1); got != "00001" {
		t.Errorf("FormatTicketNumber(1) = %q, want 00001", got)
	}
	if got := FormatTicketNumber(12345); got != "12345" {
		t.Errorf("FormatTicketNumber(12345) = %q, want 12345", got)
	}
}
