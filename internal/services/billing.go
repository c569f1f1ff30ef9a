package services

import (
	"fmt"
	"time"
)

// Bill is the computed charge for one visit at a point in time.
type Bill struct {
	Duration        string `json:"duration"`
	BillableHours   int    `json:"billable_hours"`
	PlayCost        int64  `json:"play_cost"`
	OrderCost       int64  `json:"order_cost"`
	DiscountPercent int    `json:"discount_percent"`
	DiscountAmount  int64  `json:"discount_amount"`
	TotalAmount     int64  `json:"total_amount"`
}

// BillableHours converts elapsed play time into charged hours. Any started
// hour is charged in full, and a visit is never billed less than one hour.
func BillableHours(checkedInAt, now time.Time) int {
	elapsed := now.Sub(checkedInAt)
	if elapsed <= 0 {
		return 1
	}
	hours := int(elapsed / time.Hour)
	if elapsed%time.Hour > 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

// CalculateBill prices a visit. The member discount applies to play cost
// only; cafe orders are always charged at full price.
func CalculateBill(checkedInAt, now time.Time, hourlyRate int64, isMember bool, discountPercent int, orderCost int64) Bill {
	hours := BillableHours(checkedInAt, now)
	playCost := int64(hours) * hourlyRate

	var discount int64
	if isMember {
		discount = playCost * int64(discountPercent) / 100
	}

	return Bill{
		Duration:        FormatDuration(checkedInAt, now),
		BillableHours:   hours,
		PlayCost:        playCost,
		OrderCost:       orderCost,
		DiscountPercent: discountPercent,
		DiscountAmount:  discount,
		TotalAmount:     playCost - discount + orderCost,
	}
}

// CalculateChange returns the change due for a cash payment. Never negative;
// the caller must reject payments below the total before getting here.
func CalculateChange(cashReceived, total int64) int64 {
	change := cashReceived - total
	if change < 0 {
		return 0
	}
	return change
}

// FormatDuration renders elapsed play time for receipts, e.g. "2 jam 15 menit".
func FormatDuration(checkedInAt, now time.Time) string {
	elapsed := now.Sub(checkedInAt)
	if elapsed < time.Minute {
		return "< 1 menit"
	}
	hours := int(elapsed / time.Hour)
	minutes := int(elapsed%time.Hour) / int(time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%d menit", minutes)
	}
	return fmt.Sprintf("%d jam %d menit", hours, minutes)
}
