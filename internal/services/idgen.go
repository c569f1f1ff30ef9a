package services

import (
	"fmt"
	"strings"
	"time"

	"playground_pos_backend/internal/models"
)

var rolePrefixes = map[string]string{
	models.RoleOwner:      "OWN",
	models.RoleManager:    "MGR",
	models.RoleSupervisor: "SPV",
	models.RoleKasir:      "KSR",
	models.RoleStaff:      "STF",
	models.RoleAdmin:      "ADM",
}

var branchCodes = map[string]string{
	"Sukabumi": "SKB",
	"Jakarta":  "JKT",
	"Bandung":  "BDG",
}

// RolePrefix returns the employee ID prefix for a role, or false for an
// unknown role.
func RolePrefix(role string) (string, bool) {
	prefix, ok := rolePrefixes[strings.ToLower(role)]
	return prefix, ok
}

// FormatEmployeeID builds a role-prefixed staff ID such as "KSR-001".
func FormatEmployeeID(prefix string, number int) string {
	return fmt.Sprintf("%s-%03d", prefix, number)
}

// BranchCode maps a branch name to its three-letter code. Branches outside
// the known set fall back to the first three letters uppercased.
func BranchCode(branch string) string {
	if code, ok := branchCodes[branch]; ok {
		return code
	}
	upper := strings.ToUpper(strings.TrimSpace(branch))
	if len(upper) >= 3 {
		return upper[:3]
	}
	return upper
}

// ComposeBarcode builds the membership card barcode:
// BRANCH-DDMMYY-SSSS-MM/YY, from the branch, the child's date of birth
// (YYYY-MM-DD), the issue sequence and the registration time.
func ComposeBarcode(branch, dateOfBirth string, sequence int, registeredAt time.Time) (string, error) {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return "", fmt.Errorf("invalid date of birth %q: %w", dateOfBirth, err)
	}
	return fmt.Sprintf("%s-%s-%04d-%s",
		BranchCode(branch),
		dob.Format("020106"),
		sequence,
		registeredAt.Format("01/06"),
	), nil
}

// FormatTicketNumber renders a daily sequence number as the five-digit
// ticket string printed on wristbands.
func FormatTicketNumber(number int) string {
	return fmt.Sprintf("%05d", number)
}
