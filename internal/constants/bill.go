package constants

import "strings"

// BillStatus is the membership state carried by a gym bill.
type BillStatus int

const (
	BillStatusActive BillStatus = iota
	BillStatusInactive
)

func (s BillStatus) String() string {
	switch s {
	case BillStatusInactive:
		return "Inactive"
	default:
		return "Active"
	}
}

var billStatusMap = map[string]BillStatus{
	"Active":   BillStatusActive,
	"Inactive": BillStatusInactive,
}

// SanitizeBillStatus coerces anything outside {Active, Inactive}, including
// the empty string, to Active.
func SanitizeBillStatus(s string) BillStatus {
	if status, ok := billStatusMap[strings.TrimSpace(s)]; ok {
		return status
	}
	return BillStatusActive
}

// Reasons recorded in the balance history.
const (
	BalanceReasonPayment = "payment"
	BalanceReasonRenewal = "renewal"
	BalanceReasonEdit    = "edit"
)

// ResourceBill is the entity type used by audit logs.
const ResourceBill = "gym_bill"
