package logic

import (
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/constants"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AuditActionCreateBill    = "CREATE_BILL"
	AuditActionUpdateBill    = "UPDATE_BILL"
	AuditActionRenewBill     = "RENEW_BILL"
	AuditActionRecordPayment = "RECORD_PAYMENT"
	AuditActionEditRenewal   = "EDIT_RENEWAL"
	AuditActionDeleteRenewal = "DELETE_RENEWAL"
	AuditActionDeleteBill    = "DELETE_BILL"
)

// AuditLogOption defines a function that configures an AuditLog object.
type AuditLogOption func(*models.AuditLog)

// WithReason is an option to add a reason to an audit log.
func WithReason(reason string) AuditLogOption {
	return func(log *models.AuditLog) {
		if reason != "" {
			log.Reason = reason
		}
	}
}

// WithMemberID tags the entry with the member id for lookups by member.
func WithMemberID(memberID string) AuditLogOption {
	return func(log *models.AuditLog) {
		log.MemberID = memberID
	}
}

// NewAuditLog builds a standardized audit entry. A nil user is recorded as the system user.
func NewAuditLog(user *models.User, action, entityType string, entityID primitive.ObjectID, before, after interface{}, opts ...AuditLogOption) *models.AuditLog {
	if user == nil {
		user = models.SystemUser
	}
	log := &models.AuditLog{
		ID:         primitive.NewObjectID(),
		UserID:     user.UserId,
		UserName:   user.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes: map[string]interface{}{
			"before": before,
			"after":  after,
		},
		Timestamp: time.Now(),
	}

	for _, opt := range opts {
		opt(log)
	}

	return log
}

func buildCreateBillAuditLog(operator *models.User, bill *models.GymBill) *models.AuditLog {
	return NewAuditLog(operator, AuditActionCreateBill, constants.ResourceBill, bill.ID, nil, bill, WithMemberID(bill.MemberID))
}

func buildUpdateBillAuditLog(operator *models.User, before, after *models.GymBill) *models.AuditLog {
	return NewAuditLog(operator, AuditActionUpdateBill, constants.ResourceBill, before.ID, before, after, WithMemberID(before.MemberID))
}

// buildRenewBillAuditLog keeps only the swapped periods; the histories are already in the bill.
func buildRenewBillAuditLog(operator *models.User, bill *models.GymBill, before, after models.ActivePeriod) *models.AuditLog {
	return NewAuditLog(operator, AuditActionRenewBill, constants.ResourceBill, bill.ID, before, after, WithMemberID(bill.MemberID))
}

func buildRecordPaymentAuditLog(operator *models.User, bill *models.GymBill, entry models.PaymentEntry, newBalance decimal.Decimal) *models.AuditLog {
	before := map[string]interface{}{
		"amount_paid": bill.Active.AmountPaid,
		"balance":     bill.Active.Balance,
	}
	after := map[string]interface{}{
		"amount_paid": models.NewDecimal(bill.Active.AmountPaid.Decimal().Add(entry.Amount.Decimal())),
		"balance":     models.NewDecimal(newBalance),
		"payment":     entry,
	}
	return NewAuditLog(operator, AuditActionRecordPayment, constants.ResourceBill, bill.ID, before, after, WithMemberID(bill.MemberID), WithReason(entry.Note))
}

func buildEditRenewalAuditLog(operator *models.User, bill *models.GymBill, before, after *models.RenewalEntry) *models.AuditLog {
	return NewAuditLog(operator, AuditActionEditRenewal, constants.ResourceBill, bill.ID, before, after, WithMemberID(bill.MemberID))
}

func buildDeleteRenewalAuditLog(operator *models.User, bill *models.GymBill, removed *models.RenewalEntry) *models.AuditLog {
	return NewAuditLog(operator, AuditActionDeleteRenewal, constants.ResourceBill, bill.ID, removed, nil, WithMemberID(bill.MemberID))
}

func buildDeleteBillAuditLog(operator *models.User, bill *models.GymBill) *models.AuditLog {
	return NewAuditLog(operator, AuditActionDeleteBill, constants.ResourceBill, bill.ID, bill, nil, WithMemberID(bill.MemberID))
}
