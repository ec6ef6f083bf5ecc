package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymBill is one client's membership bill: the period currently in force plus
// append-only payment, renewal and balance logs.
type GymBill struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID       string             `bson:"member_id" json:"memberId"`
	Profile        Profile            `bson:"profile" json:"profile"`
	Active         ActivePeriod       `bson:"active" json:"active"`
	Status         string             `bson:"status" json:"status"`
	PaymentHistory []PaymentEntry     `bson:"payment_history" json:"paymentHistory"`
	RenewalHistory []RenewalEntry     `bson:"renewal_history" json:"renewalHistory"`
	BalanceHistory []BalanceEntry     `bson:"balance_history" json:"balanceHistory"`
	ProfilePicture *ProfilePicture    `bson:"profile_picture,omitempty" json:"-"`
	HasPicture     bool               `bson:"has_picture" json:"hasProfilePicture"`
	Version        int64              `bson:"version" json:"version"`
	CreatedBy      *User              `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy      *User              `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Profile holds the client's descriptive fields. None of them carry invariants.
type Profile struct {
	Client              string `bson:"client" json:"client"`
	ContactNumber       string `bson:"contact_number" json:"contactNumber"`
	AlternateContact    string `bson:"alternate_contact,omitempty" json:"alternateContact,omitempty"`
	Email               string `bson:"email,omitempty" json:"email,omitempty"`
	ClientSource        string `bson:"client_source,omitempty" json:"clientSource,omitempty"`
	Gender              string `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth         string `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Anniversary         string `bson:"anniversary,omitempty" json:"anniversary,omitempty"`
	Profession          string `bson:"profession,omitempty" json:"profession,omitempty"`
	TaxID               string `bson:"tax_id,omitempty" json:"taxId,omitempty"`
	WorkoutHours        string `bson:"workout_hours,omitempty" json:"workoutHours,omitempty"`
	AreaAddress         string `bson:"area_address,omitempty" json:"areaAddress,omitempty"`
	ClientRep           string `bson:"client_rep,omitempty" json:"clientRep,omitempty"`
	PaymentMethodDetail string `bson:"payment_method_detail,omitempty" json:"paymentMethodDetail,omitempty"`
	InitialPaymentMode  string `bson:"initial_payment_mode,omitempty" json:"initialPaymentMode,omitempty"`
	FollowupDate        string `bson:"followup_date,omitempty" json:"followupDate,omitempty"`
}

// ActivePeriod is the billing cycle currently in force.
type ActivePeriod struct {
	Package          string  `bson:"package" json:"package"`
	Sessions         int     `bson:"sessions,omitempty" json:"sessions,omitempty"`
	JoiningDate      string  `bson:"joining_date" json:"joiningDate"`
	EndDate          string  `bson:"end_date" json:"endDate"`
	Price            Decimal `bson:"price" json:"price"`
	AdmissionCharges Decimal `bson:"admission_charges" json:"admissionCharges"`
	DiscountPercent  Decimal `bson:"discount_percent,omitempty" json:"discountPercent"`
	DiscountAmount   Decimal `bson:"discount_amount" json:"discountAmount"`
	TaxPercent       Decimal `bson:"tax_percent,omitempty" json:"taxPercent"`
	Tax              Decimal `bson:"tax" json:"tax"`
	AmountPayable    Decimal `bson:"amount_payable" json:"amountPayable"`
	AmountPaid       Decimal `bson:"amount_paid" json:"amountPaid"`
	Balance          Decimal `bson:"balance" json:"balance"`
	PaymentMode      string  `bson:"payment_mode,omitempty" json:"paymentMode,omitempty"`
	Trainer          string  `bson:"trainer,omitempty" json:"trainer,omitempty"`
	Remarks          string  `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// PaymentEntry records the incremental amount paid at one event, never a running total.
type PaymentEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ReceiptNo uint64             `bson:"receipt_no,omitempty" json:"receiptNo,omitempty"`
	Amount    Decimal            `bson:"amount" json:"amount"`
	Mode      string             `bson:"mode,omitempty" json:"mode,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
}

// RenewalEntry is a snapshot of a previously active period.
type RenewalEntry struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	JoiningDate      string             `bson:"joining_date" json:"joiningDate"`
	EndDate          string             `bson:"end_date" json:"endDate"`
	Package          string             `bson:"package" json:"package"`
	Price            Decimal            `bson:"price" json:"price"`
	AdmissionCharges Decimal            `bson:"admission_charges" json:"admissionCharges"`
	DiscountAmount   Decimal            `bson:"discount_amount" json:"discountAmount"`
	Tax              Decimal            `bson:"tax" json:"tax"`
	AmountPaid       Decimal            `bson:"amount_paid" json:"amountPaid"`
	Balance          Decimal            `bson:"balance" json:"balance"`
	Remarks          string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Trainer          string             `bson:"trainer,omitempty" json:"trainer,omitempty"`
	ModeOfPayment    string             `bson:"mode_of_payment,omitempty" json:"modeOfPayment,omitempty"`
	Date             time.Time          `bson:"date" json:"date"`
}

type BalanceEntry struct {
	PreviousBalance Decimal   `bson:"previous_balance" json:"previousBalance"`
	NewBalance      Decimal   `bson:"new_balance" json:"newBalance"`
	Change          Decimal   `bson:"change" json:"change"`
	Reason          string    `bson:"reason" json:"reason"`
	Date            time.Time `bson:"date" json:"date"`
}

// ProfilePicture is stored inline as binary content with its declared MIME type.
type ProfilePicture struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"content_type"`
}

// TotalPaidIncludingRenewals sums the active period's paid amount with every
// renewal snapshot's paid amount. The intake snapshot is one of those
// renewals, so until the first renewal the intake payment is counted twice.
func (b *GymBill) TotalPaidIncludingRenewals() Decimal {
	total := b.Active.AmountPaid.Decimal()
	for _, r := range b.RenewalHistory {
		total = total.Add(r.AmountPaid.Decimal())
	}
	return NewDecimal(total)
}
