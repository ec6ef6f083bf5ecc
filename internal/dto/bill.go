package dto

import (
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeriodFields are the billing inputs shared by intake and renewal.
type PeriodFields struct {
	Package          string  `json:"package"`
	Sessions         *Amount `json:"sessions"`
	JoiningDate      string  `json:"joiningDate"`
	EndDate          string  `json:"endDate"`
	Price            *Amount `json:"price"`
	AdmissionCharges *Amount `json:"admissionCharges"`
	DiscountPercent  *Amount `json:"discountPercent"`
	DiscountAmount   *Amount `json:"discountAmount"`
	TaxPercent       *Amount `json:"taxPercent"`
	AmountPaid       *Amount `json:"amountPaid"`
	Trainer          string  `json:"trainer"`
	Remarks          string  `json:"remarks"`
}

// CreateBillRequest is the intake form. MemberID is optional; when empty one is allocated.
type CreateBillRequest struct {
	MemberID            string `json:"memberId"`
	Client              string `json:"client"`
	ContactNumber       string `json:"contactNumber"`
	AlternateContact    string `json:"alternateContact"`
	Email               string `json:"email"`
	ClientSource        string `json:"clientSource"`
	Gender              string `json:"gender"`
	DateOfBirth         string `json:"dateOfBirth"`
	Anniversary         string `json:"anniversary"`
	Profession          string `json:"profession"`
	TaxID               string `json:"taxId"`
	WorkoutHours        string `json:"workoutHours"`
	AreaAddress         string `json:"areaAddress"`
	ClientRep           string `json:"clientRep"`
	PaymentMethodDetail string `json:"paymentMethodDetail"`
	InitialPaymentMode  string `json:"initialPaymentMode"`
	FollowupDate        string `json:"followupDate"`
	Status              string `json:"status"`
	PeriodFields

	Picture  *models.ProfilePicture `json:"-"`
	Operator *models.User           `json:"-"`
}

// Profile extracts the descriptive fields.
func (r *CreateBillRequest) Profile() models.Profile {
	return models.Profile{
		Client:              r.Client,
		ContactNumber:       r.ContactNumber,
		AlternateContact:    r.AlternateContact,
		Email:               r.Email,
		ClientSource:        r.ClientSource,
		Gender:              r.Gender,
		DateOfBirth:         r.DateOfBirth,
		Anniversary:         r.Anniversary,
		Profession:          r.Profession,
		TaxID:               r.TaxID,
		WorkoutHours:        r.WorkoutHours,
		AreaAddress:         r.AreaAddress,
		ClientRep:           r.ClientRep,
		PaymentMethodDetail: r.PaymentMethodDetail,
		InitialPaymentMode:  r.InitialPaymentMode,
		FollowupDate:        r.FollowupDate,
	}
}

// UpdateBillRequest is a partial patch: nil fields are left untouched.
// Status is the exception and is always re-sanitised.
type UpdateBillRequest struct {
	ID primitive.ObjectID `json:"-"`

	MemberID            *string `json:"memberId"`
	Client              *string `json:"client"`
	ContactNumber       *string `json:"contactNumber"`
	AlternateContact    *string `json:"alternateContact"`
	Email               *string `json:"email"`
	ClientSource        *string `json:"clientSource"`
	Gender              *string `json:"gender"`
	DateOfBirth         *string `json:"dateOfBirth"`
	Anniversary         *string `json:"anniversary"`
	Profession          *string `json:"profession"`
	TaxID               *string `json:"taxId"`
	WorkoutHours        *string `json:"workoutHours"`
	AreaAddress         *string `json:"areaAddress"`
	ClientRep           *string `json:"clientRep"`
	PaymentMethodDetail *string `json:"paymentMethodDetail"`
	InitialPaymentMode  *string `json:"initialPaymentMode"`
	FollowupDate        *string `json:"followupDate"`
	Status              string  `json:"status"`

	Package          *string `json:"package"`
	Sessions         *Amount `json:"sessions"`
	JoiningDate      *string `json:"joiningDate"`
	EndDate          *string `json:"endDate"`
	Price            *Amount `json:"price"`
	AdmissionCharges *Amount `json:"admissionCharges"`
	DiscountPercent  *Amount `json:"discountPercent"`
	DiscountAmount   *Amount `json:"discountAmount"`
	TaxPercent       *Amount `json:"taxPercent"`
	AmountPaid       *Amount `json:"amountPaid"`
	Trainer          *string `json:"trainer"`
	Remarks          *string `json:"remarks"`

	Picture  *models.ProfilePicture `json:"-"`
	Operator *models.User           `json:"-"`
}

// TouchesBilling reports whether any field feeding the calculator is present.
func (r *UpdateBillRequest) TouchesBilling() bool {
	return r.Price != nil || r.AdmissionCharges != nil || r.DiscountPercent != nil ||
		r.DiscountAmount != nil || r.TaxPercent != nil || r.AmountPaid != nil
}

type RenewBillRequest struct {
	ID primitive.ObjectID `json:"-"`
	PeriodFields
	ModeOfPayment string `json:"modeOfPayment"`

	Operator *models.User `json:"-"`
}

// EditRenewalRequest replaces one renewal history entry. Balance, when
// omitted, is derived from the other amounts.
type EditRenewalRequest struct {
	ID        primitive.ObjectID `json:"-"`
	RenewalID primitive.ObjectID `json:"-"`

	JoiningDate      string  `json:"joiningDate"`
	EndDate          string  `json:"endDate"`
	Package          string  `json:"package"`
	Price            *Amount `json:"price"`
	AdmissionCharges *Amount `json:"admissionCharges"`
	DiscountAmount   *Amount `json:"discountAmount"`
	Tax              *Amount `json:"tax"`
	AmountPaid       *Amount `json:"amountPaid"`
	Balance          *Amount `json:"balance"`
	Remarks          string  `json:"remarks"`
	Trainer          string  `json:"trainer"`
	ModeOfPayment    string  `json:"modeOfPayment"`

	Operator *models.User `json:"-"`
}

type DeleteRenewalRequest struct {
	ID        primitive.ObjectID
	RenewalID primitive.ObjectID
	Operator  *models.User
}

// RecordPaymentRequest carries the new running total, not the increment.
type RecordPaymentRequest struct {
	ID primitive.ObjectID `json:"-"`

	AmountPaid   *Amount `json:"amountPaid"`
	Balance      *Amount `json:"balance"`
	Mode         string  `json:"mode"`
	Note         string  `json:"note"`
	FollowUpDate string  `json:"followUpDate"`

	Operator *models.User `json:"-"`
}

type DeleteBillRequest struct {
	ID       primitive.ObjectID
	Operator *models.User
}

// BillView is a bill as returned to clients, with derived totals.
type BillView struct {
	*models.GymBill
	TotalPaidIncludingRenewals models.Decimal `json:"totalPaidIncludingRenewals"`
}

func NewBillView(b *models.GymBill) *BillView {
	return &BillView{GymBill: b, TotalPaidIncludingRenewals: b.TotalPaidIncludingRenewals()}
}

type CreateBillResponse struct {
	Message  string    `json:"message"`
	MemberID string    `json:"memberId"`
	Data     *BillView `json:"data"`
}

type NextMemberIDResponse struct {
	NextMemberID string `json:"nextMemberId"`
}
