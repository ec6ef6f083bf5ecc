package repository

import (
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ------------------- UpdateOptions -------------------

// UpdateOptions is an exported struct that holds the fields for a MongoDB update operation.
// It is used with the Functional Options pattern.
type UpdateOptions struct {
	SetFields  bson.M
	IncFields  bson.M
	PushFields bson.M
}

// NewUpdateOptions creates a new instance of UpdateOptions.
func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{
		SetFields:  bson.M{},
		IncFields:  bson.M{},
		PushFields: bson.M{},
	}
}

// UpdateOption defines a function that can modify the UpdateOptions.
type UpdateOption func(*UpdateOptions)

// WithStatus is an option to update the bill's status field.
func WithStatus(status string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldStatus] = status
	}
}

// WithProfile replaces the whole profile sub-document.
func WithProfile(p models.Profile) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldBillProfile] = p
	}
}

// WithActivePeriod replaces the active billing period.
func WithActivePeriod(p models.ActivePeriod) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldBillActive] = p
	}
}

// WithActiveField sets a single field of the active period, e.g. "amount_paid".
func WithActiveField(name string, value interface{}) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldBillActive+"."+name] = value
	}
}

// WithProfilePicture stores a new profile picture and flags its presence.
func WithProfilePicture(pic *models.ProfilePicture) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldBillPicture] = pic
		o.SetFields[fields.FieldBillHasPicture] = pic != nil
	}
}

// WithPushPayment appends an entry to the payment history.
func WithPushPayment(e models.PaymentEntry) UpdateOption {
	return func(o *UpdateOptions) {
		o.PushFields[fields.FieldBillPaymentHistory] = e
	}
}

// WithPushRenewal appends a snapshot to the renewal history.
func WithPushRenewal(e models.RenewalEntry) UpdateOption {
	return func(o *UpdateOptions) {
		o.PushFields[fields.FieldBillRenewalHistory] = e
	}
}

// WithPushBalance appends an entry to the balance history.
func WithPushBalance(e models.BalanceEntry) UpdateOption {
	return func(o *UpdateOptions) {
		o.PushFields[fields.FieldBillBalanceHistory] = e
	}
}

// WithUpdatedBy is an option to update the bill's updated_by field.
func WithUpdatedBy(user *models.User) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUpdatedBy] = user
	}
}

// WithUpdatedAt is an option to update the updated_at field.
func WithUpdatedAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUpdatedAt] = t
	}
}
