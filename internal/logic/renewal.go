package logic

import (
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// snapshotPeriod copies an active period into a renewal history entry.
func snapshotPeriod(p models.ActivePeriod, at time.Time) models.RenewalEntry {
	return models.RenewalEntry{
		ID:               primitive.NewObjectID(),
		JoiningDate:      p.JoiningDate,
		EndDate:          p.EndDate,
		Package:          p.Package,
		Price:            p.Price,
		AdmissionCharges: p.AdmissionCharges,
		DiscountAmount:   p.DiscountAmount,
		Tax:              p.Tax,
		AmountPaid:       p.AmountPaid,
		Balance:          p.Balance,
		Remarks:          p.Remarks,
		Trainer:          p.Trainer,
		ModeOfPayment:    p.PaymentMode,
		Date:             at,
	}
}

// buildPeriod turns raw period input into an active period with computed amounts.
func buildPeriod(f *dto.PeriodFields, paymentMode string, strategy BalanceStrategy) models.ActivePeriod {
	in := BillingInput{
		Price:            helper.RoundMoney(f.Price.Decimal()),
		AdmissionCharges: helper.RoundMoney(f.AdmissionCharges.Decimal()),
		DiscountPercent:  f.DiscountPercent.Decimal(),
		DiscountAmount:   helper.RoundMoney(f.DiscountAmount.Decimal()),
		TaxPercent:       f.TaxPercent.Decimal(),
		AmountPaid:       helper.RoundMoney(f.AmountPaid.Decimal()),
	}
	res := ComputeBilling(in, strategy)

	return models.ActivePeriod{
		Package:          f.Package,
		Sessions:         f.Sessions.Int(),
		JoiningDate:      f.JoiningDate,
		EndDate:          f.EndDate,
		Price:            models.NewDecimal(in.Price),
		AdmissionCharges: models.NewDecimal(in.AdmissionCharges),
		DiscountPercent:  models.NewDecimal(in.DiscountPercent),
		DiscountAmount:   models.NewDecimal(res.DiscountAmount),
		TaxPercent:       models.NewDecimal(in.TaxPercent),
		Tax:              models.NewDecimal(res.TaxAmount),
		AmountPayable:    models.NewDecimal(res.AmountPayable),
		AmountPaid:       models.NewDecimal(in.AmountPaid),
		Balance:          models.NewDecimal(res.Balance),
		PaymentMode:      paymentMode,
		Trainer:          f.Trainer,
		Remarks:          f.Remarks,
	}
}

// editedRenewal builds the replacement for existing. The id and timestamp are
// kept; a missing balance is derived from the other amounts.
func editedRenewal(req *dto.EditRenewalRequest, existing models.RenewalEntry, strategy BalanceStrategy) models.RenewalEntry {
	price := helper.RoundMoney(req.Price.Decimal())
	admission := helper.RoundMoney(req.AdmissionCharges.Decimal())
	discount := helper.RoundMoney(req.DiscountAmount.Decimal())
	tax := helper.RoundMoney(req.Tax.Decimal())
	paid := helper.RoundMoney(req.AmountPaid.Decimal())

	payable := price.Sub(discount).Add(admission).Add(tax)
	balance := balanceOf(price, admission, discount, payable, paid, strategy)
	if req.Balance != nil {
		balance = helper.RoundMoney(req.Balance.Decimal())
	}

	return models.RenewalEntry{
		ID:               existing.ID,
		JoiningDate:      req.JoiningDate,
		EndDate:          req.EndDate,
		Package:          req.Package,
		Price:            models.NewDecimal(price),
		AdmissionCharges: models.NewDecimal(admission),
		DiscountAmount:   models.NewDecimal(discount),
		Tax:              models.NewDecimal(tax),
		AmountPaid:       models.NewDecimal(paid),
		Balance:          models.NewDecimal(balance),
		Remarks:          req.Remarks,
		Trainer:          req.Trainer,
		ModeOfPayment:    req.ModeOfPayment,
		Date:             existing.Date,
	}
}

func findRenewal(bill *models.GymBill, id primitive.ObjectID) (*models.RenewalEntry, bool) {
	for i := range bill.RenewalHistory {
		if bill.RenewalHistory[i].ID == id {
			return &bill.RenewalHistory[i], true
		}
	}
	return nil, false
}

func balanceChange(previous, next decimal.Decimal, reason string, at time.Time) models.BalanceEntry {
	return models.BalanceEntry{
		PreviousBalance: models.NewDecimal(previous),
		NewBalance:      models.NewDecimal(next),
		Change:          models.NewDecimal(helper.RoundMoney(next.Sub(previous))),
		Reason:          reason,
		Date:            at,
	}
}
