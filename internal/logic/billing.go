package logic

import (
	"fmt"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"github.com/shopspring/decimal"
)

// BalanceStrategy selects how the outstanding balance is derived.
type BalanceStrategy string

const (
	// BalanceStrategyIntake ignores tax: price + admission - discount - paid.
	BalanceStrategyIntake BalanceStrategy = "intake"
	// BalanceStrategyPayable includes tax: amountPayable - paid.
	BalanceStrategyPayable BalanceStrategy = "payable"
)

func ParseBalanceStrategy(s string) (BalanceStrategy, error) {
	switch BalanceStrategy(s) {
	case "", BalanceStrategyIntake:
		return BalanceStrategyIntake, nil
	case BalanceStrategyPayable:
		return BalanceStrategyPayable, nil
	}
	return "", fmt.Errorf("unknown balance strategy %q", s)
}

// BillingInput holds the raw amounts. A non-zero DiscountPercent wins over
// DiscountAmount; a zero TaxPercent means no tax.
type BillingInput struct {
	Price            decimal.Decimal
	AdmissionCharges decimal.Decimal
	DiscountPercent  decimal.Decimal
	DiscountAmount   decimal.Decimal
	TaxPercent       decimal.Decimal
	AmountPaid       decimal.Decimal
}

type BillingResult struct {
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	AmountPayable  decimal.Decimal
	Balance        decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeBilling never fails; callers coerce bad input to zero before calling.
func ComputeBilling(in BillingInput, strategy BalanceStrategy) BillingResult {
	discount := in.DiscountAmount
	if !in.DiscountPercent.IsZero() {
		discount = in.Price.Mul(in.DiscountPercent).Div(hundred)
	}
	discount = helper.RoundMoney(discount)

	taxable := in.Price.Sub(discount).Add(in.AdmissionCharges)
	tax := decimal.Zero
	if !in.TaxPercent.IsZero() {
		tax = helper.RoundMoney(taxable.Mul(in.TaxPercent).Div(hundred))
	}
	payable := helper.RoundMoney(taxable.Add(tax))

	return BillingResult{
		DiscountAmount: discount,
		TaxAmount:      tax,
		AmountPayable:  payable,
		Balance:        balanceOf(in.Price, in.AdmissionCharges, discount, payable, in.AmountPaid, strategy),
	}
}

// billingInputOf reads the calculator inputs back from a stored period.
func billingInputOf(p models.ActivePeriod) BillingInput {
	return BillingInput{
		Price:            p.Price.Decimal(),
		AdmissionCharges: p.AdmissionCharges.Decimal(),
		DiscountPercent:  p.DiscountPercent.Decimal(),
		DiscountAmount:   p.DiscountAmount.Decimal(),
		TaxPercent:       p.TaxPercent.Decimal(),
		AmountPaid:       p.AmountPaid.Decimal(),
	}
}

// periodBalance recomputes the balance of a stored period for a new paid total.
func periodBalance(p models.ActivePeriod, paid decimal.Decimal, strategy BalanceStrategy) decimal.Decimal {
	return balanceOf(p.Price.Decimal(), p.AdmissionCharges.Decimal(), p.DiscountAmount.Decimal(), p.AmountPayable.Decimal(), paid, strategy)
}

func balanceOf(price, admission, discount, payable, paid decimal.Decimal, strategy BalanceStrategy) decimal.Decimal {
	if strategy == BalanceStrategyPayable {
		return helper.RoundMoney(payable.Sub(paid))
	}
	return helper.RoundMoney(price.Add(admission).Sub(discount).Sub(paid))
}
