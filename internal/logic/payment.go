package logic

import (
	"fmt"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/constants"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// paymentNoteBillEdit marks entries booked by a bill edit that changed the paid total.
const paymentNoteBillEdit = "paid total edited"

// paymentPlan is everything a payment writes, computed before touching storage.
type paymentPlan struct {
	Entry      models.PaymentEntry
	NewTotal   decimal.Decimal
	NewBalance decimal.Decimal
	Balance    models.BalanceEntry
}

// planPayment derives the increment from the new running total. A negative
// increment is a correction and is kept as is. The balance is always
// recomputed; a claimed balance that disagrees by more than a cent is rejected.
func planPayment(active models.ActivePeriod, newTotal decimal.Decimal, claimed *decimal.Decimal, mode, note string, receiptNo uint64, strategy BalanceStrategy, now time.Time) (*paymentPlan, error) {
	newTotal = helper.RoundMoney(newTotal)
	delta := helper.RoundMoney(newTotal.Sub(active.AmountPaid.Decimal()))
	balance := periodBalance(active, newTotal, strategy)

	if claimed != nil && !helper.MoneyEqual(*claimed, balance) {
		return nil, fmt.Errorf("%w: balance %s does not match computed balance %s",
			ErrInvalidInput, claimed.StringFixed(2), balance.StringFixed(2))
	}

	return &paymentPlan{
		Entry:      newPaymentEntry(delta, receiptNo, mode, note, now),
		NewTotal:   newTotal,
		NewBalance: balance,
		Balance:    balanceChange(active.Balance.Decimal(), balance, constants.BalanceReasonPayment, now),
	}, nil
}

func newPaymentEntry(amount decimal.Decimal, receiptNo uint64, mode, note string, at time.Time) models.PaymentEntry {
	return models.PaymentEntry{
		ID:        primitive.NewObjectID(),
		ReceiptNo: receiptNo,
		Amount:    models.NewDecimal(amount),
		Mode:      mode,
		Note:      note,
		Date:      at,
	}
}
