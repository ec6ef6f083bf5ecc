package helper

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoneyTolerance is the largest difference at which two amounts are treated as equal.
var MoneyTolerance = decimal.New(1, -2)

// RoundMoney rounds to two decimal places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MoneyEqual reports whether a and b differ by at most MoneyTolerance.
func MoneyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MoneyTolerance)
}

// ParseAmount turns user input into a number. Empty and malformed input
// coerces to 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalFromDecimal128 converts a stored Decimal128. NaN and infinities are rejected.
func DecimalFromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	if d.IsNaN() || d.IsInf() != 0 {
		return decimal.Zero, fmt.Errorf("cannot convert special Decimal128 value %s", d.String())
	}
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse Decimal128 %q: %w", d.String(), err)
	}
	return v, nil
}

// DecimalToDecimal128 converts d for storage.
func DecimalToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert %s to Decimal128: %w", d.String(), err)
	}
	return v, nil
}
