package dto

import (
	"bytes"
	"encoding/json"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"

	"github.com/shopspring/decimal"
)

// Amount is a number that also accepts its string form, since multipart
// forms and some clients send "1000" instead of 1000. Anything that is not
// a number decodes as 0. Numbers are decoded exactly, without a float64 round trip.
type Amount decimal.Decimal

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = Amount(decimal.Zero)
			return nil
		}
		*a = Amount(helper.ParseAmount(s))
		return nil
	}
	*a = Amount(helper.ParseAmount(string(b)))
	return nil
}

// Decimal returns the value, or 0 for a nil pointer.
func (a *Amount) Decimal() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return decimal.Decimal(*a)
}

// Int truncates the value to an int.
func (a *Amount) Int() int {
	return int(a.Decimal().IntPart())
}

// NewAmount is a convenience for building requests in code.
func NewAmount(s string) *Amount {
	v := Amount(helper.ParseAmount(s))
	return &v
}
