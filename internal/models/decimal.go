package models

import (
	"fmt"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Decimal is an exact amount or percentage. It is stored as BSON Decimal128
// and rendered as a plain JSON number.
type Decimal struct {
	d decimal.Decimal
}

func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d: d}
}

// MustDecimal parses s and panics on malformed input. Meant for literals.
func MustDecimal(s string) Decimal {
	return Decimal{d: decimal.RequireFromString(s)}
}

func (m Decimal) Decimal() decimal.Decimal {
	return m.d
}

func (m Decimal) IsZero() bool {
	return m.d.IsZero()
}

// Float64 is for metrics and log fields only.
func (m Decimal) Float64() float64 {
	return m.d.InexactFloat64()
}

func (m Decimal) String() string {
	return m.d.String()
}

func (m Decimal) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

func (m *Decimal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return m.d.UnmarshalJSON(b)
}

func (m Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := helper.DecimalToDecimal128(m.d)
	if err != nil {
		return 0, nil, err
	}
	return bsontype.Decimal128, bsoncore.AppendDecimal128(nil, d128), nil
}

// UnmarshalBSONValue also accepts numeric types other than Decimal128, so
// documents written by other tools still load.
func (m *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Decimal128:
		d, err := helper.DecimalFromDecimal128(v.Decimal128())
		if err != nil {
			return err
		}
		m.d = d
	case bsontype.Double:
		m.d = decimal.NewFromFloat(v.Double())
	case bsontype.Int32:
		m.d = decimal.NewFromInt32(v.Int32())
	case bsontype.Int64:
		m.d = decimal.NewFromInt(v.Int64())
	case bsontype.Null, bsontype.Undefined:
		m.d = decimal.Zero
	default:
		return fmt.Errorf("cannot decode BSON %s into Decimal", t)
	}
	return nil
}
