package helper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRoundMoney(t *testing.T) {
	cases := map[string]string{
		"10.125": "10.13",
		"1.005":  "1.01",
		"-1.125": "-1.13",
		"800":    "800",
		"0.3":    "0.3",
		"2.0049": "2",
	}
	for in, want := range cases {
		assert.Equal(t, want, RoundMoney(dec(in)).String(), "input %s", in)
	}
	assert.Equal(t, "0.3", RoundMoney(dec("0.1").Add(dec("0.2"))).String())
}

func TestMoneyEqual(t *testing.T) {
	assert.True(t, MoneyEqual(dec("100"), dec("100.01")))
	assert.True(t, MoneyEqual(dec("100.01"), dec("100")))
	assert.False(t, MoneyEqual(dec("100"), dec("100.02")))
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"":        "0",
		"  ":      "0",
		"1000":    "1000",
		" 250.5 ": "250.5",
		"-20":     "-20",
		"abc":     "0",
		"12abc":   "0",
		"NaN":     "0",
		"Inf":     "0",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseAmount(in).String(), "input %q", in)
	}
}

func TestDecimal128RoundTrip(t *testing.T) {
	d128, err := DecimalToDecimal128(dec("1234.56"))
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d128.String())

	back, err := DecimalFromDecimal128(d128)
	require.NoError(t, err)
	assert.True(t, back.Equal(dec("1234.56")))

	nan, err := primitive.ParseDecimal128("NaN")
	require.NoError(t, err)
	_, err = DecimalFromDecimal128(nan)
	assert.Error(t, err)
}
