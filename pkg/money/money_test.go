package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"INR", false},
		{"USD", false},
		{"EUR", false},
		{"inr", true},
		{"IN", true},
		{"INRR", true},
		{"IN1", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			cur, err := money.NewCurrency(tc.code)
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, cur.IsZero())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.code, cur.Code())
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	m, err := money.FromMinorUnits(29900, "INR")
	require.NoError(t, err)

	assert.Equal(t, int64(29900), m.MinorUnits())
	assert.Equal(t, "INR", m.Currency().Code())
	assert.True(t, m.IsPositive())
	assert.False(t, m.IsZero())

	_, err = money.FromMinorUnits(100, "rupee")
	assert.Error(t, err)
}

func TestMoney_ZeroAndNegative(t *testing.T) {
	zero := money.New(0, money.INR)
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())

	neg := money.New(-500, money.INR)
	assert.False(t, neg.IsZero())
	assert.False(t, neg.IsPositive())
}

func TestMoney_Equal(t *testing.T) {
	a := money.New(1000, money.INR)
	b := money.New(1000, money.INR)
	c := money.New(1000, money.USD)
	d := money.New(999, money.INR)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestMoney_Decimal(t *testing.T) {
	m := money.New(29900, money.INR)
	assert.True(t, m.Decimal().Equal(decimal.NewFromFloat(299.00)))

	odd := money.New(299, money.INR)
	assert.True(t, odd.Decimal().Equal(decimal.NewFromFloat(2.99)))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "299.00 INR", money.New(29900, money.INR).String())
	assert.Equal(t, "0.05 USD", money.New(5, money.USD).String())
	assert.Equal(t, "-12.50 EUR", money.New(-1250, money.EUR).String())
}
