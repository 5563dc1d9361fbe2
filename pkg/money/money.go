package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level
// variable initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

// String returns the currency code.
func (c Currency) String() string { return c.code }

// IsZero returns true if the currency is uninitialized.
func (c Currency) IsZero() bool { return c.code == "" }

// Common currencies.
var (
	INR = MustCurrency("INR")
	USD = MustCurrency("USD")
	EUR = MustCurrency("EUR")
)

// Money is an immutable monetary amount held in integer minor units
// (paise, cents) with its currency. The gateway wire format is minor
// units, so integer arithmetic is exact end to end; decimal conversion
// is provided for display only.
type Money struct {
	minorUnits int64
	currency   Currency
}

// FromMinorUnits creates a Money value from an amount in minor units and a
// currency code.
func FromMinorUnits(minorUnits int64, currency string) (Money, error) {
	cur, err := NewCurrency(currency)
	if err != nil {
		return Money{}, fmt.Errorf("invalid currency: %w", err)
	}
	return Money{minorUnits: minorUnits, currency: cur}, nil
}

// New creates a Money value from minor units and an already-validated Currency.
func New(minorUnits int64, currency Currency) Money {
	return Money{minorUnits: minorUnits, currency: currency}
}

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 { return m.minorUnits }

// Currency returns the currency.
func (m Money) Currency() Currency { return m.currency }

// IsPositive returns true if the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.minorUnits > 0 }

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.minorUnits == 0 }

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.minorUnits == other.minorUnits
}

// Decimal returns the amount in major units as a decimal, assuming the usual
// two-digit minor unit exponent.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minorUnits, -2)
}

// String formats the Money value as "<amount> <currency>", for example "299.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(2), m.currency.Code())
}
