// Package money provides the decimal value types used by the reimbursement
// domain: Money for currency amounts and Percent for coverage fractions.
// All currency arithmetic is exact decimal with a fixed scale of two and
// half-up rounding on the midpoint.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount. The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// FromDecimal wraps a decimal as a Money amount without rounding. The scale
// of the input is preserved; rounding happens on arithmetic and rendering.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// FromString parses a decimal string such as "150.00".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustFromString is FromString for compile-time constants; it panics on
// malformed input.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Mul multiplies the amount by a fraction and rounds the result to two
// decimal places, half-up (0.005 rounds to 0.01).
func (m Money) Mul(p Percent) Money {
	return Money{d: m.d.Mul(p.d).Round(2)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// GreaterThan reports whether m is strictly greater than o.
func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

// Equal reports numeric equality regardless of scale.
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if b.d.LessThan(a.d) {
		return b
	}
	return a
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string { return m.d.StringFixed(2) }

// MarshalJSON emits the amount as a bare fixed-point number, e.g. 140.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse money %q: %w", s, err)
	}
	m.d = d
	return nil
}

// Percent is a coverage fraction, valid in [0, 1]. Range enforcement is the
// caller's concern; the type only carries the value.
type Percent struct {
	d decimal.Decimal
}

// PercentFromDecimal wraps a decimal as a Percent.
func PercentFromDecimal(d decimal.Decimal) Percent {
	return Percent{d: d}
}

// PercentFromString parses a decimal string such as "0.50".
func PercentFromString(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return Percent{d: d}, nil
}

// MustPercentFromString panics on malformed input; for fixed plan rates.
func MustPercentFromString(s string) Percent {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Errorf("parse percent %q: %w", s, err))
	}
	return Percent{d: d}
}

// Decimal returns the underlying decimal value.
func (p Percent) Decimal() decimal.Decimal { return p.d }

// InRange reports whether the fraction lies within [0, 1].
func (p Percent) InRange() bool {
	return !p.d.IsNegative() && p.d.LessThanOrEqual(decimal.New(1, 0))
}

// String renders the fraction with two decimal places, e.g. "0.50".
func (p Percent) String() string { return p.d.StringFixed(2) }

// MarshalJSON emits the fraction as a bare fixed-point number, e.g. 0.70.
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (p *Percent) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse percent %q: %w", s, err)
	}
	p.d = d
	return nil
}
