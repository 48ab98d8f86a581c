// Package valueobject holds immutable value objects shared across domains.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = USD

// minorUnitsPerMajor is the number of minor units in one major unit
// for all supported currencies (two-decimal currencies only).
const minorUnitsPerMajor = 100

// Money is a value object representing a monetary amount persisted as
// integer minor units (cents). It is immutable - all operations return
// new Money instances. Keeping amounts integral is what makes dashboard
// aggregation numerically exact.
type Money struct {
	minorUnits int64
	currency   Currency
}

// NewFromMinorUnits creates Money from an integer minor-unit amount
func NewFromMinorUnits(minorUnits int64, currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{minorUnits: minorUnits, currency: currency}
}

// NewFromMajorString creates Money from a decimal major-unit string
// such as "123.45". Amounts with more than two decimal places are
// rejected rather than rounded.
func NewFromMajorString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	minor := d.Mul(decimal.NewFromInt(minorUnitsPerMajor))
	if !minor.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has sub-cent precision", amount)
	}
	return NewFromMinorUnits(minor.IntPart(), currency), nil
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return NewFromMinorUnits(0, currency)
}

// MinorUnits returns the amount in integer minor units
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// Major returns the amount in major units as an exact decimal
func (m Money) Major() decimal.Decimal {
	return decimal.New(m.minorUnits, -2)
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.minorUnits < 0
}

// Add returns a new Money with the sum of both amounts.
// Returns error if currencies don't match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.Currency(), other.Currency())
	}
	return NewFromMinorUnits(m.minorUnits+other.minorUnits, m.Currency()), nil
}

// AddMinorUnits returns a new Money with the given minor units added
func (m Money) AddMinorUnits(minorUnits int64) Money {
	return NewFromMinorUnits(m.minorUnits+minorUnits, m.Currency())
}

// Equals returns true if both Money values are equal
func (m Money) Equals(other Money) bool {
	return m.Currency() == other.Currency() && m.minorUnits == other.minorUnits
}

// Display renders the amount as a display-formatted currency string,
// e.g. 12345 minor units -> "$123.45", 0 -> "$0.00", grouped as
// "$1,234.56" for larger amounts. This is the single source of truth
// for currency rendering; nothing else in the codebase formats money.
func (m Money) Display() string {
	return FormatMinorUnits(m.minorUnits, m.Currency())
}

// String implements fmt.Stringer
func (m Money) String() string {
	return m.Display()
}

// FormatMinorUnits formats an integer minor-unit amount for display
func FormatMinorUnits(minorUnits int64, currency Currency) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	major := minorUnits / minorUnitsPerMajor
	cents := minorUnits % minorUnitsPerMajor
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol(currency), groupThousands(major), cents)
}

// symbol returns the display symbol for a currency
func symbol(currency Currency) string {
	switch currency {
	case EUR:
		return "€"
	case GBP:
		return "£"
	default:
		return "$"
	}
}

// groupThousands renders n with comma thousands separators
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
