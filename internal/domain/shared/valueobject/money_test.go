package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromMinorUnits(t *testing.T) {
	t.Run("creates money with explicit currency", func(t *testing.T) {
		m := NewFromMinorUnits(12345, EUR)
		assert.Equal(t, int64(12345), m.MinorUnits())
		assert.Equal(t, EUR, m.Currency())
	})

	t.Run("empty currency defaults to USD", func(t *testing.T) {
		m := NewFromMinorUnits(100, "")
		assert.Equal(t, USD, m.Currency())
	})
}

func TestNewFromMajorString(t *testing.T) {
	t.Run("converts whole-cent amounts", func(t *testing.T) {
		m, err := NewFromMajorString("123.45", USD)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), m.MinorUnits())
	})

	t.Run("accepts integer amounts", func(t *testing.T) {
		m, err := NewFromMajorString("42", USD)
		require.NoError(t, err)
		assert.Equal(t, int64(4200), m.MinorUnits())
	})

	t.Run("rejects sub-cent precision instead of rounding", func(t *testing.T) {
		_, err := NewFromMajorString("10.999", USD)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sub-cent")
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := NewFromMajorString("ten dollars", USD)
		assert.Error(t, err)
	})
}

func TestMoney_Major(t *testing.T) {
	m := NewFromMinorUnits(1099, USD)
	assert.Equal(t, "10.99", m.Major().StringFixed(2))
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same-currency amounts", func(t *testing.T) {
		a := NewFromMinorUnits(100, USD)
		b := NewFromMinorUnits(250, USD)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(350), sum.MinorUnits())
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewFromMinorUnits(100, USD)
		b := NewFromMinorUnits(100, EUR)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_Display(t *testing.T) {
	tests := []struct {
		name       string
		minorUnits int64
		currency   Currency
		want       string
	}{
		{"zero", 0, USD, "$0.00"},
		{"whole cents", 5, USD, "$0.05"},
		{"small amount", 12345, USD, "$123.45"},
		{"thousands grouping", 123456, USD, "$1,234.56"},
		{"millions grouping", 123456789, USD, "$1,234,567.89"},
		{"negative amount", -12345, USD, "-$123.45"},
		{"euro symbol", 12345, EUR, "€123.45"},
		{"pound symbol", 12345, GBP, "£123.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinorUnits(tt.minorUnits, tt.currency))
		})
	}
}
