package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), NGN)
		require.NoError(t, err)
		assert.Equal(t, NGN, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", NGN)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", NGN)
		assert.Error(t, err)
	})
}

func TestNewMoneyNGN(t *testing.T) {
	m := NewMoneyNGN(decimal.NewFromFloat(50.00))
	assert.Equal(t, NGN, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestMinorUnits(t *testing.T) {
	t.Run("converts major to minor units", func(t *testing.T) {
		m, err := NewMoneyNGNFromString("19.99")
		require.NoError(t, err)
		assert.Equal(t, int64(1999), m.MinorUnits())
	})

	t.Run("whole amounts", func(t *testing.T) {
		m, err := NewMoneyNGNFromString("15")
		require.NoError(t, err)
		assert.Equal(t, int64(1500), m.MinorUnits())
	})

	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ZeroNGN().MinorUnits())
	})
}

func TestFromMinorUnits(t *testing.T) {
	m := FromMinorUnits(1999, NGN)
	expected, err := NewMoneyNGNFromString("19.99")
	require.NoError(t, err)
	assert.True(t, m.Equals(expected))

	// Round trip stays exact - no float drift.
	assert.Equal(t, int64(1999), m.MinorUnits())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyNGN(decimal.NewFromFloat(10.25))
		b := NewMoneyNGN(decimal.NewFromFloat(5.75))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(16.00)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyNGN(decimal.NewFromInt(10))
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyNGN(decimal.NewFromFloat(10.00))
	b := NewMoneyNGN(decimal.NewFromFloat(2.50))
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(7.50)))
}

func TestMoneyMultiplyByInt(t *testing.T) {
	m := NewMoneyNGN(decimal.NewFromFloat(19.99))
	total := m.MultiplyByInt(3)
	assert.True(t, total.Amount().Equal(decimal.NewFromFloat(59.97)))
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyNGN(decimal.NewFromInt(5))
	big := NewMoneyNGN(decimal.NewFromInt(10))

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, small.IsPositive())
	assert.False(t, small.IsNegative())
	assert.True(t, ZeroNGN().IsZero())
}

func TestMoneyJSON(t *testing.T) {
	m, err := NewMoneyNGNFromString("19.99")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"19.99","currency":"NGN"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(m))
}

func TestMoneyScanValue(t *testing.T) {
	t.Run("value renders the amount", func(t *testing.T) {
		m, _ := NewMoneyNGNFromString("42.10")
		v, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, "42.1", v)
	})

	t.Run("scan string", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("19.99"))
		assert.Equal(t, NGN, m.Currency())
		assert.Equal(t, int64(1999), m.MinorUnits())
	})

	t.Run("scan nil", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("scan unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}

func TestApplyDiscount(t *testing.T) {
	m := NewMoneyNGN(decimal.NewFromInt(200))
	discounted := m.ApplyDiscount(decimal.NewFromInt(25))
	assert.True(t, discounted.Amount().Equal(decimal.NewFromInt(150)))
}
