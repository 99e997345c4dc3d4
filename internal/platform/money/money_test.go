package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount  string
		percent string
		want    string
	}{
		{"200.00", "0.70", "140.00"},
		{"100.00", "0.333", "33.30"},
		// 0.005 midpoint rounds away from zero
		{"0.01", "0.5", "0.01"},
		{"1.01", "0.5", "0.51"},
		{"33.35", "0.5", "16.68"},
		{"0.00", "1.00", "0.00"},
	}
	for _, tc := range cases {
		got := MustFromString(tc.amount).Mul(MustPercentFromString(tc.percent))
		assert.Equal(t, tc.want, got.String(), "%s * %s", tc.amount, tc.percent)
	}
}

func TestMin(t *testing.T) {
	a := MustFromString("150.00")
	b := MustFromString("300.00")
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Min(b, a).Equal(a))
	assert.True(t, Min(a, a).Equal(a))
}

func TestStringFixedScale(t *testing.T) {
	assert.Equal(t, "150.00", MustFromString("150").String())
	assert.Equal(t, "2000.01", MustFromString("2000.01").String())
	assert.Equal(t, "-1.00", MustFromString("-1").String())
}

func TestJSONRoundTrip(t *testing.T) {
	m := MustFromString("140.5")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "140.50", string(data))

	var back Money
	require.NoError(t, json.Unmarshal([]byte("199.99"), &back))
	assert.True(t, back.Equal(MustFromString("199.99")))

	// quoted strings are accepted too
	require.NoError(t, json.Unmarshal([]byte(`"25.00"`), &back))
	assert.True(t, back.Equal(MustFromString("25")))

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &back))
}

func TestPercentInRange(t *testing.T) {
	assert.True(t, MustPercentFromString("0").InRange())
	assert.True(t, MustPercentFromString("0.5").InRange())
	assert.True(t, MustPercentFromString("1").InRange())
	assert.False(t, MustPercentFromString("1.01").InRange())
	assert.False(t, MustPercentFromString("-0.01").InRange())
}

func TestPercentPreservesScale(t *testing.T) {
	p := MustPercentFromString("0.50")
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "0.50", string(data))
}

func TestComparisons(t *testing.T) {
	limit := MustFromString("2000.00")
	assert.False(t, MustFromString("2000.00").GreaterThan(limit))
	assert.True(t, MustFromString("2000.01").GreaterThan(limit))
	assert.True(t, FromDecimal(decimal.NewFromInt(-1)).IsNegative())
	assert.False(t, Money{}.IsNegative())
}
