package decimal

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	type TC struct {
		name     string
		digits   int
		value    int64
		str      string
		fraction string
	}

	tcs := []TC{
		{name: "0", digits: 2, value: 0, str: "0.00", fraction: "00"},
		{name: "1/256", digits: 2, value: 0, str: "0.00", fraction: "00"},
		{name: "3/256", digits: 2, value: 1, str: "0.01", fraction: "01"},
		{name: "1/8", digits: 2, value: 12, str: "0.12", fraction: "12"},
		{name: "3/8", digits: 2, value: 38, str: "0.38", fraction: "38"},
		{name: "5/8", digits: 2, value: 62, str: "0.62", fraction: "62"},
		{name: "1/2", digits: 2, value: 50, str: "0.50", fraction: "50"},
		{name: "255/256", digits: 2, value: 100, str: "1.00", fraction: "00"},
		{name: "255/256", digits: 3, value: 996, str: "0.996", fraction: "996"},
		{name: "1/2", digits: 0, value: 0, str: "0", fraction: ""},
		{name: "3/2", digits: 0, value: 2, str: "2", fraction: ""},
		{name: "23/8", digits: 1, value: 29, str: "2.9", fraction: "9"},
		{name: "-1/8", digits: 2, value: -12, str: "-0.12", fraction: "12"},
		{name: "-3/8", digits: 2, value: -38, str: "-0.38", fraction: "38"},
		{name: "-255/256", digits: 2, value: -100, str: "-1.00", fraction: "00"},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s/%d", i, tc.name, tc.digits), func(t *testing.T) {
			r, ok := new(big.Rat).SetString(tc.name)
			require.True(t, ok)

			b, err := Round(r, tc.digits)
			require.NoError(t, err)

			require.Equal(t, tc.value, b.Value.Int64())
			require.Equal(t, -tc.digits, b.Scale)
			require.Equal(t, tc.digits, b.Digits())
			require.Equal(t, tc.str, b.String())
			require.Equal(t, tc.fraction, b.Fraction())
		})
	}
}

func TestRoundNegativeDigits(t *testing.T) {
	_, err := Round(big.NewRat(1, 2), -1)
	require.Error(t, err)
	require.True(t, Error.Has(err))
}

func TestBlockRat(t *testing.T) {
	b := Block{Value: big.NewInt(123), Scale: -2}
	require.Zero(t, big.NewRat(123, 100).Cmp(b.Rat()))

	b = Block{Value: big.NewInt(12), Scale: 3}
	require.Zero(t, big.NewRat(12000, 1).Cmp(b.Rat()))
	require.Equal(t, "12000", b.String())

	b = Block{}
	require.Zero(t, new(big.Rat).Cmp(b.Rat()))
	require.Equal(t, "0", b.String())
}
