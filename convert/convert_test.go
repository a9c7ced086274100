package convert_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/numtools/numtools/convert"
	"github.com/numtools/numtools/types"
)

func TestToBinary(t *testing.T) {
	testCases := map[uint64]string{
		0:              "0",
		1:              "1",
		2:              "10",
		10:             "1010",
		255:            "11111111",
		1024:           "10000000000",
		math.MaxUint64: "1111111111111111111111111111111111111111111111111111111111111111",
	}

	for n, expected := range testCases {
		require.Equal(t, expected, convert.ToBinary(n), "binary of %d", n)
	}
}

func TestToHexadecimal(t *testing.T) {
	testCases := map[uint64]string{
		0:              "0",
		9:              "9",
		10:             "A",
		255:            "FF",
		4096:           "1000",
		48879:          "BEEF",
		math.MaxUint64: "FFFFFFFFFFFFFFFF",
	}

	for n, expected := range testCases {
		require.Equal(t, expected, convert.ToHexadecimal(n), "hexadecimal of %d", n)
	}
}

func TestBaseConversionMatchesFormatUint(t *testing.T) {
	for n := uint64(0); n < 5000; n += 7 {
		require.Equal(t, strconv.FormatUint(n, 2), convert.ToBinary(n))
		require.Equal(t, strconv.FormatUint(n, 16), strings.ToLower(convert.ToHexadecimal(n)))
	}
}

func TestConvert(t *testing.T) {
	c, err := convert.Convert(255)
	require.NoError(t, err)
	require.Equal(t, convert.Conversion{
		Input:       255,
		Value:       255,
		Binary:      "11111111",
		Hexadecimal: "FF",
	}, c)

	c, err = convert.Convert(10.9)
	require.NoError(t, err)
	require.Equal(t, uint64(10), c.Value)
	require.Equal(t, "1010", c.Binary)
	require.Equal(t, "A", c.Hexadecimal)
	require.True(t, c.Truncated)

	c, err = convert.Convert(0)
	require.NoError(t, err)
	require.Equal(t, "0", c.Binary)
	require.Equal(t, "0", c.Hexadecimal)
	require.False(t, c.Truncated)
}

func TestConvertRejects(t *testing.T) {
	testCases := map[string]struct {
		value    float64
		expected error
	}{
		"negative":          {value: -1, expected: types.ErrNegativeValue},
		"negative fraction": {value: -0.5, expected: types.ErrNegativeValue},
		"nan":               {value: math.NaN(), expected: types.ErrOutOfRange},
		"infinity":          {value: math.Inf(1), expected: types.ErrOutOfRange},
		"too large":         {value: 1e20, expected: types.ErrOutOfRange},
	}

	for name, tc := range testCases {
		tc := tc

		t.Run(name, func(t *testing.T) {
			_, err := convert.Convert(tc.value)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}
