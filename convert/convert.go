package convert

import (
	"math"

	sdkerrors "cosmossdk.io/errors"

	"github.com/numtools/numtools/types"
)

const digits = "0123456789ABCDEF"

// maxExact is 2^64, the first float64 that no longer fits in a uint64.
const maxExact = 18446744073709551616.0

// Conversion is the binary and hexadecimal form of one input value.
type Conversion struct {
	Input       float64
	Value       uint64
	Binary      string
	Hexadecimal string
	// Truncated is set when Input carried a fractional part.
	Truncated bool
}

// Convert truncates v toward zero and renders it in base 2 and base 16.
// Negative, non-finite and too large values are rejected.
func Convert(v float64) (Conversion, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return Conversion{}, sdkerrors.Wrapf(types.ErrOutOfRange, "cannot convert %v", v)
	case v < 0:
		return Conversion{}, sdkerrors.Wrapf(types.ErrNegativeValue, "cannot convert %v", v)
	case v >= maxExact:
		return Conversion{}, sdkerrors.Wrapf(types.ErrOutOfRange, "cannot convert %v", v)
	}

	n := uint64(v)
	return Conversion{
		Input:       v,
		Value:       n,
		Binary:      ToBinary(n),
		Hexadecimal: ToHexadecimal(n),
		Truncated:   float64(n) != v,
	}, nil
}

// ToBinary returns n in base 2, most significant digit first.
func ToBinary(n uint64) string {
	return toBase(n, 2)
}

// ToHexadecimal returns n in base 16 using uppercase digits.
func ToHexadecimal(n uint64) string {
	return toBase(n, 16)
}

// toBase renders n by repeated division, collecting remainders from the
// least significant digit and reversing them at the end.
func toBase(n, base uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [64]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%base]
		n /= base
	}
	return string(buf[i:])
}
