package float24

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"

	"github.com/calebcase/capcal/binfrac"
)

// Layout of the format.
const (
	Width        = 24
	ExponentBits = 7
	FractionBits = 16
	Bias         = 63

	// Max is the largest bit pattern.
	Max = 1<<Width - 1

	maxExponent  = 1<<ExponentBits - 1
	fractionMask = 1<<FractionBits - 1
)

var (
	// Error is the class of float24 errors.
	Error = errs.Class("float24")

	// RangeError is the class of errors for values that do not fit the
	// format.
	RangeError = errs.Class("float24 range")
)

// Float24 is a 24 bit floating point number stored in the low bits of a
// uint32.
type Float24 uint32

// New returns bits as a Float24. It fails if bits is wider than 24 bits.
func New(bits uint32) (Float24, error) {
	if bits > Max {
		return 0, RangeError.New("%#x exceeds %d bits", bits, Width)
	}

	return Float24(bits), nil
}

// Parse reads a hex bit pattern with an optional "0x" prefix.
func Parse(s string) (f Float24, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")

	bits, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	if bits > Max {
		return 0, RangeError.New("%#x exceeds %d bits", bits, Width)
	}

	return Float24(bits), nil
}

// Negative returns true if the sign bit is set.
func (f Float24) Negative() bool {
	return f>>(Width-1)&1 == 1
}

// Exponent returns the biased exponent field.
func (f Float24) Exponent() uint8 {
	return uint8(f >> FractionBits & maxExponent)
}

// Fraction returns the fraction field.
func (f Float24) Fraction() uint16 {
	return uint16(f & fractionMask)
}

// Float64 returns the real value.
func (f Float24) Float64() float64 {
	v, _ := Decode(uint32(f & Max))

	return v
}

// String returns the bit pattern as hex (e.g. "0x3f0000").
func (f Float24) String() string {
	return fmt.Sprintf("0x%06x", uint32(f&Max))
}

// MarshalText implements encoding.TextMarshaler.
func (f Float24) MarshalText() (text []byte, err error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Float24) UnmarshalText(text []byte) (err error) {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The result is 3 bytes,
// big-endian.
func (f Float24) MarshalBinary() (data []byte, err error) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(f&Max))

	return buf[1:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Float24) UnmarshalBinary(data []byte) (err error) {
	if len(data) != Width/8 {
		return RangeError.New("invalid length: %d", len(data))
	}

	*f = Float24(uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]))

	return nil
}

// Decode returns the real value of the bit pattern.
func Decode(bits uint32) (value float64, err error) {
	if bits > Max {
		return 0, RangeError.New("%#x exceeds %d bits", bits, Width)
	}

	// Zero has no implicit leading one.
	if bits == 0 {
		return 0, nil
	}

	b := fmt.Sprintf("%0*b", Width, bits)

	sign := 1.0
	if b[0] == '1' {
		sign = -1
	}

	exponent, err := strconv.ParseUint(b[1:1+ExponentBits], 2, 8)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	mantissa, err := binfrac.Parse("1." + b[1+ExponentBits:])
	if err != nil {
		return 0, oops.Trace(err)
	}

	return sign * math.Ldexp(mantissa, int(exponent)-Bias), nil
}

// Encode returns the float24 closest to x that is not larger in magnitude.
func Encode(x float64) (f Float24, err error) {
	switch {
	case x == 0:
		return 0, nil
	case math.IsNaN(x), math.IsInf(x, 0):
		return 0, RangeError.New("not finite: %v", x)
	}

	var sign uint32
	if x < 0 {
		sign = 1
		x = -x
	}

	m, shift, err := normalize(x)
	if err != nil {
		return 0, err
	}

	exponent := uint32(shift + Bias)

	// Subtract the implicit leading one and approximate the remainder from
	// the most significant fraction bit down.
	r := m - 1
	factor := 1.0

	var fraction uint32
	for i := 0; i < FractionBits; i++ {
		factor /= 2
		fraction <<= 1

		if factor <= r {
			fraction |= 1
			r -= factor
		}
	}

	f = Float24(sign<<(Width-1) | exponent<<FractionBits | fraction)

	// The all zero pattern is reserved for zero.
	if f == 0 {
		return 0, RangeError.New("magnitude too small: %g", x)
	}

	return f, nil
}

// normalize scales the positive x into [1, 2) and returns the number of
// halvings needed (negative for doublings). It stops as soon as the biased
// exponent would leave the field.
func normalize(x float64) (m float64, shift int, err error) {
	m = x

	for m >= 2 {
		if shift+Bias >= maxExponent {
			return 0, 0, RangeError.New("magnitude too large: %g", x)
		}

		m /= 2
		shift++
	}

	for m < 1 {
		if shift+Bias <= 0 {
			return 0, 0, RangeError.New("magnitude too small: %g", x)
		}

		m *= 2
		shift--
	}

	return m, shift, nil
}
