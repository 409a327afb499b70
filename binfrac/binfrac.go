// Package binfrac parses binary fixed point numbers such as "10.111".
//
// The accepted form is an optional "0b" prefix, a non-empty run of binary
// digits and, optionally, a point followed by more binary digits:
//
//  0b101.011 = 5.375
//  1.1       = 1.5
//  111       = 7
//  1.        = 1
package binfrac

import (
	"math/big"
	"strings"

	"github.com/zeebo/errs"
)

// FormatError is the class of errors returned for malformed input.
var FormatError = errs.Class("binfrac")

// split validates s and returns the digits before and after the point.
func split(s string) (whole, frac string, err error) {
	digits := strings.TrimPrefix(s, "0b")

	dots := 0
	for i := 0; i < len(digits); i++ {
		switch digits[i] {
		case '0', '1':
		case '.':
			dots++
			if dots > 1 {
				return "", "", FormatError.New("multiple points in %q", s)
			}
		default:
			return "", "", FormatError.New("invalid digit %q at %d in %q", digits[i], i, s)
		}
	}

	whole = digits
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		whole, frac = digits[:dot], digits[dot+1:]
	}

	if len(whole) == 0 {
		return "", "", FormatError.New("missing integer part in %q", s)
	}

	return whole, frac, nil
}

// Parse returns the value of the binary number s.
//
// The integer part is converted exactly and rounded once to a float64. Each
// fractional digit k then adds digit/2^k, so the result is exact as long as
// the fractional part fits into the float64 mantissa.
func Parse(s string) (value float64, err error) {
	whole, frac, err := split(s)
	if err != nil {
		return 0, err
	}

	i, _ := new(big.Int).SetString(whole, 2)
	value, _ = new(big.Float).SetInt(i).Float64()

	f := 1.0
	for k := 0; k < len(frac); k++ {
		f *= 2
		value += float64(frac[k]-'0') / f
	}

	return value, nil
}

// ParseRat returns the exact value of the binary number s.
func ParseRat(s string) (r *big.Rat, err error) {
	whole, frac, err := split(s)
	if err != nil {
		return nil, err
	}

	num, _ := new(big.Int).SetString(whole+frac, 2)
	denom := new(big.Int).Lsh(big.NewInt(1), uint(len(frac)))

	return new(big.Rat).SetFrac(num, denom), nil
}
