package decimal

import (
	"math/big"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the class of decimal errors.
var Error = errs.Class("decimal")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
	ten = big.NewInt(10)
)

// Block is a fixed point base 10 decimal number.
type Block struct {
	Value *big.Int
	Scale int
}

// Round returns r rounded half to even to the given number of fractional
// digits.
func Round(r *big.Rat, digits int) (b Block, err error) {
	if digits < 0 {
		return Block{}, Error.New("negative digits: %d", digits)
	}

	pow := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)

	num := new(big.Int).Mul(r.Num(), pow)
	denom := r.Denom()

	q, m := new(big.Int).QuoRem(num, denom, new(big.Int))

	// Compare twice the remainder with the denominator to find the nearest
	// neighbour. QuoRem truncates, so a negative remainder rounds away
	// from zero by subtracting.
	m2 := new(big.Int).Mul(new(big.Int).Abs(m), two)
	switch c := m2.Cmp(denom); {
	case c > 0, c == 0 && q.Bit(0) == 1:
		if num.Sign() < 0 {
			q.Sub(q, one)
		} else {
			q.Add(q, one)
		}
	}

	return Block{
		Value: q,
		Scale: -digits,
	}, nil
}

// Digits returns the number of fractional digits.
func (b Block) Digits() int {
	if b.Scale >= 0 {
		return 0
	}

	return -b.Scale
}

// Fraction returns the fractional digits zero padded to Digits.
func (b Block) Fraction() string {
	digits := b.Digits()
	if digits == 0 {
		return ""
	}

	pow := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)
	m := new(big.Int).Rem(new(big.Int).Abs(b.value()), pow)

	s := m.String()

	return strings.Repeat("0", digits-len(s)) + s
}

// String returns the decimal in plain notation (e.g. "-1.25").
func (b Block) String() string {
	v := b.value()

	if b.Scale >= 0 {
		pow := new(big.Int).Exp(ten, big.NewInt(int64(b.Scale)), nil)

		return new(big.Int).Mul(v, pow).String()
	}

	pow := new(big.Int).Exp(ten, big.NewInt(int64(b.Digits())), nil)
	whole := new(big.Int).Quo(new(big.Int).Abs(v), pow)

	sb := &strings.Builder{}
	if v.Sign() < 0 {
		sb.WriteString("-")
	}
	sb.WriteString(whole.String())
	sb.WriteString(".")
	sb.WriteString(b.Fraction())

	return sb.String()
}

// Rat returns the exact value as a rational number.
func (b Block) Rat() *big.Rat {
	r := new(big.Rat).SetInt(b.value())

	pow := new(big.Int).Exp(ten, big.NewInt(int64(b.Digits())), nil)
	if b.Scale < 0 {
		return r.Quo(r, new(big.Rat).SetInt(pow))
	}

	pow.Exp(ten, big.NewInt(int64(b.Scale)), nil)

	return r.Mul(r, new(big.Rat).SetInt(pow))
}

func (b Block) value() *big.Int {
	if b.Value == nil {
		return new(big.Int)
	}

	return b.Value
}
