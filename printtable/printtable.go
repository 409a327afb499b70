// Package printtable generates the lookup table the firmware uses to print
// the fraction of a float24 as decimal digits.
//
// The table has one entry for every B bit pattern of the most significant
// fraction bits. Entry i holds the D decimal digits of i/2^B, rounded half to
// even. Entries at the top of the range that round up to 1.00...0 would read
// as zero, so they are replaced by 99...9 instead.
package printtable

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/calebcase/oops"
	"github.com/zeebo/errs"

	"github.com/calebcase/capcal/binfrac"
	"github.com/calebcase/capcal/decimal"
)

// MaxBits is the largest number of bits a table may be indexed by.
const MaxBits = 20

var (
	// Error is the class of printtable errors.
	Error = errs.Class("printtable")

	// DomainError is the class of errors for parameters no table exists
	// for.
	DomainError = errs.Class("printtable domain")
)

// Table is a generated print table.
type Table struct {
	// Digits is the number of decimal digits per entry.
	Digits int

	// Bits is the number of fraction bits indexing the table.
	Bits int

	// Entries holds 2^Bits strings of Digits decimal digits each.
	Entries []string
}

// Bits returns the number of fraction bits needed to keep the quantization
// error of digits decimal digits within the relative precision.
func Bits(digits int, precision float64) (bits int, err error) {
	switch {
	case digits < 1:
		return 0, DomainError.New("digits must be positive: %d", digits)
	case math.IsNaN(precision), precision <= 0:
		return 0, DomainError.New("precision must be positive: %v", precision)
	}

	b := -math.Ceil(math.Log2(math.Pow(precision, float64(digits))))
	if b < 1 || b > MaxBits {
		return 0, DomainError.New(
			"digits=%d precision=%v need %v bits, want 1 to %d",
			digits,
			precision,
			b,
			MaxBits,
		)
	}

	return int(b), nil
}

// Generate builds the table for the given number of digits and relative
// precision.
func Generate(digits int, precision float64) (t *Table, err error) {
	bits, err := Bits(digits, precision)
	if err != nil {
		return nil, err
	}

	entries := make([]string, 1<<bits)
	for i := range entries {
		entries[i], err = entry(i, bits, digits)
		if err != nil {
			return nil, oops.Trace(err)
		}
	}

	correct(entries, digits)

	return &Table{
		Digits:  digits,
		Bits:    bits,
		Entries: entries,
	}, nil
}

// entry returns the digits of the fraction 0.b1b2...bn for the bits of i.
func entry(i, bits, digits int) (s string, err error) {
	r, err := binfrac.ParseRat(fmt.Sprintf("0.%0*b", bits, i))
	if err != nil {
		return "", err
	}

	d, err := decimal.Round(r, digits)
	if err != nil {
		return "", err
	}

	return d.Fraction(), nil
}

// correct replaces the trailing run of all zero entries (values that rounded
// up to one) with all nines.
func correct(entries []string, digits int) {
	zeros := strings.Repeat("0", digits)
	nines := strings.Repeat("9", digits)

	for i := len(entries) - 1; i >= 0 && entries[i] == zeros; i-- {
		entries[i] = nines
	}
}

// Size returns the number of bytes the table occupies.
func (t *Table) Size() int {
	return t.Digits * len(t.Entries)
}

// WriteAssembly writes the table as assembler data under label.
func (t *Table) WriteAssembly(w io.Writer, label string) (err error) {
	defer Error.WrapP(&err)

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "; %d most significant bits required.\n", t.Bits)
	fmt.Fprintf(bw, "; This table requires %d bytes.\n", t.Size())
	fmt.Fprintf(bw, "%s:\n", label)

	for _, e := range t.Entries {
		fmt.Fprintf(bw, "    .db \"%s\"\n", e)
	}

	return bw.Flush()
}
