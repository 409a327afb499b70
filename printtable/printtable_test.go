package printtable

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"
)

func TestBits(t *testing.T) {
	type TC struct {
		digits    int
		precision float64
		bits      int
	}

	tcs := []TC{
		{digits: 2, precision: 0.05, bits: 8},
		{digits: 1, precision: 0.1, bits: 3},
		{digits: 1, precision: 0.3, bits: 1},
		{digits: 1, precision: 0.5, bits: 1},
		{digits: 2, precision: 0.1, bits: 6},
		{digits: 3, precision: 0.1, bits: 9},
		{digits: 3, precision: 0.05, bits: 12},
		{digits: 4, precision: 0.1, bits: 13},
		{digits: 1, precision: math.Ldexp(1, -20), bits: 20},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%d/%v", i, tc.digits, tc.precision), func(t *testing.T) {
			bits, err := Bits(tc.digits, tc.precision)
			require.NoError(t, err)
			require.Equal(t, tc.bits, bits)
		})
	}
}

func TestDomain(t *testing.T) {
	type TC struct {
		digits    int
		precision float64
	}

	tcs := []TC{
		{digits: 0, precision: 0.05},
		{digits: -1, precision: 0.05},
		{digits: 2, precision: 0},
		{digits: 2, precision: -0.05},
		{digits: 2, precision: math.NaN()},
		{digits: 2, precision: math.Inf(1)},
		{digits: 1, precision: 0.9},
		{digits: 1, precision: 1},
		{digits: 1, precision: 2},
		{digits: 1, precision: math.Ldexp(1, -21)},
		{digits: 3, precision: 0.001},
		{digits: 2, precision: 1e-300},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%d/%v", i, tc.digits, tc.precision), func(t *testing.T) {
			table, err := Generate(tc.digits, tc.precision)
			require.Error(t, err)
			require.Nil(t, table)
			require.True(t, DomainError.Has(err), "%+v", err)
		})
	}
}

func TestGenerate(t *testing.T) {
	table, err := Generate(2, 0.05)
	require.NoError(t, err)

	require.Equal(t, 8, table.Bits)
	require.Equal(t, 2, table.Digits)
	require.Equal(t, 512, table.Size())
	require.Len(t, table.Entries, 256)

	for _, e := range table.Entries {
		require.Len(t, e, 2)
	}

	require.Equal(t, "00", table.Entries[0])
	require.Equal(t, "00", table.Entries[1])
	require.Equal(t, "01", table.Entries[2])
	require.Equal(t, "12", table.Entries[32])  // 0.125, tie to even
	require.Equal(t, "25", table.Entries[64])  // 0.25
	require.Equal(t, "38", table.Entries[96])  // 0.375, tie to even
	require.Equal(t, "50", table.Entries[128]) // 0.5
	require.Equal(t, "62", table.Entries[160]) // 0.625, tie to even
	require.Equal(t, "99", table.Entries[254])

	// 255/256 rounds to 1.00 and must not read as zero.
	require.Equal(t, "99", table.Entries[255])
}

func TestGenerateMatchesFormatter(t *testing.T) {
	type TC struct {
		digits    int
		precision float64
		corrected int
	}

	tcs := []TC{
		{digits: 2, precision: 0.05, corrected: 1},
		{digits: 1, precision: 0.1, corrected: 0},
		{digits: 1, precision: 0.3, corrected: 0},
		{digits: 2, precision: 0.1, corrected: 0},
		{digits: 3, precision: 0.1, corrected: 0},
		{digits: 3, precision: 0.05, corrected: 2},
		{digits: 4, precision: 0.1, corrected: 0},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%d/%v", i, tc.digits, tc.precision), func(t *testing.T) {
			table, err := Generate(tc.digits, tc.precision)
			require.NoError(t, err)

			nines := strings.Repeat("9", tc.digits)
			n := len(table.Entries)

			for i, e := range table.Entries {
				x := float64(i) / float64(n)
				formatted := strconv.FormatFloat(x, 'f', tc.digits, 64)

				if i >= n-tc.corrected {
					require.Equal(t, "1."+strings.Repeat("0", tc.digits), formatted, "entry %d", i)
					require.Equal(t, nines, e, "entry %d", i)

					continue
				}

				require.Equal(t, formatted[2:], e, "entry %d", i)
			}
		})
	}
}

func TestWriteAssembly(t *testing.T) {
	type TC struct {
		digits    int
		precision float64
		golden    string
	}

	tcs := []TC{
		{digits: 2, precision: 0.05, golden: "digits2_precision0.05.asm"},
		{digits: 1, precision: 0.1, golden: "digits1_precision0.1.asm"},
		{digits: 3, precision: 0.1, golden: "digits3_precision0.1.asm"},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.golden), func(t *testing.T) {
			expected, err := os.ReadFile(filepath.Join("testdata", tc.golden))
			require.NoError(t, err)

			table, err := Generate(tc.digits, tc.precision)
			require.NoError(t, err)

			buf := &bytes.Buffer{}
			err = table.WriteAssembly(buf, "float24printtable")
			require.NoError(t, err)
			require.Equal(t, string(expected), buf.String())
		})
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteAssemblyError(t *testing.T) {
	table, err := Generate(2, 0.05)
	require.NoError(t, err)

	err = table.WriteAssembly(failWriter{}, "float24printtable")
	require.Error(t, err, oops.New("unexpected"))
	require.True(t, Error.Has(err), "%+v", err)
}

func TestCorrect(t *testing.T) {
	type TC struct {
		name    string
		input   []string
		digits  int
		entries []string
	}

	tcs := []TC{
		{
			name:    "no run",
			input:   []string{"00", "50", "98"},
			digits:  2,
			entries: []string{"00", "50", "98"},
		},
		{
			name:    "single",
			input:   []string{"00", "50", "00"},
			digits:  2,
			entries: []string{"00", "50", "99"},
		},
		{
			name:    "run",
			input:   []string{"000", "500", "999", "000", "000"},
			digits:  3,
			entries: []string{"000", "500", "999", "999", "999"},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			correct(tc.input, tc.digits)
			require.Equal(t, tc.entries, tc.input)
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	for n := 0; n < b.N; n++ {
		_, err := Generate(2, 0.05)
		if err != nil {
			b.Fatalf("%+v", err)
		}
	}
}
