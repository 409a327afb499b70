// Package calibration derives correction factors from reference capacitor
// measurements.
//
// Measurements are CSV rows of the form:
//
//  id,measured,real
//
// Where id names one physical capacitor, measured is the capacitance the
// meter reported and real is the capacitance printed on the part. A
// capacitor may be measured many times; its real capacitance must be the same
// in every row.
//
// The correction factor of a set of measurements is
//
//  q = mean(real / mean(measured))
//
// taken over the capacitors in the order they first appear.
package calibration

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the class of calibration errors.
var Error = errs.Class("calibration")

// Sample is one measurement of a reference capacitor.
type Sample struct {
	ID       string
	Measured float64
	Real     float64
}

// ReadSamples reads all samples from r.
func ReadSamples(r io.Reader) (samples []Sample, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Error.Wrap(err)
		}

		measured, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, Error.New("row %d: measured: %v", row, err)
		}

		actual, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, Error.New("row %d: real: %v", row, err)
		}

		samples = append(samples, Sample{
			ID:       record[0],
			Measured: measured,
			Real:     actual,
		})
	}

	return samples, nil
}

// capacitor collects the samples of one id.
type capacitor struct {
	id       string
	real     float64
	measured []float64
}

// CorrectionFactor returns the correction factor for the samples.
func CorrectionFactor(samples []Sample) (q float64, err error) {
	if len(samples) == 0 {
		return 0, Error.New("no samples")
	}

	index := map[string]int{}
	capacitors := []*capacitor{}

	for _, s := range samples {
		i, ok := index[s.ID]
		if !ok {
			i = len(capacitors)
			index[s.ID] = i
			capacitors = append(capacitors, &capacitor{
				id:   s.ID,
				real: s.Real,
			})
		}

		c := capacitors[i]
		if c.real != s.Real {
			return 0, Error.New(
				"inequality in real capacitance for id %q: %g != %g",
				s.ID,
				c.real,
				s.Real,
			)
		}

		c.measured = append(c.measured, s.Measured)
	}

	ratios := make([]float64, 0, len(capacitors))
	for _, c := range capacitors {
		m := mean(c.measured)
		if m == 0 {
			return 0, Error.New("mean measured capacitance of id %q is zero", c.id)
		}

		ratios = append(ratios, c.real/m)
	}

	return mean(ratios), nil
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
