// Package constants derives the per channel constants the firmware uses to
// turn timer counts into capacitance.
//
// The meter charges the capacitor through one of several resistors and counts
// timer cycles n until the analog comparator trips:
//
//  t = n / f = -R * C * ln(1 - Vth / Vload) / q
//
// With k = ln(1 - Vth / Vload) this gives the capacitance as
//
//  C = kappa * n,     kappa = -q / (f * R * k)
//
// and, in the unit the channel displays,
//
//  C / unit = zeta * n,     zeta = kappa / unit
//
// Zeta is what the firmware multiplies by; it is emitted as a float24.
package constants

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/calebcase/oops"
	"github.com/olekukonko/tablewriter"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v2"

	"github.com/calebcase/capcal/float24"
)

// Error is the class of constants errors.
var Error = errs.Class("constants")

// Channel is one measuring range of the meter.
type Channel struct {
	// Pin switching the charge resistor in.
	Pin string `yaml:"pin"`

	// Resistance of the charge resistor in ohm.
	Resistance float64 `yaml:"resistance"`

	// Domain the display shows the result in.
	Domain Domain `yaml:"domain"`

	// Correction is the calibrated correction factor q.
	Correction float64 `yaml:"correction"`
}

// Config describes the measuring circuit.
type Config struct {
	// Frequency of the timer in Hz.
	Frequency float64 `yaml:"frequency"`

	// ChargeVoltage is the voltage the capacitor is charged with.
	ChargeVoltage float64 `yaml:"charge_voltage"`

	// MosfetVoltage is the drop over the load MOSFET.
	MosfetVoltage float64 `yaml:"mosfet_voltage"`

	// ComparatorThreshold is the analog comparator threshold voltage.
	ComparatorThreshold float64 `yaml:"comparator_threshold"`

	// Channels in turn-switch order.
	Channels []Channel `yaml:"channels"`
}

// DefaultConfig returns the configuration of the reference meter.
func DefaultConfig() Config {
	return Config{
		Frequency:           16e6,
		ChargeVoltage:       5,
		MosfetVoltage:       0.7,
		ComparatorThreshold: 1.23,
		Channels: []Channel{
			{Pin: "PB0", Resistance: 0.5, Domain: MilliFarad, Correction: 0.20771273621062544},
			{Pin: "PB1", Resistance: 1000, Domain: MicroFarad, Correction: 1.2042984670282875},
			{Pin: "PB2", Resistance: 360000, Domain: NanoFarad, Correction: 1.0953768519337752},
		},
	}
}

// Load reads a YAML configuration. Keys that are not given keep their
// DefaultConfig value; a channels list replaces the default channels.
func Load(r io.Reader) (cfg Config, err error) {
	defer Error.WrapP(&err)

	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	cfg = DefaultConfig()

	err = yaml.UnmarshalStrict(data, &cfg)
	if err != nil {
		return Config{}, err
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadVoltage returns the voltage the capacitor sees while charging.
func (cfg Config) LoadVoltage() float64 {
	return cfg.ChargeVoltage - cfg.MosfetVoltage
}

// Validate checks that constants can be derived from the configuration.
func (cfg Config) Validate() (err error) {
	switch {
	case !(cfg.Frequency > 0):
		return Error.New("frequency must be positive: %v", cfg.Frequency)
	case !(cfg.ComparatorThreshold > 0):
		return Error.New("comparator threshold must be positive: %v", cfg.ComparatorThreshold)
	case !(cfg.LoadVoltage() > cfg.ComparatorThreshold):
		return Error.New(
			"load voltage %v must exceed comparator threshold %v",
			cfg.LoadVoltage(),
			cfg.ComparatorThreshold,
		)
	case len(cfg.Channels) == 0:
		return Error.New("no channels")
	}

	for i, ch := range cfg.Channels {
		switch {
		case !(ch.Resistance > 0):
			return Error.New("channel %d (%s): resistance must be positive: %v", i, ch.Pin, ch.Resistance)
		case !(ch.Correction > 0):
			return Error.New("channel %d (%s): correction must be positive: %v", i, ch.Pin, ch.Correction)
		case !ch.Domain.Valid():
			return Error.New("channel %d (%s): missing domain", i, ch.Pin)
		}
	}

	return nil
}

// Constant holds the derived values of one channel.
type Constant struct {
	Channel Channel
	Kappa   float64
	Zeta    float64
	Encoded float24.Float24
}

// Compute derives the constants of every channel.
func Compute(cfg Config) (cs []Constant, err error) {
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	k := math.Log(1 - cfg.ComparatorThreshold/cfg.LoadVoltage())

	cs = make([]Constant, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		kappa := -ch.Correction / (cfg.Frequency * ch.Resistance * k)
		zeta := kappa / ch.Domain.Scale()

		encoded, err := float24.Encode(zeta)
		if err != nil {
			return nil, oops.Trace(err)
		}

		cs = append(cs, Constant{
			Channel: ch,
			Kappa:   kappa,
			Zeta:    zeta,
			Encoded: encoded,
		})
	}

	return cs, nil
}

// WriteReport writes the circuit parameters and a table of the constants.
func WriteReport(w io.Writer, cfg Config, cs []Constant) (err error) {
	defer Error.WrapP(&err)

	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Clock frequency (f): %sHz\n", strconv.FormatFloat(cfg.Frequency, 'f', -1, 64))
	fmt.Fprintf(buf, "Charging voltage (V_charge): %sV\n", formatFloat(cfg.ChargeVoltage))
	fmt.Fprintf(buf, "Voltage drop at load MOSFET (V_mosfet): %sV\n", formatFloat(cfg.MosfetVoltage))
	fmt.Fprintf(buf, "Analog Comparator threshold (V_comparator_threshold): %sV\n", formatFloat(cfg.ComparatorThreshold))
	fmt.Fprintln(buf)

	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"Pin", "R", "Domain", "Q", "Kappa", "Zeta", "Float24"})
	for _, c := range cs {
		table.Append([]string{
			c.Channel.Pin,
			formatFloat(c.Channel.Resistance),
			c.Channel.Domain.String(),
			strconv.FormatFloat(c.Channel.Correction, 'f', 5, 64),
			formatFloat(c.Kappa),
			formatFloat(c.Zeta),
			c.Encoded.String(),
		})
	}
	table.Render()

	_, err = io.Copy(w, buf)

	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
