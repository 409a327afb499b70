package constants

import (
	"strings"
)

// Domain is the unit a measuring range shows its capacitance in.
type Domain int

// Domains supported by the display.
const (
	Farad Domain = iota + 1
	MilliFarad
	MicroFarad
	NanoFarad
	PicoFarad
)

var domains = []struct {
	domain Domain
	name   string
	scale  float64
}{
	{Farad, "F", 1},
	{MilliFarad, "mF", 1e-3},
	{MicroFarad, "microF", 1e-6},
	{NanoFarad, "nF", 1e-9},
	{PicoFarad, "pF", 1e-12},
}

// ParseDomain returns the domain with the given name (e.g. "nF").
func ParseDomain(name string) (d Domain, err error) {
	for _, e := range domains {
		if e.name == name {
			return e.domain, nil
		}
	}

	names := make([]string, 0, len(domains))
	for _, e := range domains {
		names = append(names, e.name)
	}

	return 0, Error.New("unknown domain %q, want one of %s", name, strings.Join(names, ", "))
}

// Valid returns true if d is a known domain.
func (d Domain) Valid() bool {
	return d >= Farad && d <= PicoFarad
}

// Scale returns the size of the unit in farad.
func (d Domain) Scale() float64 {
	if !d.Valid() {
		return 0
	}

	return domains[d-1].scale
}

// String returns the unit name.
func (d Domain) String() string {
	if !d.Valid() {
		return "invalid"
	}

	return domains[d-1].name
}

// MarshalYAML implements yaml.Marshaler.
func (d Domain) MarshalYAML() (interface{}, error) {
	if !d.Valid() {
		return nil, Error.New("invalid domain: %d", int(d))
	}

	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Domain) UnmarshalYAML(unmarshal func(interface{}) error) (err error) {
	var name string

	err = unmarshal(&name)
	if err != nil {
		return err
	}

	*d, err = ParseDomain(name)

	return err
}
