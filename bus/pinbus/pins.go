package pinbus

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/ardnew/softnand/pkg"
)

// Pins is the wiring of one NAND package. CE and RB hold one pin per LUN;
// IO holds the data lines starting with IO0.
type Pins struct {
	CE  []gpio.PinIO
	RB  []gpio.PinIO
	RE  gpio.PinIO
	WE  gpio.PinIO
	WP  gpio.PinIO
	CLE gpio.PinIO
	ALE gpio.PinIO
	IO  []gpio.PinIO
}

// Names is the wiring of one NAND package by registry pin name.
type Names struct {
	CE  []string `yaml:"ce"`
	RB  []string `yaml:"rb"`
	RE  string   `yaml:"re"`
	WE  string   `yaml:"we"`
	WP  string   `yaml:"wp"`
	CLE string   `yaml:"cle"`
	ALE string   `yaml:"ale"`
	IO  []string `yaml:"io"`
}

// Resolve looks every name up in the gpioreg registry.
func Resolve(n Names) (Pins, error) {
	var (
		p   Pins
		err error
	)
	lookup := func(name string) gpio.PinIO {
		if err != nil {
			return nil
		}
		pin := gpioreg.ByName(name)
		if pin == nil {
			err = fmt.Errorf("%w: unknown pin %q", pkg.ErrInvalidParameter, name)
		}
		return pin
	}
	many := func(names []string) []gpio.PinIO {
		pins := make([]gpio.PinIO, len(names))
		for i, name := range names {
			pins[i] = lookup(name)
		}
		return pins
	}

	p.CE = many(n.CE)
	p.RB = many(n.RB)
	p.RE = lookup(n.RE)
	p.WE = lookup(n.WE)
	p.WP = lookup(n.WP)
	p.CLE = lookup(n.CLE)
	p.ALE = lookup(n.ALE)
	p.IO = many(n.IO)
	if err != nil {
		return Pins{}, err
	}
	return p, nil
}

// Validate checks that every pin is present, that CE and RB agree on the
// LUN count and that there are 8 or 16 data lines.
func (p Pins) Validate() error {
	if len(p.CE) == 0 || len(p.CE) != len(p.RB) {
		return fmt.Errorf("%w: %d chip enables, %d ready/busy pins", pkg.ErrInvalidParameter, len(p.CE), len(p.RB))
	}
	if len(p.IO) != 8 && len(p.IO) != 16 {
		return fmt.Errorf("%w: %d data lines", pkg.ErrInvalidParameter, len(p.IO))
	}
	named := map[string]gpio.PinIO{"RE": p.RE, "WE": p.WE, "WP": p.WP, "CLE": p.CLE, "ALE": p.ALE}
	for name, pin := range named {
		if pin == nil {
			return fmt.Errorf("%w: %s pin missing", pkg.ErrInvalidParameter, name)
		}
	}
	for _, group := range [][]gpio.PinIO{p.CE, p.RB, p.IO} {
		for i, pin := range group {
			if pin == nil {
				return fmt.Errorf("%w: pin %d of group missing", pkg.ErrInvalidParameter, i)
			}
		}
	}
	return nil
}
