package nand

import (
	"time"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/deadline"
)

// DefaultPollInterval is the pause between ready/busy samples.
const DefaultPollInterval = time.Microsecond

// Option configures a Device.
type Option func(*Device)

// WithClock sets the clock used for every delay and ready/busy deadline.
func WithClock(c deadline.Clock) Option {
	return func(d *Device) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithPollInterval sets the pause between ready/busy samples. Zero yields
// the processor between samples instead of sleeping.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Device) {
		if interval >= 0 {
			d.pollInterval = interval
		}
	}
}

// WithLUNCount sets the number of LUNs before bring-up.
func WithLUNCount(n int) Option {
	return func(d *Device) {
		if n > 0 {
			d.Geometry.LUNs = n
		}
	}
}

// WithDataBusWidth sets the width of raw data cycles.
func WithDataBusWidth(w bus.Width) Option {
	return func(d *Device) {
		if w.Valid() {
			d.DataWidth = w
		}
	}
}

// WithAddressCycles sets the column and row address cycle counts.
func WithAddressCycles(column, row int) Option {
	return func(d *Device) {
		if column > 0 {
			d.ColumnCycles = column
		}
		if row > 0 {
			d.RowCycles = row
		}
	}
}
