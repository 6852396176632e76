package pinbus

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/deadline"
	"github.com/ardnew/softnand/pkg"
)

// Option configures a Bus.
type Option func(*Bus)

// WithClock sets the clock used for strobe delays.
func WithClock(c deadline.Clock) Option {
	return func(b *Bus) {
		if c != nil {
			b.clock = c
		}
	}
}

type ioMode uint8

const (
	ioUnknown ioMode = iota
	ioOutput
	ioInput
)

// Bus drives a NAND package through GPIO pins.
type Bus struct {
	pins  Pins
	clock deadline.Clock
	mode  ioMode

	mu  sync.Mutex
	err error
}

var _ bus.Transceiver = (*Bus)(nil)

// New configures the pins into their idle state: every chip enable
// released, WP# asserted, CLE and ALE low, RE# and WE# high and the
// ready/busy lines as pulled-up inputs.
func New(p Pins, opts ...Option) (*Bus, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := &Bus{pins: p}
	for _, opt := range opts {
		opt(b)
	}
	if b.clock == nil {
		b.clock = deadline.NewSystem()
	}

	for i := range p.CE {
		b.out(p.CE[i], gpio.High)
		if err := p.RB[i].In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("%w: ready/busy %d: %w", pkg.ErrIO, i, err)
		}
	}
	b.out(p.WP, gpio.Low)
	b.out(p.CLE, gpio.Low)
	b.out(p.ALE, gpio.Low)
	b.IdleStrobes()
	if err := b.Err(); err != nil {
		return nil, err
	}
	pkg.LogDebug(pkg.ComponentBus, "pin bus ready", "luns", len(p.CE), "width", len(p.IO))
	return b, nil
}

// Width returns the widest cycle the wiring supports.
func (b *Bus) Width() bus.Width {
	if len(b.pins.IO) == 16 {
		return bus.Width16
	}
	return bus.Width8
}

// LUNs returns the number of wired chip enables.
func (b *Bus) LUNs() int {
	return len(b.pins.CE)
}

// Err returns the first pin failure, if any.
func (b *Bus) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Bus) fail(pin gpio.PinIO, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = fmt.Errorf("%w: pin %s: %w", pkg.ErrIO, pin, err)
		pkg.LogWarn(pkg.ComponentBus, "pin failure", "pin", pin.String(), "err", err)
	}
}

func (b *Bus) out(pin gpio.PinIO, l gpio.Level) bool {
	if err := pin.Out(l); err != nil {
		b.fail(pin, err)
		return false
	}
	return true
}

func (b *Bus) lines(w bus.Width) []gpio.PinIO {
	n := int(w)
	if n > len(b.pins.IO) {
		n = len(b.pins.IO)
	}
	return b.pins.IO[:n]
}

// WriteCycle implements bus.Transceiver.
func (b *Bus) WriteCycle(w bus.Width, v uint16, s bus.Strobe) int {
	for i, pin := range b.lines(w) {
		if !b.out(pin, gpio.Level(v>>i&1 != 0)) {
			return 0
		}
	}
	if !b.out(b.pins.WE, gpio.Low) {
		return 0
	}
	deadline.Wait(b.clock, s.EnablePost)
	if !b.out(b.pins.WE, gpio.High) {
		return 0
	}
	deadline.Wait(b.clock, s.DisablePost)
	return 1
}

// ReadCycle implements bus.Transceiver.
func (b *Bus) ReadCycle(w bus.Width, s bus.Strobe) (uint16, int) {
	if !b.out(b.pins.RE, gpio.Low) {
		return 0, 0
	}
	deadline.Wait(b.clock, s.EnablePost)
	var v uint16
	for i, pin := range b.lines(w) {
		if pin.Read() == gpio.High {
			v |= 1 << i
		}
	}
	if !b.out(b.pins.RE, gpio.High) {
		return 0, 0
	}
	deadline.Wait(b.clock, s.DisablePost)
	return v, 1
}

// SetWriteMode implements bus.Transceiver.
func (b *Bus) SetWriteMode() {
	if b.mode == ioOutput {
		return
	}
	for _, pin := range b.pins.IO {
		if !b.out(pin, gpio.Low) {
			return
		}
	}
	b.mode = ioOutput
}

// SetReadMode implements bus.Transceiver.
func (b *Bus) SetReadMode() {
	if b.mode == ioInput {
		return
	}
	for _, pin := range b.pins.IO {
		if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			b.fail(pin, err)
			return
		}
	}
	b.mode = ioInput
}

// SetLatch implements bus.Transceiver.
func (b *Bus) SetLatch(l bus.Latch) {
	b.out(b.pins.CLE, gpio.Level(l == bus.LatchCommand))
	b.out(b.pins.ALE, gpio.Level(l == bus.LatchAddress))
}

// SetLUNSelect implements bus.Transceiver. Chip enables are active low.
func (b *Bus) SetLUNSelect(lun int, enabled bool) {
	if lun < 0 || lun >= len(b.pins.CE) {
		return
	}
	b.out(b.pins.CE[lun], gpio.Level(!enabled))
}

// SetWriteProtect implements bus.Transceiver. WP# is active low.
func (b *Bus) SetWriteProtect(protect bool) {
	b.out(b.pins.WP, gpio.Level(!protect))
}

// IdleStrobes implements bus.Transceiver.
func (b *Bus) IdleStrobes() {
	b.out(b.pins.RE, gpio.High)
	b.out(b.pins.WE, gpio.High)
}

// Ready implements bus.Transceiver. R/B# is low while the LUN is busy.
func (b *Bus) Ready(lun int) bool {
	if lun < 0 || lun >= len(b.pins.RB) {
		return false
	}
	return b.pins.RB[lun].Read() == gpio.High
}

// Halt releases every chip enable and asserts WP#.
func (b *Bus) Halt() error {
	for lun := range b.pins.CE {
		b.SetLUNSelect(lun, false)
	}
	b.SetWriteProtect(true)
	return b.Err()
}
