package nand

import (
	"time"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/deadline"
	"github.com/ardnew/softnand/pkg"
)

// Device is one NAND package reached through a bus.Transceiver.
//
// Fields are filled in during bring-up and are read-mostly afterwards.
// A Device is not safe for concurrent use; callers serialize chains.
type Device struct {
	bus          bus.Transceiver
	clock        deadline.Clock
	pollInterval time.Duration

	DataWidth    bus.Width // Width of raw data cycles
	AddrWidth    bus.Width // Width of command and address cycles
	ColumnCycles int
	RowCycles    int
	Geometry     Geometry

	ID            [MaxIDSize]byte
	IDSize        int
	Signature     [MaxSignatureSize]byte
	SignatureSize int

	Standard     string // Identification scheme, e.g. "ONFI 4.0"
	Manufacturer string
	Model        string

	state State
}

// New attaches a device to its bus and applies the bus defaults: 8-bit data
// and address cycles, 2 column and 3 row address cycles, one LUN.
func New(t bus.Transceiver, opts ...Option) *Device {
	d := &Device{
		bus:          t,
		pollInterval: DefaultPollInterval,
		DataWidth:    bus.Width8,
		AddrWidth:    bus.Width8,
		ColumnCycles: DefaultColumnCycles,
		RowCycles:    DefaultRowCycles,
		Geometry:     Geometry{LUNs: DefaultLUNCount},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = deadline.NewSystem()
	}
	d.setState(StateWiringAssigned)
	return d
}

// Bus returns the transceiver the device is attached to.
func (d *Device) Bus() bus.Transceiver {
	return d.bus
}

// Clock returns the clock used for delays and deadlines.
func (d *Device) Clock() deadline.Clock {
	return d.clock
}

// State returns the bring-up state.
func (d *Device) State() State {
	return d.state
}

// Ready reports whether bring-up completed.
func (d *Device) Ready() bool {
	return d.state == StateReady
}

func (d *Device) setState(s State) {
	if d.state == s {
		return
	}
	pkg.LogDebug(pkg.ComponentNAND, "device state changed", "from", d.state, "to", s)
	d.state = s
}

// IDBytes returns the identifier found by bring-up.
func (d *Device) IDBytes() []byte {
	return d.ID[:d.IDSize]
}

// SignatureBytes returns the signature found by bring-up.
func (d *Device) SignatureBytes() []byte {
	return d.Signature[:d.SignatureSize]
}

// ValidLUN reports whether lun indexes a LUN of the device.
func (d *Device) ValidLUN(lun int) bool {
	return lun >= 0 && lun < d.Geometry.LUNs
}

// Select asserts the chip enable of lun.
func (d *Device) Select(lun int) {
	d.bus.SetLUNSelect(lun, true)
}

// Deselect releases the chip enable of lun. Run leaves it asserted when a
// chain is abandoned on timeout.
func (d *Device) Deselect(lun int) {
	d.bus.SetLUNSelect(lun, false)
}

// ColumnAddress converts a byte offset within a page to a column address.
// Columns of a 16-bit device count words, so offset must be even there.
func (d *Device) ColumnAddress(offset int) uint32 {
	return uint32(offset / d.DataWidth.Bytes())
}

// Reset restores the device to its freshly attached state, keeping the bus,
// clock, widths and LUN count.
func (d *Device) Reset() {
	luns := d.Geometry.LUNs
	d.Geometry = Geometry{LUNs: luns}
	d.ID = [MaxIDSize]byte{}
	d.IDSize = 0
	d.Signature = [MaxSignatureSize]byte{}
	d.SignatureSize = 0
	d.Standard, d.Manufacturer, d.Model = "", "", ""
	d.setState(StateWiringAssigned)
}
