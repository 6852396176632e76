package bus

import (
	"fmt"
	"time"
)

// Width is the number of data lines sampled per bus cycle.
type Width uint8

// Data bus widths.
const (
	Width8  Width = 8
	Width16 Width = 16
)

// Bytes returns how many bytes one cycle of this width carries.
func (w Width) Bytes() int {
	if w == Width16 {
		return 2
	}
	return 1
}

// Mask returns the bits a cycle of this width can carry.
func (w Width) Mask() uint16 {
	if w == Width16 {
		return 0xFFFF
	}
	return 0x00FF
}

// Valid reports whether w is a supported width.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16
}

// String returns a human-readable width.
func (w Width) String() string {
	return fmt.Sprintf("x%d", uint8(w))
}

// Latch selects what the device should capture on the next write strobe.
type Latch uint8

// Latch modes.
const (
	LatchNeutral Latch = iota // Data cycles, CLE and ALE low
	LatchCommand              // CLE high
	LatchAddress              // ALE high
)

// String returns a human-readable latch mode.
func (l Latch) String() string {
	switch l {
	case LatchNeutral:
		return "neutral"
	case LatchCommand:
		return "command"
	case LatchAddress:
		return "address"
	default:
		return fmt.Sprintf("Unknown Latch (%d)", l)
	}
}

// Strobe carries the delays around one RE# or WE# pulse.
type Strobe struct {
	EnablePost  time.Duration // Held after the strobe asserts
	DisablePost time.Duration // Held after the strobe releases
}

// Transceiver moves single cycles across a NAND bus.
//
// Each WriteCycle or ReadCycle is one bus clock regardless of width; a
// 16-bit bus moves two bytes per cycle. The mode setters are idempotent.
// Implementations are not required to be safe for concurrent use.
type Transceiver interface {
	// WriteCycle drives v onto the data lines and pulses WE#.
	// Returns the number of cycles transferred (0 or 1).
	WriteCycle(w Width, v uint16, s Strobe) int

	// ReadCycle pulses RE# and samples the data lines.
	// Returns the sampled value and the number of cycles transferred.
	ReadCycle(w Width, s Strobe) (uint16, int)

	// SetWriteMode turns the data lines into outputs.
	SetWriteMode()

	// SetReadMode turns the data lines into inputs.
	SetReadMode()

	// SetLatch drives CLE and ALE for the given mode.
	SetLatch(l Latch)

	// SetLUNSelect asserts (enabled) or releases the chip enable of lun.
	SetLUNSelect(lun int, enabled bool)

	// SetWriteProtect asserts (protect) or releases WP#.
	SetWriteProtect(protect bool)

	// IdleStrobes releases RE# and WE#.
	IdleStrobes()

	// Ready samples the ready/busy line of lun.
	Ready(lun int) bool
}
