package nand

import "fmt"

// Fixed limits of the command model and identification buffers.
const (
	// MaxSteps is the capacity of a command chain.
	MaxSteps = 10

	// MaxIDSize is the largest identifier read by Read ID.
	MaxIDSize = 20

	// MinIDSize is the shortest identifier accepted during bring-up and
	// the minimum period tried by pattern-length extraction.
	MinIDSize = 4

	// MaxSignatureSize is the largest signature read by Read ID (20h).
	MaxSignatureSize = 8

	// ParameterPageSize is the size of one ONFI parameter page copy.
	ParameterPageSize = 256

	// ParameterPageCopies is how many redundant copies are read.
	ParameterPageCopies = 3

	// MaxParameterPageSize is the buffer size for a parameter page read.
	MaxParameterPageSize = ParameterPageSize * ParameterPageCopies

	// MinParameterPageSize is the shortest parameter page accepted during
	// bring-up.
	MinParameterPageSize = ParameterPageSize
)

// Bus and addressing defaults applied by New.
const (
	DefaultColumnCycles = 2
	DefaultRowCycles    = 3
	DefaultLUNCount     = 1
)

// State is the bring-up state of a Device.
type State uint8

// Device states.
const (
	StateUncreated        State = 0 // Zero value, never returned by New
	StateWiringAssigned   State = 1 // Bus attached, defaults applied
	StateIdentified       State = 2 // Read ID succeeded
	StateGeometryResolved State = 3 // Geometry decoded
	StateReady            State = 4 // Data operations allowed
)

// String returns a human-readable state description.
func (s State) String() string {
	switch s {
	case StateUncreated:
		return "Uncreated"
	case StateWiringAssigned:
		return "Wiring Assigned"
	case StateIdentified:
		return "Identified"
	case StateGeometryResolved:
		return "Geometry Resolved"
	case StateReady:
		return "Ready"
	default:
		return fmt.Sprintf("Unknown State (%d)", s)
	}
}

// Status register bits returned by Read Status.
const (
	StatusFail         = 0x01 // Last program or erase failed
	StatusReady        = 0x40 // LUN is idle
	StatusNotProtected = 0x80 // WP# is deasserted
)
