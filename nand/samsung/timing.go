package samsung

import (
	"time"

	"github.com/ardnew/softnand/nand"
)

// Timings is the Samsung timing set used by Commands.
var Timings = nand.Timings{
	CLH:  5 * time.Nanosecond,
	CLS:  12 * time.Nanosecond,
	ALH:  5 * time.Nanosecond,
	ALS:  12 * time.Nanosecond,
	WH:   10 * time.Nanosecond,
	REA:  20 * time.Nanosecond,
	REH:  10 * time.Nanosecond,
	RR:   20 * time.Nanosecond,
	WB:   100 * time.Nanosecond,
	Busy: 10 * time.Millisecond,
}
