package onfi

import (
	"time"

	"github.com/ardnew/softnand/nand"
)

// Asynchronous timing mode 0 limits.
const (
	TimingCLH = 20 * time.Nanosecond
	TimingCLS = 50 * time.Nanosecond
	TimingALH = 20 * time.Nanosecond
	TimingALS = 50 * time.Nanosecond
	TimingWH  = 30 * time.Nanosecond
	TimingREA = 40 * time.Nanosecond
	TimingREH = 30 * time.Nanosecond
	TimingRR  = 40 * time.Nanosecond
	TimingWB  = 200 * time.Nanosecond
	TimingADL = 400 * time.Nanosecond
	TimingCCS = 500 * time.Nanosecond

	TimingR    = 200 * time.Microsecond
	TimingPROG = 3 * time.Microsecond
	TimingRST  = 5000 * time.Microsecond

	// TimingInfinity bounds every ready/busy wait.
	TimingInfinity = 10 * time.Millisecond
)

// Timings is the ONFI timing set used by Commands.
var Timings = nand.Timings{
	CLH:  TimingCLH,
	CLS:  TimingCLS,
	ALH:  TimingALH,
	ALS:  TimingALS,
	WH:   TimingWH,
	REA:  TimingREA,
	REH:  TimingREH,
	RR:   TimingRR,
	WB:   TimingWB,
	Busy: TimingInfinity,
}
