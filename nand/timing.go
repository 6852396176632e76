package nand

import "time"

// CycleTiming holds the delays applied around one chain step. A zero field
// skips that wait; a zero ready timeout skips the ready/busy check.
type CycleTiming struct {
	PreDelay              time.Duration
	LatchEnablePreDelay   time.Duration
	LatchEnablePostDelay  time.Duration
	ReadyThisLUNTimeout   time.Duration
	ReadyOtherLUNsTimeout time.Duration
	ReadyPostDelay        time.Duration
	CycleEnablePostDelay  time.Duration
	CycleDisablePostDelay time.Duration
	LatchDisablePreDelay  time.Duration
	LatchDisablePostDelay time.Duration
	PostDelay             time.Duration
}

// ReadyScope selects which LUNs a preset waits on before latching.
type ReadyScope uint8

// Ready scopes.
const (
	ReadyThisLUN ReadyScope = iota
	ReadyOtherLUNs
	ReadyAllLUNs
)

// Timings is a vendor's set of protocol constants from which the standard
// CycleTiming presets are derived.
type Timings struct {
	CLH  time.Duration // CLE hold
	CLS  time.Duration // CLE setup
	ALH  time.Duration // ALE hold
	ALS  time.Duration // ALE setup
	WH   time.Duration // WE# high hold
	REA  time.Duration // RE# access
	REH  time.Duration // RE# high hold
	RR   time.Duration // Ready to RE# low
	WB   time.Duration // WE# high to busy
	Busy time.Duration // Budget for any ready/busy wait
}

func (t Timings) cmd() CycleTiming {
	return CycleTiming{
		LatchEnablePreDelay:   t.CLH,
		LatchEnablePostDelay:  t.CLS,
		ReadyPostDelay:        t.RR,
		LatchDisablePreDelay:  t.CLH,
		LatchDisablePostDelay: t.CLS,
	}
}

func (t Timings) addr() CycleTiming {
	return CycleTiming{
		LatchEnablePreDelay:   t.ALH,
		LatchEnablePostDelay:  t.ALS,
		ReadyPostDelay:        t.RR,
		CycleDisablePostDelay: t.WH,
		LatchDisablePreDelay:  t.ALH,
		LatchDisablePostDelay: t.ALS,
	}
}

func (t Timings) ready(ct CycleTiming, scope ReadyScope) CycleTiming {
	switch scope {
	case ReadyThisLUN:
		ct.ReadyThisLUNTimeout = t.Busy
	case ReadyOtherLUNs:
		ct.ReadyOtherLUNsTimeout = t.Busy
	case ReadyAllLUNs:
		ct.ReadyThisLUNTimeout = t.Busy
		ct.ReadyOtherLUNsTimeout = t.Busy
	}
	return ct
}

// CmdWrite is the timing of a command cycle with no ready wait.
func (t Timings) CmdWrite() CycleTiming {
	return t.cmd()
}

// CmdWriteReady is a command cycle preceded by a ready wait.
func (t Timings) CmdWriteReady(scope ReadyScope) CycleTiming {
	return t.ready(t.cmd(), scope)
}

// CmdWritePostDelay is a command cycle followed by tWB.
func (t Timings) CmdWritePostDelay() CycleTiming {
	ct := t.cmd()
	ct.PostDelay = t.WB
	return ct
}

// CmdWritePostDelayReady is a ready wait, a command cycle, then tWB. When
// waiting on all LUNs the latch release delays already count toward tWB.
func (t Timings) CmdWritePostDelayReady(scope ReadyScope) CycleTiming {
	ct := t.ready(t.CmdWritePostDelay(), scope)
	if scope == ReadyAllLUNs {
		ct.PostDelay = nonNegative(t.WB - (t.CLH + t.CLS))
	}
	return ct
}

// AddrWrite is the timing of address cycles.
func (t Timings) AddrWrite() CycleTiming {
	return t.addr()
}

// AddrWritePostDelay is address cycles followed by the remainder of tWB.
func (t Timings) AddrWritePostDelay() CycleTiming {
	ct := t.addr()
	ct.PostDelay = nonNegative(t.WB - (t.ALH + t.ALS))
	return ct
}

// RawWrite is the timing of a data-in burst.
func (t Timings) RawWrite() CycleTiming {
	return CycleTiming{
		ReadyPostDelay:        t.RR,
		CycleDisablePostDelay: t.WH,
	}
}

// RawWritePostDelay is a data-in burst followed by tWB.
func (t Timings) RawWritePostDelay() CycleTiming {
	ct := t.RawWrite()
	ct.PostDelay = t.WB
	return ct
}

// RawRead is the timing of a data-out burst.
func (t Timings) RawRead() CycleTiming {
	return CycleTiming{
		ReadyPostDelay:        t.RR,
		CycleEnablePostDelay:  t.REA,
		CycleDisablePostDelay: t.REH,
	}
}

// RawReadReady is a data-out burst that first waits for this LUN.
func (t Timings) RawReadReady() CycleTiming {
	return t.ready(t.RawRead(), ReadyThisLUN)
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
