package nand

import (
	"time"

	"github.com/ardnew/softnand/bus/sim"
	"github.com/ardnew/softnand/deadline"
)

var testTimings = Timings{
	CLH:  5 * time.Nanosecond,
	CLS:  12 * time.Nanosecond,
	ALH:  5 * time.Nanosecond,
	ALS:  12 * time.Nanosecond,
	WH:   10 * time.Nanosecond,
	REA:  20 * time.Nanosecond,
	REH:  10 * time.Nanosecond,
	RR:   20 * time.Nanosecond,
	WB:   100 * time.Nanosecond,
	Busy: time.Millisecond,
}

var (
	testRead = &Command{
		Name: "read",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWriteReady(ReadyThisLUN), Cycles: CmdWrite(0x00)},
			{Timing: testTimings.AddrWrite(), Cycles: AddrWrite{}},
			{Defined: true, Timing: testTimings.CmdWritePostDelay(), Cycles: CmdWrite(0x30)},
			{Timing: testTimings.RawReadReady(), Cycles: RawRead{}},
		},
	}
	testReadID = &Command{
		Name: "read id",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWrite(), Cycles: CmdWrite(0x90)},
			{Defined: true, Timing: testTimings.AddrWritePostDelay(), Cycles: AddrSingleWrite(0x00)},
			{Timing: testTimings.RawRead(), Cycles: RawRead{}},
		},
	}
	testSignature = &Command{
		Name: "read signature",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWrite(), Cycles: CmdWrite(0x90)},
			{Defined: true, Timing: testTimings.AddrWritePostDelay(), Cycles: AddrSingleWrite(0x20)},
			{Timing: testTimings.RawRead(), Cycles: RawRead{}},
		},
	}
	testProgram = &Command{
		Name: "program",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWriteReady(ReadyThisLUN), Cycles: CmdWrite(0x80)},
			{Timing: testTimings.AddrWrite(), Cycles: AddrWrite{}},
			{Timing: testTimings.RawWrite(), Cycles: RawWrite{}},
			{Defined: true, Timing: testTimings.CmdWritePostDelay(), Cycles: CmdWrite(0x10)},
		},
	}
	testErase = &Command{
		Name: "erase",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWriteReady(ReadyThisLUN), Cycles: CmdWrite(0x60)},
			{Timing: testTimings.AddrWrite(), Cycles: AddrRowWrite(0)},
			{Defined: true, Timing: testTimings.CmdWritePostDelay(), Cycles: CmdWrite(0xD0)},
		},
	}
	testReset = &Command{
		Name: "reset",
		Steps: []Step{
			{Defined: true, Timing: testTimings.CmdWritePostDelayReady(ReadyAllLUNs), Cycles: CmdWrite(0xFF)},
		},
	}
)

func newTestDevice(cfg sim.Config, opts ...Option) (*Device, *sim.Chip, *deadline.Manual) {
	chip := sim.New(cfg)
	clk := deadline.NewManual(0)
	opts = append([]Option{WithClock(clk), WithLUNCount(chip.Config().LUNs)}, opts...)
	d := New(chip, opts...)
	spare := chip.Config().PageSize / 33
	d.Geometry = Geometry{
		DataBytesPerPage:  chip.Config().PageSize - spare,
		SpareBytesPerPage: spare,
		PagesPerBlock:     chip.Config().PagesPerBlock,
		BlocksPerLUN:      chip.Config().BlocksPerLUN,
		LUNs:              chip.Config().LUNs,
	}
	return d, chip, clk
}
