package samsung

import (
	"sync"

	"github.com/ardnew/softnand/nand"
)

// Commands returns the Samsung command table built from Timings. These
// parts have no signature or parameter page commands. The table is shared
// and must not be modified.
func Commands() *nand.CommandSet {
	return commands()
}

var commands = sync.OnceValue(func() *nand.CommandSet {
	t := Timings
	return &nand.CommandSet{
		Read: &nand.Command{
			Name: "read",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(0x00)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrWrite{}},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(0x30)},
				{Timing: t.RawReadReady(), Cycles: nand.RawRead{}},
			},
		},
		ReadID: &nand.Command{
			Name: "read id",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(0x90)},
				{Defined: true, Timing: t.AddrWritePostDelay(), Cycles: nand.AddrSingleWrite(0x00)},
				{Timing: t.RawRead(), Cycles: nand.RawRead{}},
			},
		},
		PageProgram: &nand.Command{
			Name: "page program",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(0x80)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrWrite{}},
				{Timing: t.RawWrite(), Cycles: nand.RawWrite{}},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(0x10)},
			},
		},
		BlockErase: &nand.Command{
			Name: "block erase",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(0x60)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrRowWrite(0)},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(0xD0)},
			},
		},
		ReadStatus: &nand.Command{
			Name: "read status",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(0x70)},
				{Timing: t.RawRead(), Cycles: nand.RawRead{}},
			},
		},
		Reset: &nand.Command{
			Name: "reset",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWritePostDelayReady(nand.ReadyAllLUNs), Cycles: nand.CmdWrite(0xFF)},
			},
		},
	}
})
