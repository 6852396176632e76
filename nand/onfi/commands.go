package onfi

import (
	"sync"

	"github.com/ardnew/softnand/nand"
)

// Opcodes of the mandatory ONFI command set.
const (
	OpRead           = 0x00
	OpReadConfirm    = 0x30
	OpPageProgram    = 0x80
	OpProgramConfirm = 0x10
	OpBlockErase     = 0x60
	OpEraseConfirm   = 0xD0
	OpReadStatus     = 0x70
	OpReadID         = 0x90
	OpReadParamPage  = 0xEC
	OpReset          = 0xFF
)

// Read ID address bytes.
const (
	AddrJEDECID   = 0x00
	AddrSignature = 0x20
)

// Commands returns the ONFI command table built from Timings. The table is
// built once and shared; its templates must not be modified.
func Commands() *nand.CommandSet {
	return commands()
}

var commands = sync.OnceValue(func() *nand.CommandSet {
	return CommandsWith(Timings)
})

// CommandsWith returns a new ONFI command table built from t.
func CommandsWith(t nand.Timings) *nand.CommandSet {
	return &nand.CommandSet{
		Read: &nand.Command{
			Name: "read",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpRead)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrWrite{}},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(OpReadConfirm)},
				{Timing: t.RawReadReady(), Cycles: nand.RawRead{}},
			},
		},
		ReadID: &nand.Command{
			Name: "read id",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpReadID)},
				{Defined: true, Timing: t.AddrWritePostDelay(), Cycles: nand.AddrSingleWrite(AddrJEDECID)},
				{Timing: t.RawRead(), Cycles: nand.RawRead{}},
			},
		},
		ReadSignature: &nand.Command{
			Name: "read signature",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpReadID)},
				{Defined: true, Timing: t.AddrWritePostDelay(), Cycles: nand.AddrSingleWrite(AddrSignature)},
				{Timing: t.RawRead(), Cycles: nand.RawRead{}},
			},
		},
		ReadParameterPage: &nand.Command{
			Name: "read parameter page",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpReadParamPage)},
				{Defined: true, Timing: t.AddrWritePostDelay(), Cycles: nand.AddrSingleWrite(0x00)},
				{Timing: t.RawReadReady(), Cycles: nand.RawRead{}},
			},
		},
		PageProgram: &nand.Command{
			Name: "page program",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpPageProgram)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrWrite{}},
				{Timing: t.RawWrite(), Cycles: nand.RawWrite{}},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(OpProgramConfirm)},
			},
		},
		BlockErase: &nand.Command{
			Name: "block erase",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpBlockErase)},
				{Timing: t.AddrWrite(), Cycles: nand.AddrRowWrite(0)},
				{Defined: true, Timing: t.CmdWritePostDelay(), Cycles: nand.CmdWrite(OpEraseConfirm)},
			},
		},
		ReadStatus: &nand.Command{
			Name: "read status",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWriteReady(nand.ReadyThisLUN), Cycles: nand.CmdWrite(OpReadStatus)},
				{Timing: t.RawRead(), Cycles: nand.RawRead{}},
			},
		},
		Reset: &nand.Command{
			Name: "reset",
			Steps: []nand.Step{
				{Defined: true, Timing: t.CmdWritePostDelayReady(nand.ReadyAllLUNs), Cycles: nand.CmdWrite(OpReset)},
			},
		},
	}
}
