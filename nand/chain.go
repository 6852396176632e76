package nand

import (
	"errors"
	"runtime"
	"time"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/deadline"
	"github.com/ardnew/softnand/pkg"
)

// Run executes the chain tmpl, patched by params.Override, against lun
// params.LUN and returns the bytes moved together with the response.
//
// The byte count combines control cycles and raw data bytes. On Timeout the
// count reflects the progress made before the wait expired, and the chip
// enable of the LUN is left asserted; callers release it with Deselect.
func (d *Device) Run(tmpl *Command, params Params) (int, pkg.Response) {
	if tmpl == nil || !d.ValidLUN(params.LUN) {
		pkg.LogDebug(pkg.ComponentChain, "invalid chain", "lun", params.LUN, "nil", tmpl == nil)
		return 0, pkg.ResponseCmdInvalid
	}

	ch, err := Merge(tmpl, params.Override)
	if err != nil {
		if errors.Is(err, pkg.ErrChainTooLong) {
			pkg.LogWarn(pkg.ComponentChain, "chain too long", "cmd", tmpl.Name, "err", err)
			return 0, pkg.ResponseChainTooLong
		}
		return 0, pkg.ResponseCmdInvalid
	}

	lun := params.LUN
	d.bus.SetLUNSelect(lun, true)
	d.bus.SetWriteProtect(false)
	d.bus.IdleStrobes()

	ctx := HookContext{Device: d, Command: tmpl, Params: &params}
	n := 0
	for i := 0; i < ch.Length; i++ {
		step := &ch.Steps[i]
		if !step.Defined || step.Cycles == nil {
			continue
		}
		ctx.Index, ctx.Step = i, step
		t := &step.Timing

		d.wait(t.PreDelay)

		var (
			moved int
			resp  pkg.Response
			done  bool
		)
		if step.Kind().Control() {
			moved, resp = d.runControl(&ch, &ctx, lun)
		} else {
			moved, resp, done = d.runRaw(&ch, &ctx, lun)
		}
		n += moved
		if !resp.OK() {
			pkg.LogWarn(pkg.ComponentChain, "chain abandoned",
				"cmd", tmpl.Name, "step", i, "kind", step.Kind(), "lun", lun, "bytes", n, "resp", resp)
			return n, resp
		}
		if done {
			d.bus.SetLUNSelect(lun, false)
			return n, pkg.ResponseOK
		}

		d.wait(t.PostDelay)
	}

	d.bus.SetLUNSelect(lun, false)
	pkg.LogDebug(pkg.ComponentChain, "chain complete", "cmd", tmpl.Name, "lun", lun, "bytes", n)
	return n, pkg.ResponseOK
}

// runControl latches one command or address step.
func (d *Device) runControl(ch *Chain, ctx *HookContext, lun int) (int, pkg.Response) {
	step := ctx.Step
	t := &step.Timing

	d.wait(t.LatchEnablePreDelay)
	if step.Kind() == KindCmdWrite {
		d.bus.SetLatch(bus.LatchCommand)
	} else {
		d.bus.SetLatch(bus.LatchAddress)
	}
	d.wait(t.LatchEnablePostDelay)

	if !d.waitReady(lun, t) {
		d.wait(t.LatchDisablePreDelay)
		d.bus.SetLatch(bus.LatchNeutral)
		d.wait(t.LatchDisablePostDelay)
		return 0, pkg.ResponseTimeout
	}
	d.wait(t.ReadyPostDelay)

	if ch.PreHook != nil {
		ch.PreHook(ctx)
	}

	d.bus.SetWriteMode()
	s := bus.Strobe{EnablePost: t.CycleEnablePostDelay, DisablePost: t.CycleDisablePostDelay}
	n := 0
	switch c := step.Cycles.(type) {
	case CmdWrite:
		n += d.bus.WriteCycle(d.AddrWidth, uint16(c), s)
	case AddrWrite:
		n += d.writeAddress(uint64(c.Column), d.ColumnCycles, s)
		n += d.writeAddress(uint64(c.Row), d.RowCycles, s)
	case AddrColumnWrite:
		n += d.writeAddress(uint64(c), d.ColumnCycles, s)
	case AddrRowWrite:
		n += d.writeAddress(uint64(c), d.RowCycles, s)
	case AddrSingleWrite:
		n += d.bus.WriteCycle(d.AddrWidth, uint16(c), s)
	}

	if ch.PostHook != nil {
		ch.PostHook(ctx)
	}

	d.wait(t.LatchDisablePreDelay)
	d.bus.SetLatch(bus.LatchNeutral)
	d.wait(t.LatchDisablePostDelay)
	return n, pkg.ResponseOK
}

// writeAddress emits cycles address bytes, least significant first.
func (d *Device) writeAddress(v uint64, cycles int, s bus.Strobe) int {
	n := 0
	for i := 0; i < cycles; i++ {
		n += d.bus.WriteCycle(d.AddrWidth, uint16(byte(v>>(8*i))), s)
	}
	return n
}

// runRaw streams one raw step. done reports that the chain ended early
// because the transfer resolved to zero bytes.
func (d *Device) runRaw(ch *Chain, ctx *HookContext, lun int) (n int, resp pkg.Response, done bool) {
	step := ctx.Step
	t := &step.Timing
	xfer := Transfer(step.Cycles)
	if xfer == nil {
		return 0, pkg.ResponseOK, true
	}

	if xfer.Size == SizeUnset && xfer.Hint > 0 {
		xfer.Size = xfer.Hint
	}
	if xfer.Size == SizePage {
		xfer.Size = d.Geometry.PageSize()
	}
	if xfer.Size <= 0 {
		pkg.LogDebug(pkg.ComponentChain, "empty raw transfer", "step", ctx.Index)
		return 0, pkg.ResponseOK, true
	}

	xfer.Offset = 0
	xfer.Seq = 0

	d.wait(t.LatchEnablePreDelay)
	d.bus.SetLatch(bus.LatchNeutral)
	d.wait(t.LatchEnablePostDelay)

	if !d.waitReady(lun, t) {
		return 0, pkg.ResponseTimeout, false
	}
	d.wait(t.ReadyPostDelay)

	s := bus.Strobe{EnablePost: t.CycleEnablePostDelay, DisablePost: t.CycleDisablePostDelay}
	write := step.Kind() == KindRawWrite
	for xfer.capacity() > 0 && xfer.Offset < xfer.Size {
		if ch.PreHook != nil {
			ch.PreHook(ctx)
			if xfer.Offset >= xfer.Size {
				break
			}
		}

		chunk := min(xfer.capacity(), xfer.Size-xfer.Offset)
		if xfer.Buffer != nil {
			chunk = min(chunk, len(xfer.Buffer))
		}
		// Only the last chunk of a 16-bit transfer may end mid-word.
		if w := d.DataWidth.Bytes(); chunk < xfer.Size-xfer.Offset {
			chunk -= chunk % w
			if chunk == 0 {
				pkg.LogWarn(pkg.ComponentChain, "raw chunk narrower than bus word",
					"cmd", ctx.Command.Name, "step", ctx.Index, "capacity", xfer.capacity(), "width", d.DataWidth)
				return n, pkg.ResponseCmdInvalid, false
			}
		}
		if xfer.Buffer != nil {
			if write {
				d.bus.SetWriteMode()
				n += d.writeRaw(xfer.Buffer[:chunk], s)
			} else {
				d.bus.SetReadMode()
				n += d.readRaw(xfer.Buffer[:chunk], s)
				xfer.Capacity = chunk
			}
		}
		xfer.Offset += chunk

		if ch.PostHook != nil {
			ch.PostHook(ctx)
		}
		xfer.Seq++
	}
	return n, pkg.ResponseOK, false
}

// writeRaw drives buf onto the bus and returns the bytes moved. A 16-bit
// bus carries two bytes per cycle, low byte first; an odd final byte is
// padded with 0xFF so the unused half programs nothing.
func (d *Device) writeRaw(buf []byte, s bus.Strobe) int {
	n := 0
	if d.DataWidth == bus.Width16 {
		for i := 0; i < len(buf); i += 2 {
			v := uint16(buf[i]) | 0xFF00
			size := 1
			if i+1 < len(buf) {
				v = uint16(buf[i]) | uint16(buf[i+1])<<8
				size = 2
			}
			if d.bus.WriteCycle(bus.Width16, v, s) > 0 {
				n += size
			}
		}
		return n
	}
	for _, b := range buf {
		n += d.bus.WriteCycle(bus.Width8, uint16(b), s)
	}
	return n
}

// readRaw fills buf from the bus and returns the bytes moved.
func (d *Device) readRaw(buf []byte, s bus.Strobe) int {
	n := 0
	if d.DataWidth == bus.Width16 {
		for i := 0; i < len(buf); i += 2 {
			v, c := d.bus.ReadCycle(bus.Width16, s)
			if c == 0 {
				continue
			}
			buf[i] = byte(v)
			n++
			if i+1 < len(buf) {
				buf[i+1] = byte(v >> 8)
				n++
			}
		}
		return n
	}
	for i := range buf {
		v, c := d.bus.ReadCycle(bus.Width8, s)
		if c == 0 {
			continue
		}
		buf[i] = byte(v)
		n++
	}
	return n
}

// waitReady synchronizes with the ready/busy lines: first lun, then every
// other LUN in index order. Each wait has its own budget and a zero budget
// skips the wait.
func (d *Device) waitReady(lun int, t *CycleTiming) bool {
	if t.ReadyThisLUNTimeout > 0 && !d.pollReady(lun, t.ReadyThisLUNTimeout) {
		pkg.LogWarn(pkg.ComponentChain, "ready timeout", "lun", lun, "timeout", t.ReadyThisLUNTimeout)
		return false
	}
	if t.ReadyOtherLUNsTimeout > 0 {
		for other := 0; other < d.Geometry.LUNs; other++ {
			if other == lun {
				continue
			}
			if !d.pollReady(other, t.ReadyOtherLUNsTimeout) {
				pkg.LogWarn(pkg.ComponentChain, "ready timeout", "lun", other, "waiting", lun, "timeout", t.ReadyOtherLUNsTimeout)
				return false
			}
		}
	}
	return true
}

// pollReady samples the ready/busy line of lun until it asserts or the
// timeout elapses.
func (d *Device) pollReady(lun int, timeout time.Duration) bool {
	dl := deadline.From(d.clock, timeout)
	for {
		if d.bus.Ready(lun) {
			return true
		}
		if deadline.Expired(d.clock, dl) {
			return false
		}
		if d.pollInterval > 0 {
			deadline.Wait(d.clock, d.pollInterval)
		} else {
			runtime.Gosched()
		}
	}
}

func (d *Device) wait(t time.Duration) {
	deadline.Wait(d.clock, t)
}
