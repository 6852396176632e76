package mtd

import (
	"fmt"

	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// transfer runs one page read or program chain.
func (m *Device) transfer(op Op, cmd *nand.Command, buf []byte, page, offset int) (int, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	g := m.dev.Geometry
	if page < 0 || page >= g.AllPagesCount() || offset < 0 || offset >= m.pageSize {
		return 0, fmt.Errorf("%w: page %d offset %d", pkg.ErrOutOfRange, page, offset)
	}
	if w := m.dev.DataWidth.Bytes(); offset%w != 0 {
		return 0, fmt.Errorf("%w: offset %d is not on a %d-byte column", pkg.ErrInvalidParameter, offset, w)
	}
	size := min(len(buf), m.pageSize-offset)
	if size == 0 {
		return 0, nil
	}
	addr, raw := cmd.Find(nand.KindAddrWrite), cmd.RawStep()
	if addr < 0 || raw < 0 {
		return 0, fmt.Errorf("%w: %s lacks address or data step", pkg.ErrCmdInvalid, cmd.Name)
	}

	lun, row := g.PageLocation(page)
	xfer := &nand.RawTransfer{Size: size, Buffer: buf[:size]}
	s := &stream{m: m, op: op, page: page, raw: raw, user: buf[:size]}
	if m.bounce != nil {
		xfer.Buffer = m.bounce
	}

	ov := nand.NewOverride(cmd).
		Define(addr, nand.AddrWrite{Column: m.dev.ColumnAddress(offset), Row: uint32(row)})
	if op == OpProgram {
		ov.Define(raw, nand.RawWrite{Transfer: xfer})
	} else {
		ov.Define(raw, nand.RawRead{Transfer: xfer})
	}
	if m.bounce != nil || m.cfg.progress != nil {
		ov.Hooks(s.pre, s.post)
	}

	_, resp := m.dev.Run(cmd, nand.Params{LUN: lun, Override: ov.Command()})
	if !resp.OK() {
		m.dev.Deselect(lun)
		return xfer.Offset, fmt.Errorf("%w: %s page %d: %w", pkg.ErrIO, op, page, resp.Err())
	}
	if op == OpProgram {
		if err := m.checkStatus(lun, op, page); err != nil {
			return xfer.Offset, err
		}
	}
	return xfer.Offset, nil
}

// stream moves chunks between the caller's buffer and the bounce buffer
// and reports progress.
type stream struct {
	m    *Device
	op   Op
	page int
	raw  int
	user []byte
}

func (s *stream) transfer(ctx *nand.HookContext) *nand.RawTransfer {
	if ctx.Index != s.raw {
		return nil
	}
	return nand.Transfer(ctx.Step.Cycles)
}

func (s *stream) pre(ctx *nand.HookContext) {
	x := s.transfer(ctx)
	if x == nil || s.m.bounce == nil || s.op != OpProgram {
		return
	}
	copy(s.m.bounce, s.user[x.Offset:])
}

func (s *stream) post(ctx *nand.HookContext) {
	x := s.transfer(ctx)
	if x == nil {
		return
	}
	if s.m.bounce != nil && s.op == OpRead {
		copy(s.user[x.Offset-x.Capacity:x.Offset], s.m.bounce[:x.Capacity])
	}
	if s.m.cfg.progress != nil {
		s.m.cfg.progress(Progress{Op: s.op, Index: s.page, Done: x.Offset, Total: x.Size})
	}
}
