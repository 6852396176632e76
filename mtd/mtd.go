package mtd

import (
	"context"
	"fmt"

	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// PowerState is the argument of Power.
type PowerState uint8

// Power states.
const (
	PowerUp PowerState = iota
	PowerDown
)

// String returns the power state name.
func (p PowerState) String() string {
	switch p {
	case PowerUp:
		return "up"
	case PowerDown:
		return "down"
	default:
		return fmt.Sprintf("Unknown Power State (%d)", p)
	}
}

// Device is a NAND device driven through a command table.
//
// A Device is not safe for concurrent use.
type Device struct {
	dev    *nand.Device
	cmds   *nand.CommandSet
	cfg    config
	bounce []byte

	sectorCount    int
	pageSize       int
	pagesPerSector int
}

// New wraps dev, issuing commands from cmds.
func New(dev *nand.Device, cmds *nand.CommandSet, opts ...Option) *Device {
	m := &Device{dev: dev, cmds: cmds}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	if m.cfg.bounce > 0 {
		m.bounce = make([]byte, m.cfg.bounce)
	}
	return m
}

// NAND returns the underlying device.
func (m *Device) NAND() *nand.Device {
	return m.dev
}

// Init brings the NAND device up if a profile was given and it is not
// ready yet, then publishes the sector layout.
func (m *Device) Init() error {
	if m.dev == nil || m.cmds == nil {
		return fmt.Errorf("%w: no device or command table", pkg.ErrInvalidParameter)
	}
	if !m.dev.Ready() && m.cfg.profile != nil {
		if err := nand.Init(m.dev, *m.cfg.profile); err != nil {
			return fmt.Errorf("%w: init: %w", pkg.ErrIO, err)
		}
	}
	if !m.dev.Ready() {
		return fmt.Errorf("%w: %w", pkg.ErrIO, pkg.ErrNotReady)
	}

	if w := m.dev.DataWidth.Bytes(); len(m.bounce)%w != 0 {
		m.bounce = make([]byte, len(m.bounce)+w-len(m.bounce)%w)
	}

	g := m.dev.Geometry
	m.sectorCount = g.BlockCount()
	m.pageSize = g.PageSize()
	m.pagesPerSector = g.PagesPerBlock
	pkg.LogDebug(pkg.ComponentMTD, "initialized",
		"sectors", m.sectorCount, "page_size", m.pageSize, "pages_per_sector", m.pagesPerSector)
	return nil
}

// SectorCount returns the number of erase sectors (blocks).
func (m *Device) SectorCount() int { return m.sectorCount }

// PageSize returns the bytes of one page including spare.
func (m *Device) PageSize() int { return m.pageSize }

// PagesPerSector returns the pages in one sector.
func (m *Device) PagesPerSector() int { return m.pagesPerSector }

func (m *Device) ready() error {
	if m.dev == nil || !m.dev.Ready() || m.pageSize == 0 {
		return pkg.ErrNotReady
	}
	return nil
}

// ReadPage reads up to len(buf) bytes of page starting at offset. The read
// stops at the end of the page. On a 16-bit device offset must be even.
// Returns the bytes read.
func (m *Device) ReadPage(buf []byte, page, offset int) (int, error) {
	return m.transfer(OpRead, m.cmds.Read, buf, page, offset)
}

// WritePage programs up to len(buf) bytes into page starting at offset.
// The write stops at the end of the page. On a 16-bit device offset must be
// even. Returns the bytes programmed.
func (m *Device) WritePage(buf []byte, page, offset int) (int, error) {
	return m.transfer(OpProgram, m.cmds.PageProgram, buf, page, offset)
}

// Read reads len(buf) bytes at flat address addr, crossing pages as
// needed.
func (m *Device) Read(buf []byte, addr int64) (int, error) {
	return m.flat(buf, addr, m.ReadPage)
}

// Write programs len(buf) bytes at flat address addr, crossing pages as
// needed.
func (m *Device) Write(buf []byte, addr int64) (int, error) {
	return m.flat(buf, addr, m.WritePage)
}

func (m *Device) flat(buf []byte, addr int64, fn func([]byte, int, int) (int, error)) (int, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	g := m.dev.Geometry
	if addr < 0 || addr+int64(len(buf)) > g.AllPagesSize() {
		return 0, fmt.Errorf("%w: %d bytes at %#x", pkg.ErrOutOfRange, len(buf), addr)
	}
	n := 0
	for n < len(buf) {
		at := addr + int64(n)
		page, column := g.FlatToRow(at), g.FlatToColumn(at)
		chunk := min(len(buf)-n, m.pageSize-column)
		got, err := fn(buf[n:n+chunk], page, column)
		n += got
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Erase erases by flat address. NAND erases whole blocks only; use
// EraseSector.
func (m *Device) Erase(addr int64, count int) error {
	return fmt.Errorf("%w: erase by address", pkg.ErrNotSupported)
}

// EraseSector erases count blocks starting at block, one chain per block.
// ctx is checked before each block. Returns the blocks erased.
func (m *Device) EraseSector(ctx context.Context, block, count int) (int, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	if block < 0 || count < 0 || block+count > m.sectorCount {
		return 0, fmt.Errorf("%w: blocks %d+%d of %d", pkg.ErrOutOfRange, block, count, m.sectorCount)
	}
	cmd := m.cmds.BlockErase
	addr := cmd.Find(nand.KindAddrRowWrite)
	if addr < 0 {
		return 0, fmt.Errorf("%w: %s has no row address step", pkg.ErrCmdInvalid, cmd.Name)
	}

	g := m.dev.Geometry
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		b := block + i
		lun, row := g.BlockLocation(b)
		ov := nand.NewOverride(cmd).Define(addr, nand.AddrRowWrite(row)).Command()
		if _, resp := m.dev.Run(cmd, nand.Params{LUN: lun, Override: ov}); !resp.OK() {
			m.dev.Deselect(lun)
			return i, fmt.Errorf("%w: erase block %d: %w", pkg.ErrIO, b, resp.Err())
		}
		if err := m.checkStatus(lun, OpErase, b); err != nil {
			return i, err
		}
		if m.cfg.progress != nil {
			m.cfg.progress(Progress{Op: OpErase, Index: b, Done: i + 1, Total: count})
		}
	}
	pkg.LogDebug(pkg.ComponentMTD, "erased", "block", block, "count", count)
	return count, nil
}

// Power asserts (PowerUp) or releases (PowerDown) the chip enable of
// every LUN.
func (m *Device) Power(state PowerState) error {
	if m.dev == nil {
		return pkg.ErrNotReady
	}
	for lun := 0; lun < m.dev.Geometry.LUNs; lun++ {
		switch state {
		case PowerUp:
			m.dev.Select(lun)
		case PowerDown:
			m.dev.Deselect(lun)
		default:
			return fmt.Errorf("%w: power %v", pkg.ErrInvalidParameter, state)
		}
	}
	return nil
}

// checkStatus reads the status of lun after a program or erase.
func (m *Device) checkStatus(lun int, op Op, index int) error {
	if m.cmds.ReadStatus == nil {
		return nil
	}
	status, err := m.dev.ReadStatus(lun, m.cmds.ReadStatus)
	if err != nil {
		return fmt.Errorf("%w: %s %d: status: %w", pkg.ErrIO, op, index, err)
	}
	if status&nand.StatusFail != 0 {
		pkg.LogWarn(pkg.ComponentMTD, "operation failed", "op", op, "index", index, "status", fmt.Sprintf("%#02x", status))
		return fmt.Errorf("%w: %s %d: %w", pkg.ErrIO, op, index, pkg.ResponseWriteError.Err())
	}
	return nil
}
