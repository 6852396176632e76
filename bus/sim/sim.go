package sim

import (
	"fmt"
	"sync"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/pkg"
)

// Opcodes decoded by the simulated chip.
const (
	OpRead          = 0x00
	OpReadConfirm   = 0x30
	OpProgram       = 0x80
	OpProgramCommit = 0x10
	OpErase         = 0x60
	OpEraseConfirm  = 0xD0
	OpReadStatus    = 0x70
	OpReadID        = 0x90
	OpParameterPage = 0xEC
	OpReset         = 0xFF
)

// Status register bits.
const (
	StatusFail  = 0x01
	StatusReady = 0x40
	StatusWP    = 0x80 // Set when the device is not write protected
)

// Config describes the simulated part.
type Config struct {
	ID            []byte    // Returned by 90h/00h, repeated while read
	Signature     []byte    // Returned by 90h/20h; defaults to "ONFI"
	ParameterPage []byte    // Returned by ECh/00h, repeated while read
	DDR           bool      // Emit every identification byte twice
	Width         bus.Width // Data bus width; defaults to 8
	ColumnCycles  int       // Defaults to 2
	RowCycles     int       // Defaults to 3
	PageSize      int       // Data plus spare bytes; defaults to 2112
	PagesPerBlock int       // Defaults to 64
	BlocksPerLUN  int       // Defaults to 16
	LUNs          int       // Defaults to 1
	BusyPolls     int       // Busy polls after each array operation
}

func (c *Config) normalize() {
	if len(c.Signature) == 0 {
		c.Signature = []byte("ONFI")
	}
	if !c.Width.Valid() {
		c.Width = bus.Width8
	}
	if c.ColumnCycles <= 0 {
		c.ColumnCycles = 2
	}
	if c.RowCycles <= 0 {
		c.RowCycles = 3
	}
	if c.PageSize <= 0 {
		c.PageSize = 2112
	}
	if c.PagesPerBlock <= 0 {
		c.PagesPerBlock = 64
	}
	if c.BlocksPerLUN <= 0 {
		c.BlocksPerLUN = 16
	}
	if c.LUNs <= 0 {
		c.LUNs = 1
	}
}

type lun struct {
	pages      map[int][]byte
	busy       int
	neverReady bool
	status     byte
}

// Chip is a simulated NAND package. It is safe for concurrent use, though a
// command chain is expected to own the chip while it runs.
type Chip struct {
	mu  sync.Mutex
	cfg Config

	luns     []*lun
	selected int
	latch    bus.Latch
	write    bool
	protect  bool
	failNext bool

	op      byte
	addr    []byte
	out     []byte
	outPos  int
	cyclic  bool
	column  int
	row     int
	pageBuf []byte

	events []Event
}

// New returns a chip in its power-on state: every page erased, no LUN
// selected and write protect asserted.
func New(cfg Config) *Chip {
	cfg.normalize()
	c := &Chip{cfg: cfg, selected: -1, protect: true}
	c.luns = make([]*lun, cfg.LUNs)
	for i := range c.luns {
		c.luns[i] = &lun{pages: make(map[int][]byte), status: StatusReady}
	}
	return c
}

// Config returns the normalized configuration of the chip.
func (c *Chip) Config() Config {
	return c.cfg
}

// NeverReady makes the ready/busy line of lun stay busy (or recover).
func (c *Chip) NeverReady(lun int, stuck bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l := c.lun(lun); l != nil {
		l.neverReady = stuck
	}
}

// FailNextOperation makes the next program or erase set the FAIL bit.
func (c *Chip) FailNextOperation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = true
}

// Page returns a copy of the stored page at row of lun. Unwritten pages
// read as erased.
func (c *Chip) Page(lun, row int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, c.cfg.PageSize)
	copy(out, c.page(lun, row))
	return out
}

// SetPage overwrites the stored page at row of lun.
func (c *Chip) SetPage(lun, row int, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := c.lun(lun)
	if l == nil {
		return
	}
	p := erased(c.cfg.PageSize)
	copy(p, data)
	l.pages[row] = p
}

// Selected returns the LUN whose chip enable is asserted, or -1.
func (c *Chip) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Latch returns the current latch mode.
func (c *Chip) Latch() bus.Latch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latch
}

// WriteProtected reports whether WP# is asserted.
func (c *Chip) WriteProtected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protect
}

func (c *Chip) lun(i int) *lun {
	if i < 0 || i >= len(c.luns) {
		return nil
	}
	return c.luns[i]
}

func (c *Chip) page(lunIdx, row int) []byte {
	l := c.lun(lunIdx)
	if l == nil {
		return erased(c.cfg.PageSize)
	}
	if p, ok := l.pages[row]; ok {
		return p
	}
	return erased(c.cfg.PageSize)
}

func erased(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = 0xFF
	}
	return p
}

// WriteCycle implements bus.Transceiver.
func (c *Chip) WriteCycle(w bus.Width, v uint16, _ bus.Strobe) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	v &= w.Mask()
	switch c.latch {
	case bus.LatchCommand:
		c.record(EventCommand, v)
		c.command(byte(v))
	case bus.LatchAddress:
		c.record(EventAddress, v)
		c.address(byte(v))
	default:
		c.record(EventDataWrite, v)
		c.data(w, v)
	}
	return 1
}

// ReadCycle implements bus.Transceiver.
func (c *Chip) ReadCycle(w bus.Width, _ bus.Strobe) (uint16, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := uint16(c.next())
	if w == bus.Width16 {
		v |= uint16(c.next()) << 8
	}
	c.record(EventDataRead, v)
	return v, 1
}

// SetWriteMode implements bus.Transceiver.
func (c *Chip) SetWriteMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write = true
}

// SetReadMode implements bus.Transceiver.
func (c *Chip) SetReadMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write = false
}

// SetLatch implements bus.Transceiver.
func (c *Chip) SetLatch(l bus.Latch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latch = l
}

// SetLUNSelect implements bus.Transceiver.
func (c *Chip) SetLUNSelect(lunIdx int, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enabled {
		c.selected = lunIdx
		c.record(EventSelect, uint16(lunIdx))
		return
	}
	if c.selected == lunIdx {
		c.selected = -1
	}
	c.record(EventDeselect, uint16(lunIdx))
}

// SetWriteProtect implements bus.Transceiver.
func (c *Chip) SetWriteProtect(protect bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.protect = protect
	for _, l := range c.luns {
		if protect {
			l.status &^= StatusWP
		} else {
			l.status |= StatusWP
		}
	}
}

// IdleStrobes implements bus.Transceiver.
func (c *Chip) IdleStrobes() {}

// Ready implements bus.Transceiver. Each poll of a busy LUN consumes one
// unit of its busy budget.
func (c *Chip) Ready(lunIdx int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := c.lun(lunIdx)
	if l == nil || l.neverReady {
		return false
	}
	if l.busy > 0 {
		l.busy--
		return false
	}
	l.status |= StatusReady
	return true
}

func (c *Chip) current() *lun {
	return c.lun(c.selected)
}

func (c *Chip) setBusy() {
	if l := c.current(); l != nil && c.cfg.BusyPolls > 0 {
		l.busy = c.cfg.BusyPolls
		l.status &^= StatusReady
	}
}

func (c *Chip) emit(src []byte, ddr, cyclic bool) {
	if ddr {
		doubled := make([]byte, 0, 2*len(src))
		for _, b := range src {
			doubled = append(doubled, b, b)
		}
		src = doubled
	}
	c.out = src
	c.outPos = 0
	c.cyclic = cyclic
}

func (c *Chip) next() byte {
	if c.outPos >= len(c.out) {
		if !c.cyclic || len(c.out) == 0 {
			return 0xFF
		}
		c.outPos = 0
	}
	b := c.out[c.outPos]
	c.outPos++
	return b
}

func (c *Chip) command(op byte) {
	if c.current() == nil {
		pkg.LogDebug(pkg.ComponentBus, "sim command with no LUN selected", "op", fmt.Sprintf("%#02x", op))
		return
	}
	switch op {
	case OpReset:
		c.op, c.addr, c.out = 0, nil, nil
		c.current().status = StatusReady | c.wpBit()
		c.setBusy()
	case OpRead, OpProgram, OpErase, OpReadID, OpParameterPage:
		c.op = op
		c.addr = c.addr[:0]
		c.out = nil
		if op == OpProgram {
			c.pageBuf = nil
		}
	case OpReadConfirm:
		if c.op != OpRead {
			return
		}
		c.decodeAddress(true)
		p := c.page(c.selected, c.row)
		if c.column < len(p) {
			c.emit(p[c.column:], false, false)
		} else {
			c.emit(nil, false, false)
		}
		c.setBusy()
	case OpProgramCommit:
		if c.op != OpProgram {
			return
		}
		c.commitProgram()
		c.setBusy()
	case OpEraseConfirm:
		if c.op != OpErase {
			return
		}
		c.decodeAddress(false)
		c.eraseBlock()
		c.setBusy()
	case OpReadStatus:
		c.emit([]byte{c.current().status}, false, true)
	default:
		pkg.LogDebug(pkg.ComponentBus, "sim ignored opcode", "op", fmt.Sprintf("%#02x", op))
	}
}

func (c *Chip) wpBit() byte {
	if c.protect {
		return 0
	}
	return StatusWP
}

func (c *Chip) address(b byte) {
	if c.current() == nil {
		return
	}
	c.addr = append(c.addr, b)
	switch c.op {
	case OpReadID:
		switch b {
		case 0x20:
			c.emit(c.cfg.Signature, c.cfg.DDR, true)
		default:
			c.emit(c.cfg.ID, c.cfg.DDR, true)
		}
	case OpParameterPage:
		c.emit(c.cfg.ParameterPage, c.cfg.DDR, true)
	case OpProgram:
		if len(c.addr) == c.cfg.ColumnCycles+c.cfg.RowCycles {
			c.decodeAddress(true)
		}
	}
}

// decodeAddress splits the collected address cycles, least significant
// byte first, into column and row.
func (c *Chip) decodeAddress(withColumn bool) {
	col, row := 0, 0
	i := 0
	if withColumn {
		for n := 0; n < c.cfg.ColumnCycles && i < len(c.addr); n++ {
			col |= int(c.addr[i]) << (8 * n)
			i++
		}
	}
	for n := 0; n < c.cfg.RowCycles && i < len(c.addr); n++ {
		row |= int(c.addr[i]) << (8 * n)
		i++
	}
	c.column = col * c.cfg.Width.Bytes()
	c.row = row
}

func (c *Chip) data(w bus.Width, v uint16) {
	if c.op != OpProgram || c.current() == nil {
		return
	}
	c.pageBuf = append(c.pageBuf, byte(v))
	if w == bus.Width16 {
		c.pageBuf = append(c.pageBuf, byte(v>>8))
	}
}

func (c *Chip) fail() bool {
	l := c.current()
	if c.failNext || c.protect {
		c.failNext = false
		l.status |= StatusFail
		return true
	}
	l.status &^= StatusFail
	return false
}

func (c *Chip) commitProgram() {
	if c.fail() {
		return
	}
	if c.row >= c.cfg.PagesPerBlock*c.cfg.BlocksPerLUN {
		return
	}
	l := c.current()
	p := make([]byte, c.cfg.PageSize)
	copy(p, c.page(c.selected, c.row))
	for i, b := range c.pageBuf {
		if c.column+i >= len(p) {
			break
		}
		p[c.column+i] &= b
	}
	l.pages[c.row] = p
}

func (c *Chip) eraseBlock() {
	if c.fail() {
		return
	}
	first := c.row - c.row%c.cfg.PagesPerBlock
	l := c.current()
	for r := first; r < first+c.cfg.PagesPerBlock; r++ {
		delete(l.pages, r)
	}
}
