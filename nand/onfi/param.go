package onfi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// Signature opens every parameter page copy.
const Signature = "ONFI"

// crcOffset is where the CRC of a copy is stored.
const crcOffset = nand.ParameterPageSize - 2

// Feature bits of ParameterPage.Features.
const (
	Feature16BitBus          = 1 << 0
	FeatureMultiLUN          = 1 << 1
	FeatureNonSequential     = 1 << 2
	FeatureInterleaved       = 1 << 3
	FeatureOddToEvenCopy     = 1 << 4
	FeatureNVDDR             = 1 << 5
	FeatureExtendedParamPage = 1 << 7
)

// ParameterPage is one 256-byte copy of the ONFI parameter page. Fields
// are little-endian on the wire.
type ParameterPage struct {
	// Revision information and features block.
	Signature          [4]byte
	Revision           uint16
	Features           uint16
	OptionalCommands   uint16
	_                  [2]byte
	ExtParamPageLength uint16
	ParamPageCount     uint8
	_                  [17]byte

	// Manufacturer information block.
	Manufacturer [12]byte
	Model        [20]byte
	JEDECID      uint8
	DateCode     uint16
	_            [13]byte

	// Memory organization block.
	DataBytesPerPage         uint32
	SpareBytesPerPage        uint16
	DataBytesPerPartialPage  uint32
	SpareBytesPerPartialPage uint16
	PagesPerBlock            uint32
	BlocksPerLUN             uint32
	LUNCount                 uint8
	AddrCycles               uint8
	BitsPerCell              uint8
	BadBlocksPerLUN          uint16
	BlockEndurance           uint16
	GuaranteedGoodBlocks     uint8
	GuaranteedEndurance      uint16
	ProgramsPerPage          uint8
	PartialPageAttr          uint8
	ECCBits                  uint8
	InterleavedBits          uint8
	InterleavedOps           uint8
	_                        [13]byte

	// Electrical parameters block.
	IOPinCapacitanceMax    uint8
	SDRTimingModes         uint16
	ProgramCacheTimingMode uint16
	TProg                  uint16 // µs
	TBers                  uint16 // µs
	TR                     uint16 // µs
	TCCS                   uint16 // ns
	NVDDRTimingModes       uint8
	NVDDR2TimingModes      uint8
	NVDDRFeatures          uint8
	CLKPinCapacitanceTyp   uint16
	IOPinCapacitanceTyp    uint16
	InputPinCapacitanceTyp uint16
	InputPinCapacitanceMax uint8
	DriverStrengthSupport  uint8
	TIntR                  uint16
	TADL                   uint16
	_                      [8]byte

	// Vendor block.
	VendorRevision uint16
	Vendor         [88]byte

	CRC uint16
}

// Version is an ONFI revision as major*10 + minor.
type Version uint8

// ONFI revisions reported by the revision bitfield.
const (
	VersionUnknown Version = 0
	Version10      Version = 10
	Version20      Version = 20
	Version21      Version = 21
	Version22      Version = 22
	Version23      Version = 23
	Version30      Version = 30
	Version31      Version = 31
	Version32      Version = 32
	Version40      Version = 40
	Version41      Version = 41
	Version42      Version = 42
	Version50      Version = 50
)

// revisionBits maps revision bitfield positions to versions, newest first.
var revisionBits = []struct {
	bit     uint
	version Version
}{
	{12, Version50},
	{11, Version42},
	{10, Version41},
	{9, Version40},
	{8, Version32},
	{7, Version31},
	{6, Version30},
	{5, Version23},
	{4, Version22},
	{3, Version21},
	{2, Version20},
	{1, Version10},
}

// String returns the version as "ONFI x.y".
func (v Version) String() string {
	if v == VersionUnknown {
		return "ONFI (unknown revision)"
	}
	return fmt.Sprintf("ONFI %d.%d", v/10, v%10)
}

// Version returns the newest revision the page claims to support.
func (p *ParameterPage) Version() Version {
	for _, r := range revisionBits {
		if p.Revision&(1<<r.bit) != 0 {
			return r.version
		}
	}
	return VersionUnknown
}

// ColumnCycles returns the column address cycle count.
func (p *ParameterPage) ColumnCycles() int {
	return int(p.AddrCycles >> 4)
}

// RowCycles returns the row address cycle count.
func (p *ParameterPage) RowCycles() int {
	return int(p.AddrCycles & 0x0F)
}

// ManufacturerName returns the manufacturer with padding removed.
func (p *ParameterPage) ManufacturerName() string {
	return trim(p.Manufacturer[:])
}

// ModelName returns the model with padding removed.
func (p *ParameterPage) ModelName() string {
	return trim(p.Model[:])
}

// Width returns the data bus width the page declares.
func (p *ParameterPage) Width() bus.Width {
	if p.Features&Feature16BitBus != 0 {
		return bus.Width16
	}
	return bus.Width8
}

func trim(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}

// ValidCRC reports whether the CRC stored in page matches its contents.
func ValidCRC(page []byte) bool {
	if len(page) < nand.ParameterPageSize {
		return false
	}
	return CRC16(page[:crcOffset]) == binary.LittleEndian.Uint16(page[crcOffset:])
}

// Parse selects and decodes one copy of the parameter page from b, which
// holds consecutive 256-byte copies. The first copy with a valid CRC wins;
// otherwise the first copy carrying the signature is used.
func Parse(b []byte) (*ParameterPage, error) {
	if len(b) < nand.ParameterPageSize {
		return nil, fmt.Errorf("%w: %d bytes", pkg.ErrParameterPageTooShort, len(b))
	}
	copies := len(b) / nand.ParameterPageSize

	chosen := -1
	for i := 0; i < copies; i++ {
		if ValidCRC(b[i*nand.ParameterPageSize:]) {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		for i := 0; i < copies; i++ {
			if string(b[i*nand.ParameterPageSize:][:len(Signature)]) == Signature {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			return nil, fmt.Errorf("%w: no copy of %d carries %q", pkg.ErrBadSignature, copies, Signature)
		}
		pkg.LogWarn(pkg.ComponentONFI, "using signed parameter page copy",
			"copy", chosen, "copies", copies, "err", pkg.ErrCRC)
	}

	start := chosen * nand.ParameterPageSize
	var p ParameterPage
	r := bytes.NewReader(b[start : start+nand.ParameterPageSize])
	if err := binary.Read(r, binary.LittleEndian, &p); err != nil {
		return nil, fmt.Errorf("decode parameter page: %w", err)
	}
	pkg.LogDebug(pkg.ComponentONFI, "parameter page decoded",
		"copy", chosen, "version", p.Version(), "crc", fmt.Sprintf("%#04x", p.CRC))
	return &p, nil
}

// Apply fills the identity and geometry of d from p.
func (p *ParameterPage) Apply(d *nand.Device) {
	d.Standard = p.Version().String()
	d.Manufacturer = p.ManufacturerName()
	d.Model = p.ModelName()
	d.DataWidth = p.Width()
	if c := p.ColumnCycles(); c > 0 {
		d.ColumnCycles = c
	}
	if r := p.RowCycles(); r > 0 {
		d.RowCycles = r
	}
	d.Geometry = nand.Geometry{
		DataBytesPerPage:  int(p.DataBytesPerPage),
		SpareBytesPerPage: int(p.SpareBytesPerPage),
		PagesPerBlock:     int(p.PagesPerBlock),
		BlocksPerLUN:      int(p.BlocksPerLUN),
		LUNs:              int(p.LUNCount),
		BadBlocksPerLUN:   int(p.BadBlocksPerLUN),
		BitsPerCell:       int(p.BitsPerCell),
		ProgramsPerPage:   int(p.ProgramsPerPage),
	}
}

// MarshalBinary encodes p as one parameter page copy with a fresh CRC.
func (p *ParameterPage) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(nand.ParameterPageSize)
	if err := binary.Write(&buf, binary.LittleEndian, p); err != nil {
		return nil, fmt.Errorf("encode parameter page: %w", err)
	}
	b := buf.Bytes()
	binary.LittleEndian.PutUint16(b[crcOffset:], CRC16(b[:crcOffset]))
	return b, nil
}

// Synthesize returns an ONFI 1.0 parameter page describing g. It is used to
// configure simulated devices.
func Synthesize(g nand.Geometry, columnCycles, rowCycles int, manufacturer, model string) *ParameterPage {
	p := &ParameterPage{
		Revision:          1 << 1,
		ParamPageCount:    nand.ParameterPageCopies,
		DataBytesPerPage:  uint32(g.DataBytesPerPage),
		SpareBytesPerPage: uint16(g.SpareBytesPerPage),
		PagesPerBlock:     uint32(g.PagesPerBlock),
		BlocksPerLUN:      uint32(g.BlocksPerLUN),
		LUNCount:          uint8(g.LUNs),
		AddrCycles:        uint8(columnCycles&0x0F)<<4 | uint8(rowCycles&0x0F),
		BitsPerCell:       uint8(max(g.BitsPerCell, 1)),
		BadBlocksPerLUN:   uint16(g.BadBlocksPerLUN),
		ProgramsPerPage:   uint8(max(g.ProgramsPerPage, 1)),
	}
	if g.LUNs > 1 {
		p.Features |= FeatureMultiLUN
	}
	copy(p.Signature[:], Signature)
	copy(p.Manufacturer[:], fmt.Sprintf("%-12s", manufacturer))
	copy(p.Model[:], fmt.Sprintf("%-20s", model))
	return p
}
