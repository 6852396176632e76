package samsung

import (
	"fmt"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/pkg"
)

// MakerCode is the first Read ID byte of Samsung parts.
const MakerCode = 0xEC

// idBytes is how many Read ID bytes Decode consumes.
const idBytes = 5

// Chip is the organization packed into a Samsung Read ID response.
type Chip struct {
	MakerCode  byte
	DeviceCode byte

	ChipCount         int  // Internal chips per CE#
	CellLevel         int  // 2 for SLC, 4 for MLC
	SimultaneousPages int  // Pages programmed together
	InterleaveProgram bool // Interleaved program across chips
	CacheProgram      bool

	DataBytesPerPage   int
	SpareBytesPer512   int
	DataBytesPerBlock  int
	Width              bus.Width
	SerialAccessTimeNs int

	PlaneCount     int
	BlocksPerPlane int
}

var (
	chipCounts  = [4]int{1, 2, 4, 8}
	cellLevels  = [4]int{2, 4, 8, 16}
	simulPages  = [4]int{1, 2, 4, 8}
	pageSizes   = [4]int{1024, 2048, 4096, 8192}
	blockSizes  = [4]int{64 << 10, 128 << 10, 256 << 10, 512 << 10}
	planeCounts = [4]int{1, 2, 4, 8}
	spareSizes  = [2]int{8, 16}
	busWidths   = [2]bus.Width{bus.Width8, bus.Width16}
)

// Decode expands the Read ID bytes of a Samsung part. At least five bytes
// are required.
func Decode(id []byte) (Chip, error) {
	if len(id) < idBytes {
		return Chip{}, fmt.Errorf("%w: %d of %d bytes", pkg.ErrIDTooShort, len(id), idBytes)
	}
	c := Chip{
		MakerCode:  id[0],
		DeviceCode: id[1],

		ChipCount:         chipCounts[id[2]&0x03],
		CellLevel:         cellLevels[(id[2]&0x0C)>>2],
		SimultaneousPages: simulPages[(id[2]&0x30)>>4],
		InterleaveProgram: id[2]&0x40 != 0,
		CacheProgram:      id[2]&0x80 != 0,

		DataBytesPerPage:  pageSizes[id[3]&0x03],
		SpareBytesPer512:  spareSizes[(id[3]&0x04)>>2],
		DataBytesPerBlock: blockSizes[(id[3]&0x30)>>4],
		Width:             busWidths[(id[3]&0x40)>>6],

		PlaneCount: planeCounts[(id[4]&0x0C)>>2],
	}

	// 0x80 selects the fast serial access grade; 0x08 and 0x88 are reserved.
	c.SerialAccessTimeNs = 50
	if id[3]&0x88 == 0x80 {
		c.SerialAccessTimeNs = 25
	}

	// Plane size starts at 64 Mbit and doubles per step.
	planeBytes := (8 << 20) << ((id[4] & 0x70) >> 4)
	c.BlocksPerPlane = planeBytes / c.DataBytesPerBlock

	if c.MakerCode != MakerCode {
		pkg.LogWarn(pkg.ComponentSamsung, "maker code is not Samsung", "maker", fmt.Sprintf("%#02x", c.MakerCode))
	}
	return c, nil
}

// SpareBytesPerPage returns the spare area size of one page.
func (c Chip) SpareBytesPerPage() int {
	return c.SpareBytesPer512 * c.DataBytesPerPage / 512
}

// PagesPerBlock returns the number of pages in one block.
func (c Chip) PagesPerBlock() int {
	return c.DataBytesPerBlock / c.DataBytesPerPage
}

// BlocksPerLUN returns the number of blocks across all planes.
func (c Chip) BlocksPerLUN() int {
	return c.BlocksPerPlane * c.PlaneCount
}
