package nand

// Geometry is the array organization of a NAND device.
type Geometry struct {
	DataBytesPerPage  int
	SpareBytesPerPage int
	PagesPerBlock     int
	BlocksPerLUN      int
	LUNs              int
	BadBlocksPerLUN   int
	BitsPerCell       int
	ProgramsPerPage   int
}

// PageSize returns the bytes of one page including spare.
func (g Geometry) PageSize() int {
	return g.DataBytesPerPage + g.SpareBytesPerPage
}

// BlockSize returns the bytes of one block including spare.
func (g Geometry) BlockSize() int {
	return g.PageSize() * g.PagesPerBlock
}

// PagesPerLUN returns the number of pages addressed by one LUN.
func (g Geometry) PagesPerLUN() int {
	return g.PagesPerBlock * g.BlocksPerLUN
}

// AllPagesCount returns the number of pages across all LUNs.
func (g Geometry) AllPagesCount() int {
	return g.PagesPerLUN() * g.LUNs
}

// BlockCount returns the number of blocks across all LUNs.
func (g Geometry) BlockCount() int {
	return g.BlocksPerLUN * g.LUNs
}

// AllDataBytes returns the data capacity across all LUNs.
func (g Geometry) AllDataBytes() int64 {
	return int64(g.DataBytesPerPage) * int64(g.AllPagesCount())
}

// AllSpareBytes returns the spare capacity across all LUNs.
func (g Geometry) AllSpareBytes() int64 {
	return int64(g.SpareBytesPerPage) * int64(g.AllPagesCount())
}

// AllPagesSize returns the raw capacity (data plus spare) across all LUNs.
func (g Geometry) AllPagesSize() int64 {
	return g.AllDataBytes() + g.AllSpareBytes()
}

// FlatToColumn returns the column of a flat address, where flat addresses
// count raw page bytes (data plus spare) from the start of the array.
func (g Geometry) FlatToColumn(flat int64) int {
	if g.PageSize() == 0 {
		return 0
	}
	return int(flat % int64(g.PageSize()))
}

// FlatToRow returns the global page number of a flat address.
func (g Geometry) FlatToRow(flat int64) int {
	if g.PageSize() == 0 {
		return 0
	}
	return int(flat / int64(g.PageSize()))
}

// ToFlat returns the flat address of a column within a global page.
func (g Geometry) ToFlat(row, column int) int64 {
	return int64(row)*int64(g.PageSize()) + int64(column)
}

// PageLocation splits a global page number into the LUN that holds it and
// the row address within that LUN.
func (g Geometry) PageLocation(page int) (lun, row int) {
	per := g.PagesPerLUN()
	if per == 0 {
		return 0, page
	}
	return page / per, page % per
}

// BlockLocation splits a global block number into its LUN and the row
// address of the block's first page.
func (g Geometry) BlockLocation(block int) (lun, row int) {
	if g.BlocksPerLUN == 0 {
		return 0, 0
	}
	return block / g.BlocksPerLUN, (block % g.BlocksPerLUN) * g.PagesPerBlock
}

// Valid reports whether every dimension needed for addressing is set.
func (g Geometry) Valid() bool {
	return g.DataBytesPerPage > 0 && g.PagesPerBlock > 0 &&
		g.BlocksPerLUN > 0 && g.LUNs > 0
}
