package nand

import "testing"

func TestGeometry(t *testing.T) {
	g := Geometry{
		DataBytesPerPage:  2048,
		SpareBytesPerPage: 64,
		PagesPerBlock:     64,
		BlocksPerLUN:      1024,
		LUNs:              2,
	}

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"PageSize", int64(g.PageSize()), 2112},
		{"BlockSize", int64(g.BlockSize()), 2112 * 64},
		{"PagesPerLUN", int64(g.PagesPerLUN()), 65536},
		{"AllPagesCount", int64(g.AllPagesCount()), 131072},
		{"BlockCount", int64(g.BlockCount()), 2048},
		{"AllDataBytes", g.AllDataBytes(), 2048 * 131072},
		{"AllSpareBytes", g.AllSpareBytes(), 64 * 131072},
		{"AllPagesSize", g.AllPagesSize(), 2112 * 131072},
		{"FlatToColumn", int64(g.FlatToColumn(2112*3 + 17)), 17},
		{"FlatToRow", int64(g.FlatToRow(2112*3 + 17)), 3},
		{"ToFlat", g.ToFlat(3, 17), 2112*3 + 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if !g.Valid() {
		t.Error("Valid() = false, want true")
	}
	if (Geometry{LUNs: 1}).Valid() {
		t.Error("Valid() on empty geometry = true, want false")
	}
}

func TestGeometry_Locations(t *testing.T) {
	g := Geometry{DataBytesPerPage: 512, PagesPerBlock: 32, BlocksPerLUN: 8, LUNs: 2}

	tests := []struct {
		name    string
		fn      func(int) (int, int)
		in      int
		wantLUN int
		wantRow int
	}{
		{"first page", g.PageLocation, 0, 0, 0},
		{"last page of lun 0", g.PageLocation, 255, 0, 255},
		{"first page of lun 1", g.PageLocation, 256, 1, 0},
		{"block 3", g.BlockLocation, 3, 0, 96},
		{"block 9", g.BlockLocation, 9, 1, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lun, row := tt.fn(tt.in)
			if lun != tt.wantLUN || row != tt.wantRow {
				t.Errorf("location(%d) = (%d, %d), want (%d, %d)", tt.in, lun, row, tt.wantLUN, tt.wantRow)
			}
		})
	}

	var empty Geometry
	if got := empty.FlatToRow(100); got != 0 {
		t.Errorf("FlatToRow() on empty geometry = %d, want 0", got)
	}
}
