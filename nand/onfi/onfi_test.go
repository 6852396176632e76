package onfi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/bus/sim"
	"github.com/ardnew/softnand/deadline"
	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// testPage returns a parameter page for a 2 KiB page, 64-page block part
// with a valid CRC.
func testPage(t *testing.T, model string) []byte {
	t.Helper()
	p := ParameterPage{
		Revision:          1<<9 | 1<<5 | 1<<1,
		DataBytesPerPage:  2048,
		SpareBytesPerPage: 64,
		PagesPerBlock:     64,
		BlocksPerLUN:      16,
		LUNCount:          1,
		AddrCycles:        0x23,
		BitsPerCell:       1,
		BadBlocksPerLUN:   2,
		ProgramsPerPage:   4,
		TProg:             600,
		TBers:             3000,
		TR:                25,
		TCCS:              100,
	}
	copy(p.Signature[:], Signature)
	copy(p.Manufacturer[:], "MICRON      ")
	copy(p.Model[:], model)

	b, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	return b
}

func TestParameterPage_Size(t *testing.T) {
	if got := binary.Size(ParameterPage{}); got != nand.ParameterPageSize {
		t.Errorf("binary.Size(ParameterPage{}) = %d, want %d", got, nand.ParameterPageSize)
	}
}

func TestCRC16(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint16
	}{
		{"empty", nil, 0x4F4E},
		{"signature", []byte("ONFI"), 0x15B3},
		{"zero page", make([]byte, crcOffset), 0x3EEE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CRC16(tt.in); got != tt.want {
				t.Errorf("CRC16() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	good := func(model string) []byte { return testPage(t, model) }
	badCRC := func(model string) []byte {
		b := testPage(t, model)
		b[crcOffset] ^= 0xFF
		return b
	}
	unsigned := func(model string) []byte {
		b := badCRC(model)
		copy(b, "XXXX")
		return b
	}
	join := func(pages ...[]byte) []byte { return bytes.Join(pages, nil) }

	tests := []struct {
		name      string
		in        []byte
		wantModel string
		wantErr   error
	}{
		{"first copy", join(good("A"), good("B"), good("C")), "A", nil},
		{"second copy", join(badCRC("A"), good("B"), good("C")), "B", nil},
		{"third copy", join(badCRC("A"), badCRC("B"), good("C")), "C", nil},
		{"signed fallback", join(unsigned("A"), badCRC("B"), badCRC("C")), "B", nil},
		{"no signature", join(unsigned("A"), unsigned("B"), unsigned("C")), "", pkg.ErrBadSignature},
		{"too short", good("A")[:100], "", pkg.ErrParameterPageTooShort},
		{"single copy", good("A"), "A", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := p.ModelName(); got != tt.wantModel {
				t.Errorf("ModelName() = %q, want %q", got, tt.wantModel)
			}
		})
	}
}

func TestParse_SignedFallbackWarns(t *testing.T) {
	var logs bytes.Buffer
	pkg.SetLogOutput(&logs, pkg.LogFormatText)
	t.Cleanup(func() { pkg.SetLogOutput(os.Stderr, pkg.LogFormatText) })

	b := testPage(t, "A")
	b[crcOffset] ^= 0xFF
	if _, err := Parse(b); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := logs.String(); !strings.Contains(got, pkg.ErrCRC.Error()) {
		t.Errorf("log = %q, want it to mention %q", got, pkg.ErrCRC)
	}
}

func TestParameterPage_Fields(t *testing.T) {
	p, err := Parse(testPage(t, "MT29F1G08ABADA"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Version", p.Version(), Version40},
		{"ColumnCycles", p.ColumnCycles(), 2},
		{"RowCycles", p.RowCycles(), 3},
		{"ManufacturerName", p.ManufacturerName(), "MICRON"},
		{"ModelName", p.ModelName(), "MT29F1G08ABADA"},
		{"Width", p.Width(), bus.Width8},
		{"TProg", p.TProg, uint16(600)},
		{"TR", p.TR, uint16(25)},
		{"BadBlocksPerLUN", p.BadBlocksPerLUN, uint16(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		revision uint16
		want     Version
		str      string
	}{
		{0, VersionUnknown, "ONFI (unknown revision)"},
		{1 << 1, Version10, "ONFI 1.0"},
		{1<<1 | 1<<2, Version20, "ONFI 2.0"},
		{1 << 5, Version23, "ONFI 2.3"},
		{1 << 8, Version32, "ONFI 3.2"},
		{1<<1 | 1<<12, Version50, "ONFI 5.0"},
		{1 << 0, VersionUnknown, "ONFI (unknown revision)"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			p := ParameterPage{Revision: tt.revision}
			if got := p.Version(); got != tt.want {
				t.Errorf("Version() = %v, want %v", got, tt.want)
			}
			if got := p.Version().String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	cmds := Commands()

	tests := []struct {
		name  string
		cmd   *nand.Command
		kinds []nand.Kind
		holes []int
	}{
		{"Read", cmds.Read, []nand.Kind{nand.KindCmdWrite, nand.KindAddrWrite, nand.KindCmdWrite, nand.KindRawRead}, []int{1, 3}},
		{"ReadID", cmds.ReadID, []nand.Kind{nand.KindCmdWrite, nand.KindAddrSingleWrite, nand.KindRawRead}, []int{2}},
		{"ReadSignature", cmds.ReadSignature, []nand.Kind{nand.KindCmdWrite, nand.KindAddrSingleWrite, nand.KindRawRead}, []int{2}},
		{"ReadParameterPage", cmds.ReadParameterPage, []nand.Kind{nand.KindCmdWrite, nand.KindAddrSingleWrite, nand.KindRawRead}, []int{2}},
		{"PageProgram", cmds.PageProgram, []nand.Kind{nand.KindCmdWrite, nand.KindAddrWrite, nand.KindRawWrite, nand.KindCmdWrite}, []int{1, 2}},
		{"BlockErase", cmds.BlockErase, []nand.Kind{nand.KindCmdWrite, nand.KindAddrRowWrite, nand.KindCmdWrite}, []int{1}},
		{"ReadStatus", cmds.ReadStatus, []nand.Kind{nand.KindCmdWrite, nand.KindRawRead}, []int{1}},
		{"Reset", cmds.Reset, []nand.Kind{nand.KindCmdWrite}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd.Len() != len(tt.kinds) {
				t.Fatalf("Len() = %d, want %d", tt.cmd.Len(), len(tt.kinds))
			}
			holes := map[int]bool{}
			for _, h := range tt.holes {
				holes[h] = true
			}
			for i, s := range tt.cmd.Steps {
				if s.Kind() != tt.kinds[i] {
					t.Errorf("step %d Kind() = %v, want %v", i, s.Kind(), tt.kinds[i])
				}
				if s.Defined == holes[i] {
					t.Errorf("step %d Defined = %v, want %v", i, s.Defined, !holes[i])
				}
			}
		})
	}

	if Commands() != cmds {
		t.Error("Commands() built a new table, want the shared one")
	}
	if CommandsWith(Timings).Read == cmds.Read {
		t.Error("CommandsWith() returned the shared template")
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		ddr  bool
	}{
		{"sdr", false},
		{"ddr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chip := sim.New(sim.Config{
				ID:            []byte{0x2C, 0xF1, 0x80, 0x95, 0x04},
				ParameterPage: testPage(t, "MT29F1G08ABADA"),
				DDR:           tt.ddr,
				BusyPolls:     2,
			})
			d := nand.New(chip, nand.WithClock(deadline.NewManual(0)))

			if err := Init(d); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if !d.Ready() {
				t.Errorf("State() = %v, want %v", d.State(), nand.StateReady)
			}
			if got := d.IDBytes(); !bytes.Equal(got, []byte{0x2C, 0xF1, 0x80, 0x95, 0x04}) {
				t.Errorf("IDBytes() = % x", got)
			}
			if got := string(d.SignatureBytes()); got != Signature {
				t.Errorf("SignatureBytes() = %q, want %q", got, Signature)
			}
			want := nand.Geometry{
				DataBytesPerPage:  2048,
				SpareBytesPerPage: 64,
				PagesPerBlock:     64,
				BlocksPerLUN:      16,
				LUNs:              1,
				BadBlocksPerLUN:   2,
				BitsPerCell:       1,
				ProgramsPerPage:   4,
			}
			if d.Geometry != want {
				t.Errorf("Geometry = %+v, want %+v", d.Geometry, want)
			}
			if d.Standard != "ONFI 4.0" || d.Manufacturer != "MICRON" || d.Model != "MT29F1G08ABADA" {
				t.Errorf("identity = %q %q %q", d.Standard, d.Manufacturer, d.Model)
			}
			if d.ColumnCycles != 2 || d.RowCycles != 3 {
				t.Errorf("address cycles = %d/%d, want 2/3", d.ColumnCycles, d.RowCycles)
			}
		})
	}
}

func TestInit_BadParameterPage(t *testing.T) {
	page := testPage(t, "X")
	copy(page, "NOPE")
	chip := sim.New(sim.Config{ID: []byte{1, 2, 3, 4}, ParameterPage: page})
	d := nand.New(chip, nand.WithClock(deadline.NewManual(0)))

	if err := Init(d); !errors.Is(err, pkg.ErrBadSignature) {
		t.Errorf("Init() error = %v, want %v", err, pkg.ErrBadSignature)
	}
	if d.Ready() {
		t.Error("Ready() = true, want false")
	}
}

func TestSynthesize(t *testing.T) {
	g := nand.Geometry{
		DataBytesPerPage:  512,
		SpareBytesPerPage: 16,
		PagesPerBlock:     32,
		BlocksPerLUN:      128,
		LUNs:              2,
		BitsPerCell:       1,
		ProgramsPerPage:   1,
	}
	b, err := Synthesize(g, 1, 2, "SOFTNAND", "SIM").MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if !ValidCRC(b) {
		t.Fatal("ValidCRC() = false, want true")
	}
	p, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var d nand.Device
	p.Apply(&d)
	if d.Geometry != g {
		t.Errorf("Geometry = %+v, want %+v", d.Geometry, g)
	}
	if d.ColumnCycles != 1 || d.RowCycles != 2 {
		t.Errorf("address cycles = %d/%d, want 1/2", d.ColumnCycles, d.RowCycles)
	}
	if d.Manufacturer != "SOFTNAND" || d.Model != "SIM" || d.Standard != "ONFI 1.0" {
		t.Errorf("identity = %q %q %q", d.Standard, d.Manufacturer, d.Model)
	}
}
