package config

import "github.com/ardnew/softnand/nand"

// Simulator defaults: a small 2 KiB-page part.
const (
	DefaultSimDataBytesPerPage  = 2048
	DefaultSimSpareBytesPerPage = 64
	DefaultSimPagesPerBlock     = 64
	DefaultSimBlocksPerLUN      = 16
	DefaultSimManufacturer      = "SOFTNAND"
	DefaultSimModel             = "SIM2G08"
)

// Normalize fills in defaults. It may mutate cfg and must only be called
// after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device
	if d.Profile == "" {
		d.Profile = ProfileONFI
	}
	if d.LUNs == 0 {
		d.LUNs = len(d.Pins.CE)
	}
	if d.LUNs == 0 {
		d.LUNs = nand.DefaultLUNCount
	}
	if d.Width == 0 {
		d.Width = 8
		if len(d.Pins.IO) == 16 {
			d.Width = 16
		}
	}
	if d.PollIntervalUs == 0 {
		d.PollIntervalUs = int(nand.DefaultPollInterval.Microseconds())
	}

	s := &cfg.Simulator
	if s.ColumnCycles == 0 {
		s.ColumnCycles = nand.DefaultColumnCycles
	}
	if s.RowCycles == 0 {
		s.RowCycles = nand.DefaultRowCycles
	}
	if s.Manufacturer == "" {
		s.Manufacturer = DefaultSimManufacturer
	}
	if s.Model == "" {
		s.Model = DefaultSimModel
	}
	g := &s.Geometry
	if g.DataBytesPerPage == 0 {
		g.DataBytesPerPage = DefaultSimDataBytesPerPage
	}
	if g.SpareBytesPerPage == 0 {
		g.SpareBytesPerPage = DefaultSimSpareBytesPerPage
	}
	if g.PagesPerBlock == 0 {
		g.PagesPerBlock = DefaultSimPagesPerBlock
	}
	if g.BlocksPerLUN == 0 {
		g.BlocksPerLUN = DefaultSimBlocksPerLUN
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
