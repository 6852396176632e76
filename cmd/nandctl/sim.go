package main

import (
	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/bus/sim"
	"github.com/ardnew/softnand/internal/config"
	"github.com/ardnew/softnand/nand/onfi"
	"github.com/ardnew/softnand/nand/samsung"
)

// Read ID responses used when the board file gives none.
var defaultSimID = map[string]string{
	config.ProfileONFI:    "2C F1 80 95 04",
	config.ProfileSamsung: "EC F1 00 95 40",
}

// newSimChip builds a simulated chip matching the configured profile. ONFI
// chips carry a parameter page synthesized from the configured geometry;
// Samsung chips take their geometry from the ID bytes.
func newSimChip(cfg *config.Config) (*sim.Chip, error) {
	s := cfg.Simulator
	text := s.ID
	if text == "" {
		text = defaultSimID[cfg.Device.Profile]
	}
	id, err := config.SimulatorConfig{ID: text}.IDBytes()
	if err != nil {
		return nil, err
	}

	sc := sim.Config{
		ID:           id,
		DDR:          s.DDR,
		Width:        cfg.Device.BusWidth(),
		ColumnCycles: s.ColumnCycles,
		RowCycles:    s.RowCycles,
		BusyPolls:    s.BusyPolls,
	}

	if cfg.Device.Profile == config.ProfileSamsung {
		c, err := samsung.Decode(id)
		if err != nil {
			return nil, err
		}
		sc.Width = c.Width
		sc.ColumnCycles, sc.RowCycles = 2, 3
		sc.PageSize = c.DataBytesPerPage + c.SpareBytesPerPage()
		sc.PagesPerBlock = c.PagesPerBlock()
		sc.BlocksPerLUN = c.BlocksPerLUN()
		sc.LUNs = 1
		return sim.New(sc), nil
	}

	g := s.Geometry.NANDGeometry(cfg.Device.LUNs)
	page := onfi.Synthesize(g, s.ColumnCycles, s.RowCycles, s.Manufacturer, s.Model)
	if sc.Width == bus.Width16 {
		page.Features |= onfi.Feature16BitBus
	}
	raw, err := page.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sc.ParameterPage = raw
	sc.PageSize = g.PageSize()
	sc.PagesPerBlock = g.PagesPerBlock
	sc.BlocksPerLUN = g.BlocksPerLUN
	sc.LUNs = g.LUNs
	return sim.New(sc), nil
}
