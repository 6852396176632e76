package config

import (
	"fmt"

	"github.com/ardnew/softnand/pkg"
)

// Validate checks configuration correctness.
// It performs declarative validation only and does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", pkg.ErrInvalidParameter)
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	switch d.Profile {
	case "", ProfileONFI, ProfileSamsung:
	default:
		return invalid("device.profile %q must be %q or %q", d.Profile, ProfileONFI, ProfileSamsung)
	}
	if d.LUNs < 0 {
		return invalid("device.luns %d must not be negative", d.LUNs)
	}
	if d.Width != 0 && d.Width != 8 && d.Width != 16 {
		return invalid("device.width %d must be 8 or 16", d.Width)
	}
	if d.PollIntervalUs < 0 {
		return invalid("device.poll_interval_us %d must not be negative", d.PollIntervalUs)
	}

	// Wiring only matters when real pins are driven.
	if !cfg.Simulator.Enabled {
		if err := validatePins(d); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// SIMULATOR
	// ------------------------------------------------------------

	s := cfg.Simulator
	if s.ID != "" {
		if _, err := s.IDBytes(); err != nil {
			return err
		}
	}
	for name, v := range map[string]int{
		"column_cycles":                 s.ColumnCycles,
		"row_cycles":                    s.RowCycles,
		"busy_polls":                    s.BusyPolls,
		"geometry.data_bytes_per_page":  s.Geometry.DataBytesPerPage,
		"geometry.spare_bytes_per_page": s.Geometry.SpareBytesPerPage,
		"geometry.pages_per_block":      s.Geometry.PagesPerBlock,
		"geometry.blocks_per_lun":       s.Geometry.BlocksPerLUN,
	} {
		if v < 0 {
			return invalid("simulator.%s %d must not be negative", name, v)
		}
	}
	if s.ColumnCycles > 4 || s.RowCycles > 4 {
		return invalid("simulator address cycles %d/%d exceed 4", s.ColumnCycles, s.RowCycles)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := pkg.ParseLogLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	if _, err := pkg.ParseLogFormat(cfg.Log.Format); err != nil {
		return err
	}
	return nil
}

func validatePins(d DeviceConfig) error {
	p := d.Pins
	if len(p.CE) == 0 {
		return invalid("device.pins.ce must list at least one pin")
	}
	if len(p.CE) != len(p.RB) {
		return invalid("device.pins: %d ce pins but %d rb pins", len(p.CE), len(p.RB))
	}
	if d.LUNs != 0 && d.LUNs != len(p.CE) {
		return invalid("device.luns %d does not match %d ce pins", d.LUNs, len(p.CE))
	}
	if len(p.IO) != 8 && len(p.IO) != 16 {
		return invalid("device.pins.io must list 8 or 16 pins, got %d", len(p.IO))
	}
	if d.Width == 16 && len(p.IO) != 16 {
		return invalid("device.width 16 needs 16 io pins")
	}
	for name, v := range map[string]string{"re": p.RE, "we": p.WE, "wp": p.WP, "cle": p.CLE, "ale": p.ALE} {
		if v == "" {
			return invalid("device.pins.%s is required", name)
		}
	}

	seen := make(map[string]string)
	check := func(role, pin string) error {
		if prev, ok := seen[pin]; ok {
			return invalid("pin %q used for both %s and %s", pin, prev, role)
		}
		seen[pin] = role
		return nil
	}
	roles := []struct {
		role string
		pins []string
	}{
		{"ce", p.CE}, {"rb", p.RB}, {"io", p.IO},
		{"re", []string{p.RE}}, {"we", []string{p.WE}}, {"wp", []string{p.WP}},
		{"cle", []string{p.CLE}}, {"ale", []string{p.ALE}},
	}
	for _, r := range roles {
		for i, pin := range r.pins {
			if err := check(fmt.Sprintf("%s[%d]", r.role, i), pin); err != nil {
				return err
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{pkg.ErrInvalidParameter}, args...)...)
}
