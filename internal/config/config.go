// Package config loads the YAML board description used by nandctl.
package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/bus/pinbus"
	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// Bring-up profiles understood by nandctl.
const (
	ProfileONFI    = "onfi"
	ProfileSamsung = "samsung"
)

type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Log       LogConfig       `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Profile        string       `yaml:"profile"`          // onfi | samsung
	LUNs           int          `yaml:"luns"`             // defaults to the number of CE pins
	Width          int          `yaml:"width"`            // 8 | 16
	PollIntervalUs int          `yaml:"poll_interval_us"` // ready/busy sampling
	IDDatabase     string       `yaml:"id_database"`      // extra maker/device names
	Pins           pinbus.Names `yaml:"pins"`
}

// ---- SIMULATOR ----

type SimulatorConfig struct {
	Enabled      bool           `yaml:"enabled"`
	ID           string         `yaml:"id"` // hex bytes, spaces allowed
	DDR          bool           `yaml:"ddr"`
	Manufacturer string         `yaml:"manufacturer"`
	Model        string         `yaml:"model"`
	ColumnCycles int            `yaml:"column_cycles"`
	RowCycles    int            `yaml:"row_cycles"`
	BusyPolls    int            `yaml:"busy_polls"`
	Geometry     GeometryConfig `yaml:"geometry"`
}

type GeometryConfig struct {
	DataBytesPerPage  int `yaml:"data_bytes_per_page"`
	SpareBytesPerPage int `yaml:"spare_bytes_per_page"`
	PagesPerBlock     int `yaml:"pages_per_block"`
	BlocksPerLUN      int `yaml:"blocks_per_lun"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads and decodes a YAML configuration file. Unknown keys are
// rejected. The result still has to pass Validate before Normalize.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	pkg.LogDebug(pkg.ComponentConfig, "loaded", "path", path)
	return cfg, nil
}

// Parse decodes a YAML document held in memory.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// BusWidth returns the configured data bus width.
func (d DeviceConfig) BusWidth() bus.Width {
	if d.Width == 16 {
		return bus.Width16
	}
	return bus.Width8
}

// PollInterval returns the ready/busy sampling interval.
func (d DeviceConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalUs) * time.Microsecond
}

// IDBytes decodes the simulated identifier.
func (s SimulatorConfig) IDBytes() ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "0x", "", "0X", "").Replace(s.ID)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: simulator id %q", pkg.ErrInvalidParameter, s.ID)
	}
	return b, nil
}

// NANDGeometry returns the simulated array geometry for the given LUNs.
func (g GeometryConfig) NANDGeometry(luns int) nand.Geometry {
	return nand.Geometry{
		DataBytesPerPage:  g.DataBytesPerPage,
		SpareBytesPerPage: g.SpareBytesPerPage,
		PagesPerBlock:     g.PagesPerBlock,
		BlocksPerLUN:      g.BlocksPerLUN,
		LUNs:              luns,
	}
}

// Apply configures the driver logger.
func (l LogConfig) Apply() error {
	level, err := pkg.ParseLogLevel(l.Level)
	if err != nil {
		return err
	}
	format, err := pkg.ParseLogFormat(l.Format)
	if err != nil {
		return err
	}
	pkg.SetLogLevel(level)
	pkg.SetLogFormat(format)
	return nil
}
