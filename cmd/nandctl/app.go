package main

import (
	"fmt"

	"periph.io/x/host/v3"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/bus/pinbus"
	"github.com/ardnew/softnand/bus/sim"
	"github.com/ardnew/softnand/internal/config"
	"github.com/ardnew/softnand/mtd"
	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/nand/onfi"
	"github.com/ardnew/softnand/nand/samsung"
	"github.com/ardnew/softnand/pkg"
	"github.com/ardnew/softnand/pkg/nandid"
)

// app is one opened NAND device and everything needed to drive it.
type app struct {
	cfg     *config.Config
	cmds    *nand.CommandSet
	profile nand.Profile
	dev     *nand.Device
	mtd     *mtd.Device
	ids     *nandid.Database
	chip    *sim.Chip // nil when driving pins
	halt    func() error
}

// loadConfig reads the board file, if any, and lets flags override it.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	if g.sim {
		cfg.Simulator.Enabled = true
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	if err := cfg.Log.Apply(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func profileFor(name string) (*nand.CommandSet, nand.Profile) {
	if name == config.ProfileSamsung {
		cmds := samsung.Commands()
		return cmds, samsung.Profile(cmds)
	}
	cmds := onfi.Commands()
	return cmds, onfi.Profile(cmds)
}

// newApp opens the device described by the flags. Bring-up is left to the
// subcommand.
func newApp(g *globalFlags, opts ...mtd.Option) (*app, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, ids: nandid.New()}
	a.cmds, a.profile = profileFor(cfg.Device.Profile)
	if cfg.Device.IDDatabase != "" {
		a.ids = nandid.NewWithPaths([]string{cfg.Device.IDDatabase})
	}
	a.ids.Load()

	var t bus.Transceiver
	if cfg.Simulator.Enabled {
		chip, err := newSimChip(cfg)
		if err != nil {
			return nil, fmt.Errorf("simulator: %w", err)
		}
		a.chip = chip
		a.halt = func() error { return nil }
		t = chip
	} else {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("host init failed: %w", err)
		}
		pins, err := pinbus.Resolve(cfg.Device.Pins)
		if err != nil {
			return nil, err
		}
		b, err := pinbus.New(pins)
		if err != nil {
			return nil, err
		}
		a.halt = b.Halt
		t = b
	}

	a.dev = nand.New(t,
		nand.WithPollInterval(cfg.Device.PollInterval()),
		nand.WithLUNCount(cfg.Device.LUNs),
		nand.WithDataBusWidth(cfg.Device.BusWidth()),
	)
	a.mtd = mtd.New(a.dev, a.cmds, append([]mtd.Option{mtd.WithProfile(a.profile)}, opts...)...)
	pkg.LogDebug(pkg.ComponentConfig, "device opened",
		"profile", cfg.Device.Profile, "simulated", cfg.Simulator.Enabled, "luns", cfg.Device.LUNs)
	return a, nil
}

// init brings the device up.
func (a *app) init() error {
	return a.mtd.Init()
}

func (a *app) close() error {
	return a.halt()
}
