package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ardnew/softnand/pkg/prof"
)

type globalFlags struct {
	configPath string
	sim        bool
	logLevel   string
	logFormat  string
	profile    prof.Options

	stopProfile func() error
}

// stopProfiling ends the profiling session, if one is running.
func (g *globalFlags) stopProfiling() error {
	if g.stopProfile == nil {
		return nil
	}
	stop := g.stopProfile
	g.stopProfile = nil
	return stop()
}

func newRootCmd(g *globalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "nandctl",
		Short: "Raw NAND flash access over a bit-banged parallel bus",
		Long: "Talk to an ONFI or Samsung NAND package whose pins are wired to GPIO lines. " +
			"Pin assignments come from a YAML board file; --sim replaces the hardware with an in-memory chip.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stop, err := prof.Start(g.profile)
			if err != nil {
				return err
			}
			g.stopProfile = stop
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return g.stopProfiling()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "board configuration file (YAML)")
	pf.BoolVar(&g.sim, "sim", false, "use an in-memory simulated chip instead of GPIO pins")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "", "log format: text, json")
	pf.StringVar(&g.profile.CPU, "cpuprofile", "", "write a CPU profile to file (needs -tags profile)")
	pf.StringVar(&g.profile.Heap, "memprofile", "", "write a heap profile to file on exit (needs -tags profile)")
	pf.StringVar(&g.profile.HTTP, "pprof-addr", "", "serve /debug/pprof on this address (needs -tags profile)")
	_ = pf.MarkHidden("pprof-addr")

	root.AddCommand(
		newIDCmd(g),
		newInfoCmd(g),
		newReadCmd(g),
		newProgramCmd(g),
		newEraseCmd(g),
	)
	return root
}

// parseNumber accepts decimal, 0x hex, 0o octal and 0b binary.
func parseNumber(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative number %q", s)
	}
	return int(v), nil
}
