package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg/nandid"
)

func newIDCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the Read ID response and signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g)
			if err != nil {
				return err
			}
			defer a.close()

			initErr := a.init()
			if a.dev.State() < nand.StateIdentified {
				return initErr
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id:        % X\n", a.dev.IDBytes())
			fmt.Fprintf(w, "part:      %s\n", a.ids.Describe(a.dev.IDBytes()))
			if sig := a.dev.SignatureBytes(); len(sig) > 0 {
				fmt.Fprintf(w, "signature: %q\n", sig)
			}
			return initErr
		},
	}
}

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Bring the device up and print its identity and geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.init(); err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), a.dev, a.ids)
			return nil
		},
	}
}

func printInfo(w io.Writer, d *nand.Device, ids *nandid.Database) {
	g := d.Geometry
	fmt.Fprintf(w, "standard:      %s\n", d.Standard)
	fmt.Fprintf(w, "manufacturer:  %s\n", d.Manufacturer)
	fmt.Fprintf(w, "model:         %s\n", d.Model)
	fmt.Fprintf(w, "id:            % X\n", d.IDBytes())
	fmt.Fprintf(w, "part:          %s\n", ids.Describe(d.IDBytes()))
	fmt.Fprintf(w, "data width:    %d bits\n", d.DataWidth)
	fmt.Fprintf(w, "address:       %d column + %d row cycles\n", d.ColumnCycles, d.RowCycles)
	fmt.Fprintf(w, "page:          %d + %d bytes\n", g.DataBytesPerPage, g.SpareBytesPerPage)
	fmt.Fprintf(w, "block:         %d pages\n", g.PagesPerBlock)
	fmt.Fprintf(w, "LUN:           %d blocks\n", g.BlocksPerLUN)
	fmt.Fprintf(w, "LUNs:          %d\n", g.LUNs)
	fmt.Fprintf(w, "capacity:      %d data + %d spare bytes\n", g.AllDataBytes(), g.AllSpareBytes())
}
