package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReadCmd(g *globalFlags) *cobra.Command {
	var (
		offset int
		size   int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "read PAGE",
		Short: "Read one page (data and spare)",
		Long:  "Read a page by its global number. Without --out the bytes are printed as a hex dump.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(g)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.init(); err != nil {
				return err
			}

			if size <= 0 || offset+size > a.mtd.PageSize() {
				size = a.mtd.PageSize() - offset
			}
			if offset < 0 || size <= 0 {
				return fmt.Errorf("offset %d outside page of %d bytes", offset, a.mtd.PageSize())
			}
			buf := make([]byte, size)
			n, err := a.mtd.ReadPage(buf, page, offset)
			if err != nil {
				return err
			}
			buf = buf[:n]

			if out != "" {
				return os.WriteFile(out, buf, 0o644)
			}
			d := hex.Dumper(cmd.OutOrStdout())
			defer d.Close()
			_, err = d.Write(buf)
			return err
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset within the page")
	cmd.Flags().IntVar(&size, "size", 0, "bytes to read (default: to the end of the page)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the bytes to a file")
	return cmd
}
