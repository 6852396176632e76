package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardnew/softnand/mtd"
)

// progressPrinter reports progress on w in the style of a single status line.
func progressPrinter(w io.Writer) mtd.ProgressFunc {
	return func(p mtd.Progress) {
		if p.Total == 0 {
			return
		}
		fmt.Fprintf(w, "\r%s %d: %.2f%%", p.Op, p.Index, float32(p.Done)*100/float32(p.Total))
		if p.Done >= p.Total {
			fmt.Fprintln(w)
		}
	}
}

func newProgramCmd(g *globalFlags) *cobra.Command {
	var (
		offset   int
		progress bool
	)
	cmd := &cobra.Command{
		Use:   "program PAGE FILE",
		Short: "Program one page from a file",
		Long:  "Program the contents of FILE into a page. The page must have been erased.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			var opts []mtd.Option
			if progress {
				opts = append(opts, mtd.WithBounceBuffer(64), mtd.WithProgress(progressPrinter(cmd.ErrOrStderr())))
			}
			a, err := newApp(g, opts...)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.init(); err != nil {
				return err
			}

			if offset < 0 || offset+len(data) > a.mtd.PageSize() {
				return fmt.Errorf("%d bytes at offset %d do not fit a %d-byte page", len(data), offset, a.mtd.PageSize())
			}
			n, err := a.mtd.WritePage(data, page, offset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "programmed %d bytes into page %d\n", n, page)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset within the page")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "report progress on stderr")
	return cmd
}

func newEraseCmd(g *globalFlags) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "erase BLOCK",
		Short: "Erase one or more blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			if count <= 0 {
				return fmt.Errorf("invalid block count %d", count)
			}
			a, err := newApp(g, mtd.WithProgress(progressPrinter(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.init(); err != nil {
				return err
			}

			n, err := a.mtd.EraseSector(cmd.Context(), block, count)
			fmt.Fprintf(cmd.OutOrStdout(), "erased %d of %d blocks from %d\n", n, count, block)
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of blocks to erase")
	return cmd
}
