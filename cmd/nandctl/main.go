// Command nandctl identifies, reads, programs and erases raw NAND flash
// wired to GPIO pins, or an in-memory simulated chip.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &globalFlags{}
	err := newRootCmd(g).ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	if perr := g.stopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "Error:", perr)
		if err == nil {
			err = perr
		}
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
