// Package nand implements a data-driven command-chain engine for parallel
// NAND flash.
//
// Every NAND operation (read, program, erase, read ID, read parameter page)
// is a short chain of bus steps: a command cycle, address cycles, and raw
// data bursts. A [Command] describes such a chain as data. [Device.Run]
// interprets it against a [bus.Transceiver], honouring the per-step
// [CycleTiming] and the ready/busy handshake of every LUN.
//
// # Templates and overrides
//
// Vendor packages (nand/onfi, nand/samsung) publish immutable templates in
// a [CommandSet]. Steps whose payload depends on the call (the address or
// the data buffer) are holes with Defined set to false. A caller fills them
// with an override that is merged over the template for one Run:
//
//	xfer := &nand.RawTransfer{Size: nand.SizePage, Buffer: buf}
//	ov := nand.NewOverride(cmds.Read).
//	    Define(1, nand.AddrWrite{Column: 0, Row: row}).
//	    Define(3, nand.RawRead{Transfer: xfer})
//	n, resp := dev.Run(cmds.Read, nand.Params{LUN: 0, Override: ov.Command()})
//
// # Streaming
//
// A raw step moves its data through RawTransfer.Buffer in chunks of at most
// the buffer capacity. The chain's pre- and post-hooks run around every
// chunk, so a small bounce buffer can stream a whole page: the pre-hook
// refills it before a write, the post-hook drains it after a read, and
// either may shrink RawTransfer.Size to stop early.
//
// # Bring-up
//
// [Init] runs a [Profile]: reset, read and reduce the identifier, read the
// parameter page when the family has one, decode the geometry and mark the
// device ready. Identification helpers ([CheckDDR], [FoldDDR],
// [ExtractIDSize], [ExtractID]) are exported for vendor decoders.
package nand
