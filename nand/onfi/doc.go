// Package onfi brings up NAND devices that follow the Open NAND Flash
// Interface.
//
// The package provides the ONFI command table, the ONFI timing constants
// and a parser for the 256-byte parameter page. Init runs the generic
// bring-up sequence of package nand with the ONFI profile:
//
//	d := nand.New(transceiver)
//	if err := onfi.Init(d); err != nil {
//		return err
//	}
//	fmt.Println(d.Standard, d.Manufacturer, d.Model)
//
// # Parameter Page
//
// A device returns at least three redundant copies of its parameter page.
// Each copy ends in a CRC-16 over its first 254 bytes. Parse uses the
// first copy whose CRC matches; when none match it falls back to the first
// copy that carries the "ONFI" signature and logs a warning.
package onfi
