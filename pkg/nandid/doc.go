// Package nandid names NAND manufacturers and devices from their Read ID
// codes.
//
// The first Read ID byte is a JEDEC JEP106 manufacturer code and the second
// a vendor-assigned device code. A built-in table covers the common NAND
// makers and a handful of parts; more entries can be loaded from a text
// file in the same layout as the Linux usb.ids database:
//
//	# maker  name
//	EC  Samsung
//		F1  K9F1G08U0 (1 Gbit, x8)
//		DA  K9F2G08U0 (2 Gbit, x8)
//
// Maker lines start in column zero; device lines start with a tab and
// belong to the maker above them.
//
// # Usage
//
//	db := nandid.New()
//	db.Load()
//	fmt.Println(db.Describe(d.IDBytes()))
//
// Load searches DefaultPaths and keeps the built-in table when no file is
// found. All methods are safe for concurrent use.
package nandid
