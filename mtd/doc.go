// Package mtd exposes a NAND device as a memory technology device: a
// block device with page-granular reads and writes and block-granular
// erases.
//
// A sector is one NAND block. Pages are numbered globally across LUNs;
// page p lives on LUN p / pages-per-LUN. Flat addresses count raw page
// bytes, data and spare, from the start of the array.
//
//	m := mtd.New(dev, onfi.Commands(), mtd.WithProfile(onfi.Profile(nil)))
//	if err := m.Init(); err != nil {
//		return err
//	}
//	n, err := m.ReadPage(buf, page, 0)
//
// Every program and erase is followed by Read Status; a set FAIL bit is
// reported as pkg.ErrWriteError. All bus failures wrap pkg.ErrIO.
package mtd
