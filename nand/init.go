package nand

import (
	"fmt"

	"github.com/ardnew/softnand/pkg"
)

// Profile describes how a family of devices is brought up.
type Profile struct {
	// Name identifies the profile in logs and errors.
	Name string

	// Commands is the family's command table. ReadID is required.
	Commands *CommandSet

	// DecodeParameterPage fills the device from a parameter page. It is
	// used when Commands.ReadParameterPage is set.
	DecodeParameterPage func(d *Device, page []byte) error

	// DecodeID fills the device from the identifier bytes. It is used when
	// the family has no parameter page.
	DecodeID func(d *Device, id []byte) error
}

// Init brings d up with profile p: reset, read ID, optionally read the
// signature and parameter page, decode the geometry, then mark the device
// ready. Identification runs on LUN 0. Init is not retried; on error the
// device stays in the state it reached.
func Init(d *Device, p Profile) error {
	if p.Commands == nil || p.Commands.ReadID == nil {
		return fmt.Errorf("%s: %w: no Read ID command", p.Name, pkg.ErrInvalidParameter)
	}
	d.Reset()
	const lun = 0

	if p.Commands.Reset != nil {
		if _, resp := d.Run(p.Commands.Reset, Params{LUN: lun}); !resp.OK() {
			d.Deselect(lun)
			return fmt.Errorf("%s: reset: %w", p.Name, resp.Err())
		}
	}

	var id [MaxIDSize]byte
	n, err := d.ReadID(lun, p.Commands.ReadID, id[:])
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	if n < MinIDSize {
		return fmt.Errorf("%s: %w: %d bytes", p.Name, pkg.ErrIDTooShort, n)
	}
	d.ID = id
	d.IDSize = n
	d.setState(StateIdentified)

	if p.Commands.ReadSignature != nil {
		var sig [MaxSignatureSize]byte
		n, err := d.ReadID(lun, p.Commands.ReadSignature, sig[:])
		if err != nil {
			return fmt.Errorf("%s: signature: %w", p.Name, err)
		}
		d.Signature = sig
		d.SignatureSize = n
	}

	if p.Commands.ReadParameterPage != nil {
		if p.DecodeParameterPage == nil {
			return fmt.Errorf("%s: %w: no parameter page decoder", p.Name, pkg.ErrInvalidParameter)
		}
		page := make([]byte, MaxParameterPageSize)
		n, err := d.ReadParameterPage(lun, p.Commands.ReadParameterPage, page)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if n < MinParameterPageSize {
			return fmt.Errorf("%s: %w: %d bytes", p.Name, pkg.ErrParameterPageTooShort, n)
		}
		if err := p.DecodeParameterPage(d, page[:n]); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	} else {
		if p.DecodeID == nil {
			return fmt.Errorf("%s: %w: no ID decoder", p.Name, pkg.ErrInvalidParameter)
		}
		if err := p.DecodeID(d, d.IDBytes()); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}

	if !d.Geometry.Valid() {
		return fmt.Errorf("%s: %w: incomplete geometry %+v", p.Name, pkg.ErrInvalidParameter, d.Geometry)
	}
	d.setState(StateGeometryResolved)

	g := d.Geometry
	pkg.LogInfo(pkg.ComponentNAND, "geometry resolved",
		"profile", p.Name,
		"standard", d.Standard,
		"manufacturer", d.Manufacturer,
		"model", d.Model,
		"page", g.DataBytesPerPage,
		"spare", g.SpareBytesPerPage,
		"pages_per_block", g.PagesPerBlock,
		"blocks_per_lun", g.BlocksPerLUN,
		"luns", g.LUNs,
		"column_cycles", d.ColumnCycles,
		"row_cycles", d.RowCycles)

	d.setState(StateReady)
	return nil
}
