package nand

import (
	"fmt"

	"github.com/ardnew/softnand/pkg"
)

// ReadRaw runs a command/address/raw-read template with buf attached to its
// raw step and returns the bytes read. The chip enable is released on every
// path.
func (d *Device) ReadRaw(lun int, cmd *Command, buf []byte) (int, error) {
	if cmd == nil {
		return 0, pkg.ErrCmdInvalid
	}
	idx := cmd.RawStep()
	if idx < 0 || cmd.Steps[idx].Kind() != KindRawRead {
		return 0, fmt.Errorf("%w: %s has no raw read step", pkg.ErrCmdInvalid, cmd.Name)
	}
	xfer := &RawTransfer{Size: len(buf), Buffer: buf}
	override := NewOverride(cmd).Define(idx, RawRead{Transfer: xfer}).Command()

	_, resp := d.Run(cmd, Params{LUN: lun, Override: override})
	if !resp.OK() {
		d.Deselect(lun)
		return xfer.Offset, fmt.Errorf("%s: %w", cmd.Name, resp.Err())
	}
	return xfer.Offset, nil
}

// ReadID reads up to len(buf) identifier bytes, zero-fills the remainder
// and reduces them to the true identifier. Returns the identifier length.
func (d *Device) ReadID(lun int, cmd *Command, buf []byte) (int, error) {
	n, err := d.ReadRaw(lun, cmd, buf)
	if err != nil {
		return 0, err
	}
	clear(buf[n:])
	size := ExtractID(buf[:n])
	pkg.LogDebug(pkg.ComponentIdent, "read ID", "raw", n, "size", size, "id", fmt.Sprintf("% x", buf[:size]))
	return size, nil
}

// ReadParameterPage reads a parameter page into buf, folding DDR output.
// Returns the folded length; the rest of buf is zero.
func (d *Device) ReadParameterPage(lun int, cmd *Command, buf []byte) (int, error) {
	n, err := d.ReadRaw(lun, cmd, buf)
	if err != nil {
		return 0, err
	}
	if CheckDDR(buf[:n]) {
		n = FoldDDR(buf[:n], 0x00)
	}
	clear(buf[n:])
	pkg.LogDebug(pkg.ComponentIdent, "read parameter page", "size", n)
	return n, nil
}

// ReadStatus reads the status register of lun with cmd.
func (d *Device) ReadStatus(lun int, cmd *Command) (byte, error) {
	var b [1]byte
	n, err := d.ReadRaw(lun, cmd, b[:])
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: empty status", pkg.ErrIO)
	}
	return b[0], nil
}
