package onfi

import (
	"fmt"

	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// Profile returns the bring-up profile of ONFI devices using cmds, or the
// default table when cmds is nil.
func Profile(cmds *nand.CommandSet) nand.Profile {
	if cmds == nil {
		cmds = Commands()
	}
	return nand.Profile{
		Name:                "onfi",
		Commands:            cmds,
		DecodeParameterPage: decode,
	}
}

// Init brings d up as an ONFI device.
func Init(d *nand.Device) error {
	return nand.Init(d, Profile(nil))
}

func decode(d *nand.Device, b []byte) error {
	if sig := d.SignatureBytes(); len(sig) > 0 && string(sig) != Signature {
		pkg.LogWarn(pkg.ComponentONFI, "unexpected Read ID signature", "signature", fmt.Sprintf("% x", sig))
	}
	p, err := Parse(b)
	if err != nil {
		return err
	}
	p.Apply(d)
	pkg.LogInfo(pkg.ComponentONFI, "parameter page",
		"version", p.Version(),
		"manufacturer", p.ManufacturerName(),
		"model", p.ModelName(),
		"tprog_us", p.TProg,
		"tbers_us", p.TBers,
		"tr_us", p.TR,
		"tccs_ns", p.TCCS,
		"sdr_modes", fmt.Sprintf("%#04x", p.SDRTimingModes),
		"nvddr_modes", fmt.Sprintf("%#02x", p.NVDDRTimingModes))
	return nil
}
