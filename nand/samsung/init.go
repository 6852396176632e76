package samsung

import (
	"fmt"

	"github.com/ardnew/softnand/nand"
	"github.com/ardnew/softnand/pkg"
)

// Standard is reported in Device.Standard after bring-up.
const Standard = "Samsung"

// Profile returns the bring-up profile of Samsung devices using cmds, or
// the default table when cmds is nil.
func Profile(cmds *nand.CommandSet) nand.Profile {
	if cmds == nil {
		cmds = Commands()
	}
	return nand.Profile{
		Name:     "samsung",
		Commands: cmds,
		DecodeID: decode,
	}
}

// Init brings d up as a Samsung device.
func Init(d *nand.Device) error {
	return nand.Init(d, Profile(nil))
}

func decode(d *nand.Device, id []byte) error {
	c, err := Decode(id)
	if err != nil {
		return err
	}
	Apply(d, c)
	pkg.LogDebug(pkg.ComponentSamsung, "ID decoded",
		"device", fmt.Sprintf("%#02x", c.DeviceCode),
		"chips", c.ChipCount,
		"cell_level", c.CellLevel,
		"planes", c.PlaneCount,
		"blocks_per_plane", c.BlocksPerPlane,
		"width", c.Width,
		"serial_access_ns", c.SerialAccessTimeNs)
	return nil
}

// Apply fills the identity and geometry of d from c. Samsung parts are
// addressed as a single LUN with 2 column and 3 row cycles.
func Apply(d *nand.Device, c Chip) {
	d.Standard = Standard
	d.Manufacturer = Standard
	d.Model = fmt.Sprintf("%02X%02X", c.MakerCode, c.DeviceCode)
	d.DataWidth = c.Width
	d.ColumnCycles = 2
	d.RowCycles = 3
	d.Geometry = nand.Geometry{
		DataBytesPerPage:  c.DataBytesPerPage,
		SpareBytesPerPage: c.SpareBytesPerPage(),
		PagesPerBlock:     c.PagesPerBlock(),
		BlocksPerLUN:      c.BlocksPerLUN(),
		LUNs:              1,
	}
}
