// Package samsung brings up Samsung NAND devices that predate ONFI.
//
// These parts have no parameter page. Their geometry is packed into the
// third through fifth Read ID bytes, which Decode expands into a Chip.
// Init runs the generic bring-up of package nand with the Samsung profile
// and copies the decoded geometry into the Device.
package samsung
