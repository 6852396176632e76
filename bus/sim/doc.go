// Package sim implements bus.Transceiver as an in-memory NAND chip.
//
// The chip decodes the command and address cycles it receives the way a
// real part does: Read ID (90h), Read Parameter Page (ECh), Read (00h/30h),
// Page Program (80h/10h), Block Erase (60h/D0h), Read Status (70h) and
// Reset (FFh). Array operations leave the target LUN busy for a configurable
// number of ready/busy polls, and a LUN can be forced to never become ready
// to exercise timeout paths.
//
// Every cycle is appended to a trace so tests can assert the exact bus
// sequence a command chain produced:
//
//	chip := sim.New(sim.Config{ID: []byte{0xEC, 0xDA, 0x10, 0x95}})
//	dev := nand.New(chip)
//	...
//	for _, ev := range chip.Events() {
//	    fmt.Println(ev)
//	}
package sim
