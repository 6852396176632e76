// Package bus defines the seam between the NAND command-chain interpreter
// and the hardware that toggles the parallel flash bus.
//
// A [Transceiver] moves one bus cycle at a time and switches the control
// lines (chip enable, latch mode, data direction, write protect). It knows
// nothing about commands or geometry. Concrete implementations live in
// sub-packages:
//
//   - bus/pinbus drives GPIO lines through periph.io
//   - bus/sim models a NAND chip entirely in memory
package bus
