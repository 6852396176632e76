// Package pinbus implements bus.Transceiver by toggling GPIO pins.
//
// Every NAND signal is one periph.io gpio.PinIO: a chip enable and a
// ready/busy input per LUN, the RE#, WE#, WP#, CLE and ALE controls and
// eight or sixteen I/O lines. Pins are usually resolved by name from the
// periph registry after host.Init has loaded the board drivers:
//
//	if _, err := host.Init(); err != nil {
//		return err
//	}
//	pins, err := pinbus.Resolve(names)
//	if err != nil {
//		return err
//	}
//	b, err := pinbus.New(pins)
//
// Pin failures cannot be reported through the Transceiver methods. The
// first failure is kept and returned by Err; the cycle that hit it reports
// zero cycles transferred.
package pinbus
