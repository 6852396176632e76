// Package pkg provides shared utilities for the softnand driver stack.
//
// It holds the pieces every other package reaches for:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel errors and the [Response] tag returned by command chains
//
// # Logging
//
// Log calls carry a component tag so output from the chain interpreter,
// the bus drivers and the block-device adapter can be filtered apart:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentNAND, "geometry resolved", "page", 2048)
//
// # Errors
//
// Chains return a [Response] rather than an error. [Response.Err] maps each
// tag to a sentinel so callers can use [errors.Is]:
//
//	n, resp := dev.Run(cmds.Read, params)
//	if errors.Is(resp.Err(), pkg.ErrTimeout) {
//	    // retry the chain
//	}
package pkg
