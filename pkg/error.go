package pkg

import (
	"errors"
	"fmt"
)

// NAND driver errors.
var (
	// ErrTimeout indicates a ready/busy line did not assert within its budget.
	ErrTimeout = errors.New("ready/busy timeout")

	// ErrWriteError indicates the device reported a failed program or erase.
	ErrWriteError = errors.New("write error")

	// ErrECCMismatch indicates the stored ECC did not match the data.
	ErrECCMismatch = errors.New("ECC mismatch")

	// ErrNotSupported indicates an unsupported operation or feature.
	ErrNotSupported = errors.New("not supported")

	// ErrCmdInvalid indicates a missing or malformed command template.
	ErrCmdInvalid = errors.New("invalid command")

	// ErrChainTooLong indicates a merged chain exceeds the step capacity.
	ErrChainTooLong = errors.New("command chain too long")

	// ErrIDTooShort indicates the identifier read during bring-up was too short.
	ErrIDTooShort = errors.New("ID too short")

	// ErrParameterPageTooShort indicates the parameter page read was too short.
	ErrParameterPageTooShort = errors.New("parameter page too short")

	// ErrBadSignature indicates a missing "ONFI" signature.
	ErrBadSignature = errors.New("bad signature")

	// ErrCRC indicates a parameter page CRC mismatch.
	ErrCRC = errors.New("CRC error")

	// ErrNotReady indicates the device has not completed bring-up.
	ErrNotReady = errors.New("device not ready")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIO indicates a failed transfer at the block-device layer.
	ErrIO = errors.New("I/O error")

	// ErrOutOfRange indicates an address beyond the device geometry.
	ErrOutOfRange = errors.New("address out of range")
)

// Response is the result tag of a command chain.
type Response int

// Response values.
const (
	ResponseOK           Response = iota // Chain completed
	ResponseTimeout                      // Ready/busy wait expired
	ResponseWriteError                   // Program or erase failed
	ResponseECCMismatch                  // ECC check failed
	ResponseNotSupported                 // Operation not supported
	ResponseCmdInvalid                   // Nil or malformed template
	ResponseChainTooLong                 // Merged chain over capacity
)

// String returns a string representation of the response.
func (r Response) String() string {
	switch r {
	case ResponseOK:
		return "ok"
	case ResponseTimeout:
		return "timeout"
	case ResponseWriteError:
		return "write error"
	case ResponseECCMismatch:
		return "ecc mismatch"
	case ResponseNotSupported:
		return "not supported"
	case ResponseCmdInvalid:
		return "command invalid"
	case ResponseChainTooLong:
		return "chain too long"
	default:
		return fmt.Sprintf("unknown response (%d)", int(r))
	}
}

// Err returns the sentinel error for the response, or nil for ResponseOK.
func (r Response) Err() error {
	switch r {
	case ResponseOK:
		return nil
	case ResponseTimeout:
		return ErrTimeout
	case ResponseWriteError:
		return ErrWriteError
	case ResponseECCMismatch:
		return ErrECCMismatch
	case ResponseNotSupported:
		return ErrNotSupported
	case ResponseCmdInvalid:
		return ErrCmdInvalid
	case ResponseChainTooLong:
		return ErrChainTooLong
	default:
		return ErrIO
	}
}

// OK reports whether the response is ResponseOK.
func (r Response) OK() bool { return r == ResponseOK }
