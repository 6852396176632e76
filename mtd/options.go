package mtd

import "github.com/ardnew/softnand/nand"

// Op names the operation reported through Progress.
type Op string

// Operations reported through Progress.
const (
	OpRead    Op = "read"
	OpProgram Op = "program"
	OpErase   Op = "erase"
)

// Progress reports how far a transfer or erase has come.
type Progress struct {
	Op    Op
	Index int // Page being transferred, or block being erased
	Done  int // Bytes moved, or blocks erased
	Total int
}

// ProgressFunc receives Progress updates. It runs between bus cycles and
// should return quickly.
type ProgressFunc func(Progress)

type config struct {
	profile  *nand.Profile
	bounce   int
	progress ProgressFunc
}

// Option configures a Device.
type Option func(*config)

// WithProfile makes Init bring the NAND device up with p when it is not
// ready yet.
func WithProfile(p nand.Profile) Option {
	return func(c *config) {
		c.profile = &p
	}
}

// WithBounceBuffer streams every page transfer through an internal buffer
// of size bytes instead of the caller's buffer. Init rounds size up to a
// whole bus word.
func WithBounceBuffer(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.bounce = size
		}
	}
}

// WithProgress sets a callback driven after every streamed chunk and
// every erased block.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}
