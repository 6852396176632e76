package nand

import (
	"fmt"

	"github.com/ardnew/softnand/pkg"
)

// Kind identifies the payload carried by a Step.
type Kind uint8

// Step kinds.
const (
	KindCmdWrite Kind = iota
	KindAddrWrite
	KindAddrColumnWrite
	KindAddrRowWrite
	KindAddrSingleWrite
	KindRawWrite
	KindRawRead

	// KindNone is reported by a step with no payload.
	KindNone Kind = 0xFF
)

// String returns a human-readable step kind.
func (k Kind) String() string {
	switch k {
	case KindCmdWrite:
		return "cmd"
	case KindAddrWrite:
		return "addr"
	case KindAddrColumnWrite:
		return "addr-column"
	case KindAddrRowWrite:
		return "addr-row"
	case KindAddrSingleWrite:
		return "addr-single"
	case KindRawWrite:
		return "raw-write"
	case KindRawRead:
		return "raw-read"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("Unknown Kind (%d)", k)
	}
}

// Control reports whether steps of this kind latch a command or address.
func (k Kind) Control() bool {
	return k <= KindAddrSingleWrite
}

// Raw reports whether steps of this kind stream data.
func (k Kind) Raw() bool {
	return k == KindRawWrite || k == KindRawRead
}

// Cycles is the payload of a Step. The set of implementations is closed.
type Cycles interface {
	Kind() Kind
}

// CmdWrite is a single command cycle.
type CmdWrite byte

// AddrWrite is a full address: column cycles followed by row cycles.
type AddrWrite struct {
	Column uint32
	Row    uint32
}

// AddrColumnWrite is a column-only address.
type AddrColumnWrite uint32

// AddrRowWrite is a row-only address.
type AddrRowWrite uint32

// AddrSingleWrite is exactly one address cycle.
type AddrSingleWrite byte

// RawWrite streams a transfer from the host into the device.
type RawWrite struct {
	Transfer *RawTransfer
}

// RawRead streams a transfer from the device into the host.
type RawRead struct {
	Transfer *RawTransfer
}

// Kind implements Cycles.
func (CmdWrite) Kind() Kind { return KindCmdWrite }

// Kind implements Cycles.
func (AddrWrite) Kind() Kind { return KindAddrWrite }

// Kind implements Cycles.
func (AddrColumnWrite) Kind() Kind { return KindAddrColumnWrite }

// Kind implements Cycles.
func (AddrRowWrite) Kind() Kind { return KindAddrRowWrite }

// Kind implements Cycles.
func (AddrSingleWrite) Kind() Kind { return KindAddrSingleWrite }

// Kind implements Cycles.
func (RawWrite) Kind() Kind { return KindRawWrite }

// Kind implements Cycles.
func (RawRead) Kind() Kind { return KindRawRead }

// Special values of RawTransfer.Size.
const (
	SizeUnset = -1 // Adopt RawTransfer.Hint
	SizePage  = -2 // One full page including spare
)

// RawTransfer is the mutable state of a raw data step. The buffer is
// borrowed from the caller for one Run and is never retained.
//
// Each chunk moves through Buffer[:chunk]; a chain with hooks can refill
// or drain that window between chunks to stream more data than the buffer
// holds.
type RawTransfer struct {
	Size     int    // Intended size, or SizeUnset / SizePage
	Hint     int    // Size adopted when Size is SizeUnset
	Buffer   []byte // Borrowed window; nil skips bus activity
	Capacity int    // Chunk capacity; zero means len(Buffer)
	Offset   int    // Bytes transferred so far
	Seq      int    // Chunks completed so far
}

// capacity returns the chunk capacity of the transfer.
func (t *RawTransfer) capacity() int {
	if t.Capacity > 0 {
		return t.Capacity
	}
	return len(t.Buffer)
}

// Transfer returns the raw transfer of a RawWrite or RawRead payload.
func Transfer(c Cycles) *RawTransfer {
	switch v := c.(type) {
	case RawWrite:
		return v.Transfer
	case RawRead:
		return v.Transfer
	default:
		return nil
	}
}

// Step is one entry of a command chain. An undefined step is a hole that a
// caller fills through an override; it is skipped when left empty.
type Step struct {
	Defined bool
	Timing  CycleTiming
	Cycles  Cycles
}

// Kind returns the kind of the step payload, or KindNone for an empty
// step.
func (s *Step) Kind() Kind {
	if s.Cycles == nil {
		return KindNone
	}
	return s.Cycles.Kind()
}

// HookContext is passed to chain hooks. Step points at the effective step
// being executed; hooks may adjust its raw transfer cursors.
type HookContext struct {
	Device  *Device
	Command *Command
	Params  *Params
	Index   int
	Step    *Step
}

// Hook observes or adapts a chain between bus activity.
type Hook func(ctx *HookContext)

// Command is a command chain template. Templates returned by vendor
// packages are shared and must not be modified; derive an override with
// NewOverride instead.
type Command struct {
	Name     string
	Steps    []Step
	PreHook  Hook
	PostHook Hook
}

// Len returns the number of steps in the chain.
func (c *Command) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Steps)
}

// Find returns the index of the first step of kind k, or -1.
func (c *Command) Find(k Kind) int {
	for i := 0; i < c.Len(); i++ {
		if c.Steps[i].Kind() == k {
			return i
		}
	}
	return -1
}

// RawStep returns the index of the first raw data step, or -1.
func (c *Command) RawStep() int {
	for i := 0; i < c.Len(); i++ {
		if c.Steps[i].Kind().Raw() {
			return i
		}
	}
	return -1
}

// Params are the per-invocation parameters of Run.
type Params struct {
	LUN      int
	Override *Command
}

// Chain is a merged, fixed-capacity chain ready for execution.
type Chain struct {
	Steps    [MaxSteps]Step
	Length   int
	PreHook  Hook
	PostHook Hook
}

// Merge resolves the effective chain of tmpl patched by override. For each
// index the override step is used when it is defined or lies beyond the
// template; otherwise the template step is used. Override hooks take
// precedence over template hooks. Neither input is modified.
func Merge(tmpl, override *Command) (Chain, error) {
	var ch Chain
	if tmpl == nil {
		return ch, pkg.ErrCmdInvalid
	}
	ch.Length = tmpl.Len()
	if override.Len() > ch.Length {
		ch.Length = override.Len()
	}
	if ch.Length > MaxSteps {
		ch.Length = 0
		return ch, fmt.Errorf("%w: %d steps", pkg.ErrChainTooLong, max(tmpl.Len(), override.Len()))
	}

	ch.PreHook, ch.PostHook = tmpl.PreHook, tmpl.PostHook
	if override != nil {
		if override.PreHook != nil {
			ch.PreHook = override.PreHook
		}
		if override.PostHook != nil {
			ch.PostHook = override.PostHook
		}
	}

	for i := 0; i < ch.Length; i++ {
		useOverride := override != nil && i < override.Len() &&
			(override.Steps[i].Defined || i >= tmpl.Len())
		if useOverride {
			ch.Steps[i] = override.Steps[i]
		} else {
			ch.Steps[i] = tmpl.Steps[i]
		}
	}
	return ch, nil
}

// Override builds an override for a template. Its steps start out as
// undefined holes, so only the indices passed to Define replace the
// template.
type Override struct {
	tmpl *Command
	cmd  Command
}

// NewOverride starts an override of tmpl with the same length.
func NewOverride(tmpl *Command) *Override {
	o := &Override{tmpl: tmpl}
	if tmpl != nil {
		o.cmd.Name = tmpl.Name
		o.cmd.Steps = make([]Step, len(tmpl.Steps))
	}
	return o
}

// Define fills step i with payload, reusing the template's timing at i.
// Indices beyond the template grow the override with zero timing.
func (o *Override) Define(i int, payload Cycles) *Override {
	if i < 0 {
		return o
	}
	for len(o.cmd.Steps) <= i {
		o.cmd.Steps = append(o.cmd.Steps, Step{})
	}
	step := Step{Defined: true, Cycles: payload}
	if o.tmpl != nil && i < len(o.tmpl.Steps) {
		step.Timing = o.tmpl.Steps[i].Timing
	}
	o.cmd.Steps[i] = step
	return o
}

// Step places s at index i verbatim.
func (o *Override) Step(i int, s Step) *Override {
	if i < 0 {
		return o
	}
	for len(o.cmd.Steps) <= i {
		o.cmd.Steps = append(o.cmd.Steps, Step{})
	}
	o.cmd.Steps[i] = s
	return o
}

// Hooks sets the pre- and post-step hooks of the override.
func (o *Override) Hooks(pre, post Hook) *Override {
	o.cmd.PreHook = pre
	o.cmd.PostHook = post
	return o
}

// Command returns the override as a Command for Params.Override.
func (o *Override) Command() *Command {
	return &o.cmd
}

// CommandSet is a vendor's table of command templates. A nil entry means
// the vendor has no such command.
type CommandSet struct {
	Read              *Command
	ReadID            *Command
	ReadSignature     *Command
	ReadParameterPage *Command
	PageProgram       *Command
	BlockErase        *Command
	ReadStatus        *Command
	Reset             *Command
}
