package sim

import "fmt"

// EventKind classifies a recorded bus event.
type EventKind uint8

// Event kinds.
const (
	EventCommand   EventKind = iota // Write cycle with CLE high
	EventAddress                    // Write cycle with ALE high
	EventDataWrite                  // Write cycle in neutral latch
	EventDataRead                   // Read cycle
	EventSelect                     // Chip enable asserted
	EventDeselect                   // Chip enable released
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "cmd"
	case EventAddress:
		return "addr"
	case EventDataWrite:
		return "din"
	case EventDataRead:
		return "dout"
	case EventSelect:
		return "ce"
	case EventDeselect:
		return "ce#"
	default:
		return fmt.Sprintf("Unknown EventKind (%d)", k)
	}
}

// Event is one entry of the bus trace.
type Event struct {
	Kind  EventKind
	Value uint16
}

// String formats the event as "kind:value".
func (e Event) String() string {
	return fmt.Sprintf("%s:%02x", e.Kind, e.Value)
}

func (c *Chip) record(kind EventKind, v uint16) {
	c.events = append(c.events, Event{Kind: kind, Value: v})
}

// Events returns a copy of the bus trace.
func (c *Chip) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// EventsOf returns the values of every traced event of the given kind.
func (c *Chip) EventsOf(kind EventKind) []uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []uint16
	for _, e := range c.events {
		if e.Kind == kind {
			out = append(out, e.Value)
		}
	}
	return out
}

// ClearEvents empties the bus trace.
func (c *Chip) ClearEvents() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}
