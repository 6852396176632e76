package pinbus

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/ardnew/softnand/bus"
	"github.com/ardnew/softnand/deadline"
	"github.com/ardnew/softnand/pkg"
)

type testPins struct {
	ce, rb               []*gpiotest.Pin
	re, we, wp, cle, ale *gpiotest.Pin
	io                   []*gpiotest.Pin
}

func newTestPins(luns, width int) *testPins {
	pin := func(name string, n int) *gpiotest.Pin {
		return &gpiotest.Pin{N: name, Num: n}
	}
	t := &testPins{
		re:  pin("RE", 100),
		we:  pin("WE", 101),
		wp:  pin("WP", 102),
		cle: pin("CLE", 103),
		ale: pin("ALE", 104),
	}
	for i := 0; i < luns; i++ {
		t.ce = append(t.ce, pin(fmt.Sprintf("CE%d", i), 200+i))
		t.rb = append(t.rb, pin(fmt.Sprintf("RB%d", i), 300+i))
	}
	for i := 0; i < width; i++ {
		t.io = append(t.io, pin(fmt.Sprintf("IO%d", i), i))
	}
	return t
}

func (t *testPins) pins() Pins {
	p := Pins{RE: t.re, WE: t.we, WP: t.wp, CLE: t.cle, ALE: t.ale}
	for i := range t.ce {
		p.CE = append(p.CE, t.ce[i])
		p.RB = append(p.RB, t.rb[i])
	}
	for _, pin := range t.io {
		p.IO = append(p.IO, pin)
	}
	return p
}

func (t *testPins) data() uint16 {
	var v uint16
	for i, pin := range t.io {
		if pin.Read() == gpio.High {
			v |= 1 << i
		}
	}
	return v
}

func newTestBus(t *testing.T, luns, width int) (*Bus, *testPins, *deadline.Manual) {
	t.Helper()
	tp := newTestPins(luns, width)
	clock := deadline.NewManual(0)
	b, err := New(tp.pins(), WithClock(clock))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b, tp, clock
}

func TestNew_IdleState(t *testing.T) {
	b, tp, _ := newTestBus(t, 2, 8)

	for i, ce := range tp.ce {
		if ce.Read() != gpio.High {
			t.Errorf("CE%d = %v, want High", i, ce.Read())
		}
	}
	checks := []struct {
		name string
		pin  *gpiotest.Pin
		want gpio.Level
	}{
		{"WP", tp.wp, gpio.Low},
		{"CLE", tp.cle, gpio.Low},
		{"ALE", tp.ale, gpio.Low},
		{"RE", tp.re, gpio.High},
		{"WE", tp.we, gpio.High},
	}
	for _, c := range checks {
		if got := c.pin.Read(); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
	for i, rb := range tp.rb {
		if rb.P != gpio.PullUp {
			t.Errorf("RB%d pull = %v, want %v", i, rb.P, gpio.PullUp)
		}
	}
	if b.LUNs() != 2 {
		t.Errorf("LUNs() = %d, want 2", b.LUNs())
	}
	if b.Width() != bus.Width8 {
		t.Errorf("Width() = %v, want %v", b.Width(), bus.Width8)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Pins)
	}{
		{"no chip enables", func(p *Pins) { p.CE, p.RB = nil, nil }},
		{"ready/busy mismatch", func(p *Pins) { p.RB = p.RB[:1] }},
		{"seven data lines", func(p *Pins) { p.IO = p.IO[:7] }},
		{"missing WE", func(p *Pins) { p.WE = nil }},
		{"nil data line", func(p *Pins) { p.IO[3] = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPins(2, 8).pins()
			tt.mutate(&p)
			if _, err := New(p); !errors.Is(err, pkg.ErrInvalidParameter) {
				t.Errorf("New() error = %v, want %v", err, pkg.ErrInvalidParameter)
			}
		})
	}
}

func TestWriteCycle(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		width bus.Width
		value uint16
		want  uint16
	}{
		{"8-bit", 8, bus.Width8, 0xA5, 0xA5},
		{"8-bit drops high byte", 16, bus.Width8, 0x1234, 0x0034},
		{"16-bit", 16, bus.Width16, 0xBEEF, 0xBEEF},
		{"16-bit on 8 lines", 8, bus.Width16, 0xBEEF, 0x00EF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tp, clock := newTestBus(t, 1, tt.lines)
			b.SetWriteMode()
			s := bus.Strobe{EnablePost: 20 * time.Nanosecond, DisablePost: 30 * time.Nanosecond}
			if n := b.WriteCycle(tt.width, tt.value, s); n != 1 {
				t.Fatalf("WriteCycle() = %d, want 1", n)
			}
			if got := tp.data(); got != tt.want {
				t.Errorf("data lines = %#04x, want %#04x", got, tt.want)
			}
			if tp.we.Read() != gpio.High {
				t.Error("WE left asserted")
			}
			if clock.Slept() != 50*time.Nanosecond {
				t.Errorf("Slept() = %v, want %v", clock.Slept(), 50*time.Nanosecond)
			}
		})
	}
}

func TestReadCycle(t *testing.T) {
	b, tp, _ := newTestBus(t, 1, 16)
	b.SetReadMode()
	for i, pin := range tp.io {
		if pin.P != gpio.PullNoChange {
			t.Fatalf("IO%d pull = %v, want %v", i, pin.P, gpio.PullNoChange)
		}
		pin.L = gpio.Level(0xC33C>>i&1 != 0)
	}

	v, n := b.ReadCycle(bus.Width16, bus.Strobe{})
	if n != 1 || v != 0xC33C {
		t.Errorf("ReadCycle(16) = %#04x, %d, want 0xc33c, 1", v, n)
	}
	v, n = b.ReadCycle(bus.Width8, bus.Strobe{})
	if n != 1 || v != 0x3C {
		t.Errorf("ReadCycle(8) = %#04x, %d, want 0x3c, 1", v, n)
	}
	if tp.re.Read() != gpio.High {
		t.Error("RE left asserted")
	}
}

func TestSetLatch(t *testing.T) {
	tests := []struct {
		latch    bus.Latch
		cle, ale gpio.Level
	}{
		{bus.LatchCommand, gpio.High, gpio.Low},
		{bus.LatchAddress, gpio.Low, gpio.High},
		{bus.LatchNeutral, gpio.Low, gpio.Low},
	}
	b, tp, _ := newTestBus(t, 1, 8)
	for _, tt := range tests {
		t.Run(tt.latch.String(), func(t *testing.T) {
			b.SetLatch(tt.latch)
			if tp.cle.Read() != tt.cle || tp.ale.Read() != tt.ale {
				t.Errorf("CLE, ALE = %v, %v, want %v, %v", tp.cle.Read(), tp.ale.Read(), tt.cle, tt.ale)
			}
		})
	}
}

func TestSelectAndProtect(t *testing.T) {
	b, tp, _ := newTestBus(t, 2, 8)

	b.SetLUNSelect(1, true)
	if tp.ce[1].Read() != gpio.Low || tp.ce[0].Read() != gpio.High {
		t.Errorf("CE = %v, %v, want High, Low", tp.ce[0].Read(), tp.ce[1].Read())
	}
	b.SetLUNSelect(5, true) // ignored
	b.SetLUNSelect(1, false)
	if tp.ce[1].Read() != gpio.High {
		t.Error("CE1 still asserted")
	}

	b.SetWriteProtect(false)
	if tp.wp.Read() != gpio.High {
		t.Error("WP# asserted after SetWriteProtect(false)")
	}
	b.SetLUNSelect(0, true)
	if err := b.Halt(); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if tp.ce[0].Read() != gpio.High || tp.wp.Read() != gpio.Low {
		t.Error("Halt() did not release CE0 and assert WP#")
	}
}

func TestReady(t *testing.T) {
	b, tp, _ := newTestBus(t, 2, 8)
	if !b.Ready(0) || !b.Ready(1) {
		t.Fatal("pulled-up R/B# should read ready")
	}
	tp.rb[1].L = gpio.Low
	if !b.Ready(0) || b.Ready(1) {
		t.Errorf("Ready() = %v, %v, want true, false", b.Ready(0), b.Ready(1))
	}
	if b.Ready(-1) || b.Ready(2) {
		t.Error("Ready() on an unwired LUN should be false")
	}
}

type failingPin struct {
	*gpiotest.Pin
}

func (p *failingPin) Out(gpio.Level) error {
	return errors.New("pin stuck")
}

func TestPinFailure(t *testing.T) {
	tp := newTestPins(1, 8)
	p := tp.pins()
	b, err := New(p, WithClock(deadline.NewManual(0)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b.pins.WE = &failingPin{tp.we}

	if n := b.WriteCycle(bus.Width8, 0x90, bus.Strobe{}); n != 0 {
		t.Errorf("WriteCycle() = %d, want 0", n)
	}
	if err := b.Err(); !errors.Is(err, pkg.ErrIO) {
		t.Errorf("Err() = %v, want %v", err, pkg.ErrIO)
	}
}

func TestResolve(t *testing.T) {
	tp := newTestPins(1, 8)
	all := []*gpiotest.Pin{tp.re, tp.we, tp.wp, tp.cle, tp.ale, tp.ce[0], tp.rb[0]}
	all = append(all, tp.io...)
	for _, pin := range all {
		pin.N = "PINBUS_TEST_" + pin.N
		if err := gpioreg.Register(pin); err != nil {
			t.Fatalf("Register(%s) error = %v", pin.N, err)
		}
		name := pin.N
		t.Cleanup(func() { _ = gpioreg.Unregister(name) })
	}

	names := Names{
		CE: []string{"PINBUS_TEST_CE0"}, RB: []string{"PINBUS_TEST_RB0"},
		RE: "PINBUS_TEST_RE", WE: "PINBUS_TEST_WE", WP: "PINBUS_TEST_WP",
		CLE: "PINBUS_TEST_CLE", ALE: "PINBUS_TEST_ALE",
	}
	for i := 0; i < 8; i++ {
		names.IO = append(names.IO, fmt.Sprintf("PINBUS_TEST_IO%d", i))
	}

	p, err := Resolve(names)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if p.IO[7].Name() != "PINBUS_TEST_IO7" {
		t.Errorf("IO[7] = %s, want PINBUS_TEST_IO7", p.IO[7].Name())
	}

	names.ALE = "PINBUS_TEST_MISSING"
	if _, err := Resolve(names); !errors.Is(err, pkg.ErrInvalidParameter) {
		t.Errorf("Resolve(missing) error = %v, want %v", err, pkg.ErrInvalidParameter)
	}
}
