// Package deadline provides wraparound-safe deadline arithmetic over a
// 32-bit microsecond tick counter.
//
// Embedded targets expose a free-running counter that overflows every
// ~71 minutes. Deadlines are stored as raw tick values and compared through a
// signed difference, so a deadline set just before the counter wraps still
// expires at the right moment:
//
//	d := deadline.From(clk, 200*time.Microsecond)
//	for !ready() {
//	    if deadline.Remaining(clk, d) == 0 {
//	        return errTimeout
//	    }
//	}
//
// The [Clock] interface is the only dependency. [System] reads the host's
// monotonic clock; [Manual] is advanced explicitly and is meant for tests.
package deadline
