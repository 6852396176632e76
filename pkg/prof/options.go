package prof

// Options selects what a session records. Empty fields are skipped.
type Options struct {
	CPU  string // CPU profile path
	Heap string // Heap snapshot path, written when the session stops
	HTTP string // Address for the /debug/pprof handlers
}

// Requested reports whether any profile was asked for.
func (o Options) Requested() bool {
	return o.CPU != "" || o.Heap != "" || o.HTTP != ""
}

// Profile names a runtime/pprof snapshot profile.
type Profile string

// Snapshot profiles.
const (
	ProfileHeap      Profile = "heap"
	ProfileAllocs    Profile = "allocs"
	ProfileGoroutine Profile = "goroutine"
	ProfileBlock     Profile = "block"
	ProfileMutex     Profile = "mutex"
)
