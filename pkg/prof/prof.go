//go:build profile

package prof

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/pprof"
	"sync"

	_ "net/http/pprof" // Register HTTP handlers at /debug/pprof/

	"github.com/ardnew/softnand/pkg"
)

// Enabled reports whether profiling was compiled in.
const Enabled = true

// Profiling errors.
var (
	// ErrActive indicates a session is already running.
	ErrActive = errors.New("profiling session already active")

	// ErrInvalidProfile indicates an unknown snapshot profile.
	ErrInvalidProfile = errors.New("invalid profile")
)

var (
	// mu protects active.
	mu     sync.Mutex
	active bool
)

// Start begins a profiling session. The returned function ends it and
// reports the first error hit while writing profiles.
func Start(o Options) (stop func() error, err error) {
	mu.Lock()
	defer mu.Unlock()
	if active {
		return nil, ErrActive
	}

	var cpu *os.File
	if o.CPU != "" {
		if cpu, err = os.Create(o.CPU); err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpu); err != nil {
			cpu.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
	}
	if o.HTTP != "" {
		go func() {
			if err := http.ListenAndServe(o.HTTP, nil); err != nil {
				pkg.LogWarn(pkg.ComponentConfig, "pprof server stopped", "addr", o.HTTP, "err", err)
			}
		}()
	}
	active = true
	pkg.LogDebug(pkg.ComponentConfig, "profiling started", "cpu", o.CPU, "heap", o.Heap, "http", o.HTTP)

	var once sync.Once
	stop = func() error {
		var err error
		once.Do(func() {
			if cpu != nil {
				pprof.StopCPUProfile()
				err = cpu.Close()
			}
			if o.Heap != "" {
				if werr := Write(ProfileHeap, o.Heap); werr != nil && err == nil {
					err = werr
				}
			}
			mu.Lock()
			active = false
			mu.Unlock()
		})
		return err
	}
	return stop, nil
}

// Write writes a snapshot profile to path.
func Write(p Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTo(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo writes a snapshot profile to w in protobuf form.
func WriteTo(p Profile, w io.Writer) error {
	prof := pprof.Lookup(string(p))
	if prof == nil {
		return fmt.Errorf("%w: %q", ErrInvalidProfile, p)
	}
	return prof.WriteTo(w, 0)
}
