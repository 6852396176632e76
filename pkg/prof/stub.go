//go:build !profile

package prof

import (
	"io"

	"github.com/ardnew/softnand/pkg"
)

// Enabled reports whether profiling was compiled in.
const Enabled = false

// Start logs a warning when o asks for profiles and returns a no-op stop.
func Start(o Options) (stop func() error, err error) {
	if o.Requested() {
		pkg.LogWarn(pkg.ComponentConfig, "profiling requested but not compiled in; rebuild with -tags profile")
	}
	return func() error { return nil }, nil
}

// Write is a no-op when built without the "profile" tag.
func Write(_ Profile, _ string) error {
	return nil
}

// WriteTo is a no-op when built without the "profile" tag.
func WriteTo(_ Profile, _ io.Writer) error {
	return nil
}
