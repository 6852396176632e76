//go:build profile

package prof

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStart_WritesProfiles(t *testing.T) {
	dir := t.TempDir()
	o := Options{CPU: filepath.Join(dir, "cpu.prof"), Heap: filepath.Join(dir, "heap.prof")}

	stop, err := Start(o)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := Start(o); !errors.Is(err, ErrActive) {
		t.Errorf("second Start() error = %v, want %v", err, ErrActive)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop() error = %v", err)
	}
	if err := stop(); err != nil {
		t.Errorf("second stop() error = %v", err)
	}

	for _, path := range []string{o.CPU, o.Heap} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat(%s) error = %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}

	stop, err = Start(Options{})
	if err != nil {
		t.Fatalf("Start() after stop error = %v", err)
	}
	_ = stop()
}

func TestStart_BadPath(t *testing.T) {
	if _, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.prof")}); err == nil {
		t.Error("Start() error = nil, want error")
	}
}

func TestWriteTo(t *testing.T) {
	tests := []struct {
		profile Profile
		wantErr bool
	}{
		{ProfileHeap, false},
		{ProfileGoroutine, false},
		{ProfileMutex, false},
		{Profile("cpu"), true},
		{Profile("bogus"), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteTo(tt.profile, &buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WriteTo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("WriteTo() error = %v, want %v", err, ErrInvalidProfile)
			}
			if !tt.wantErr && buf.Len() == 0 {
				t.Error("WriteTo() wrote nothing")
			}
		})
	}
}
