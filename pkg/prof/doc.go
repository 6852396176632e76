// Package prof profiles nandctl runs with [runtime/pprof].
//
// Profiling is compiled in only with the "profile" build tag:
//
//	go build -tags profile ./cmd/nandctl
//	nandctl --sim --cpuprofile cpu.prof --memprofile heap.prof erase 0 -n 16
//
// Without the tag [Start] logs that profiling was requested and returns a
// stop function that does nothing, so callers keep their profiling hooks
// in place at no cost.
//
// # Sessions
//
// [Start] begins a session described by [Options]. The returned stop
// function ends the CPU profile and then writes the heap snapshot:
//
//	stop, err := prof.Start(prof.Options{CPU: "cpu.prof", Heap: "heap.prof"})
//	if err != nil {
//		return err
//	}
//	defer stop()
//
// Only one session may run at a time; a second [Start] returns
// [ErrActive].
//
// # HTTP
//
// Setting [Options.HTTP] serves the [net/http/pprof] handlers on that
// address for the lifetime of the process. Bit-banged transfers are slow
// enough that watching /debug/pprof/profile during a long erase is often
// easier than collecting a file.
package prof
