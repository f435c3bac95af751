// Package profile provides optional runtime profiling for liquid2jinja.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o liquid2jinja .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// A profile is written to Path when the profiler is stopped:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Analyze it with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile
