// Package profiling captures CPU, heap, and execution-trace profiles for
// diagnosing slow index scans and watcher event storms.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler owns the open profile files for one command run.
type Profiler struct {
	cpu   *os.File
	trace *os.File
}

// NewProfiler returns an idle Profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// StartCPU begins CPU profiling into path. The returned stop function
// flushes the profile and closes the file.
func (p *Profiler) StartCPU(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start cpu profile: %w", err)
	}
	p.cpu = f

	return func() {
		pprof.StopCPUProfile()
		_ = p.cpu.Close()
		p.cpu = nil
	}, nil
}

// WriteHeap snapshots the heap into path. Runs a collection first so the
// profile reflects live memory rather than collectable garbage.
func (p *Profiler) WriteHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}

// StartTrace begins an execution trace into path. The returned stop
// function ends the trace and closes the file.
func (p *Profiler) StartTrace(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file %s: %w", path, err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	p.trace = f

	return func() {
		trace.Stop()
		_ = p.trace.Close()
		p.trace = nil
	}, nil
}
