// Package procs inspects the OS process table and spawns detached processes.
//
// The dispatcher's single-instance guard is a best-effort check over the
// process table, not a lock: between the check and the spawn another
// dispatcher can start the same application. That race is accepted; the
// guard exists to stop the common double-click case, not to serialize
// launches.
package procs

import (
	"fmt"
	"os/exec"
	"syscall"

	processinfo "github.com/shirou/gopsutil/process"
)

// ProcessTable reports whether a process with a given command name is
// currently running.
type ProcessTable interface {
	// Running reports whether any running process has exactly the given
	// command name. The comparison is case-sensitive.
	Running(name string) (bool, error)
}

// SystemTable implements ProcessTable against the OS process table.
type SystemTable struct{}

// NewSystemTable creates a new SystemTable.
func NewSystemTable() *SystemTable {
	return &SystemTable{}
}

// Running scans the process table for a process named name.
func (t *SystemTable) Running(name string) (bool, error) {
	procs, err := processinfo.Processes()
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			// Processes can exit between enumeration and inspection.
			continue
		}
		if pname == name {
			return true, nil
		}
	}
	return false, nil
}

// Runner starts executables as independent processes.
type Runner interface {
	// Start launches path with args as a detached process and returns its
	// PID without waiting for it.
	Start(path string, args []string) (int, error)
}

// DetachedRunner implements Runner by starting the child in its own session
// with stdio detached, so it outlives the dispatcher.
type DetachedRunner struct{}

// NewDetachedRunner creates a new DetachedRunner.
func NewDetachedRunner() *DetachedRunner {
	return &DetachedRunner{}
}

// Start launches path with args in a new session and releases the child.
func (r *DetachedRunner) Start(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", path, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release child process: %w", err)
	}
	return pid, nil
}

// FakeTable implements ProcessTable with a fixed set of names, for testing.
type FakeTable struct {
	names map[string]struct{}
}

// NewFakeTable creates a FakeTable reporting the given names as running.
func NewFakeTable(names ...string) *FakeTable {
	t := &FakeTable{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		t.names[n] = struct{}{}
	}
	return t
}

// Add marks a name as running.
func (t *FakeTable) Add(name string) {
	t.names[name] = struct{}{}
}

// Running reports whether name was registered.
func (t *FakeTable) Running(name string) (bool, error) {
	_, ok := t.names[name]
	return ok, nil
}

// Invocation records a single FakeRunner start.
type Invocation struct {
	Path string
	Args []string
}

// FakeRunner implements Runner by recording invocations, for testing.
type FakeRunner struct {
	// Started holds every recorded invocation in order.
	Started []Invocation

	// Err, when set, is returned instead of recording.
	Err error
}

// Start records the invocation and returns a synthetic PID.
func (r *FakeRunner) Start(path string, args []string) (int, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.Started = append(r.Started, Invocation{Path: path, Args: args})
	return 1000 + len(r.Started), nil
}
