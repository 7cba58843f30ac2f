// Package mars implements the Memory Array Redcode Simulator: the
// per-cycle evaluator at the heart of Core War. A MARS is built halted,
// loaded with one or more warrior programs, and then driven forward one
// instruction at a time via Step.
package mars

import (
	"github.com/golang/glog"

	"github.com/go-corewar/mars/pkg/redcode"
)

// MARS is a self-contained Core War virtual machine: shared circular
// memory, per-warrior p-space, and a round-robin scheduler over warrior
// process queues. A MARS value is owned by a single caller at a time; there
// is no internal locking (spec.md §5).
type MARS struct {
	memory Memory
	pspace PSpace

	schedule []*warrior // warriors awaiting their turn, FIFO
	current  *warrior   // warrior executing this step (nil between steps)
	pc       redcode.Address
	ir       redcode.Instruction

	origins []redcode.Address // load addresses, for spacing checks on further loads
	loaded  []LoadSpec        // last-loaded specs, for Reset/ResetHard

	cycle  int
	halted bool

	maxLength    int
	minDistance  int
	version      int
	pspaceSize   int
	maxProcesses int
	maxCycles    int
}

// Step advances exactly one instruction for exactly one process
// (spec.md §4.5).
func (m *MARS) Step() (Event, error) {
	if m.halted {
		return Event{}, ErrAlreadyHalted
	}
	if m.cycle >= m.maxCycles {
		m.halted = true
		return eventTiedValue, nil
	}

	m.current = m.schedule[0]
	m.schedule = m.schedule[1:]
	m.pc = m.current.popFront()
	m.ir = m.memory.Fetch(m.pc)

	glog.V(2).Infof("mars: cycle=%d pid=%d pc=%d ir=%s", m.cycle, m.current.pid, m.pc, m.ir)

	m.applyPreDecrement()
	execPC := m.pc
	event := m.execute()
	m.pc = execPC // post-increments address relative to the executed instruction
	m.applyPostIncrement()

	if m.current.alive() {
		m.schedule = append(m.schedule, m.current)
	}
	m.current = nil

	// A multi-warrior match finishes once at most one warrior remains; a
	// single-warrior match runs until its last process dies.
	if len(m.schedule) == 0 || (len(m.schedule) == 1 && len(m.loaded) > 1) {
		m.halted = true
		return eventFinishedValue, nil
	}

	m.cycle++
	return event, nil
}

// Halted reports whether the match has ended (a tie or a winner).
func (m *MARS) Halted() bool {
	return m.halted
}

// Halt forces the MARS into the halted state.
func (m *MARS) Halt() {
	m.halted = true
}

// PC returns the program counter of the process that runs next (the head of
// the next warrior's queue); during Step it is the executing process's pc.
// Valid only while the MARS is running.
func (m *MARS) PC() redcode.Address {
	if m.current != nil {
		return m.pc
	}
	if len(m.schedule) == 0 {
		return 0
	}
	return m.schedule[0].queue[0]
}

// Pid returns the warrior currently at the head of the schedule.
func (m *MARS) Pid() redcode.Pid {
	if m.current != nil {
		return m.current.pid
	}
	if len(m.schedule) == 0 {
		return 0
	}
	return m.schedule[0].pid
}

// Pids returns every live warrior's Pid, starting with whichever is next to
// execute.
func (m *MARS) Pids() []redcode.Pid {
	pids := make([]redcode.Pid, 0, len(m.schedule)+1)
	if m.current != nil {
		pids = append(pids, m.current.pid)
	}
	for _, w := range m.schedule {
		pids = append(pids, w.pid)
	}
	return pids
}

// Cycle returns the number of completed steps.
func (m *MARS) Cycle() int { return m.cycle }

// Size returns the size of core memory.
func (m *MARS) Size() int { return m.memory.Size() }

// Version returns the configured MARS version (major*100 + minor).
func (m *MARS) Version() int { return m.version }

// MaxCycles returns the configured cycle cap.
func (m *MARS) MaxCycles() int { return m.maxCycles }

// MaxProcesses returns the configured process cap.
func (m *MARS) MaxProcesses() int { return m.maxProcesses }

// MaxLength returns the configured maximum program length.
func (m *MARS) MaxLength() int { return m.maxLength }

// MinDistance returns the configured minimum warrior spacing.
func (m *MARS) MinDistance() int { return m.minDistance }

// Memory returns a read-only snapshot of core memory.
func (m *MARS) Memory() []redcode.Instruction { return m.memory.Snapshot() }

// ProcessCount returns the total number of live processes across every
// warrior, including the one currently executing.
func (m *MARS) ProcessCount() int {
	total := 0
	if m.current != nil {
		total = 1 + len(m.current.queue)
	}
	for _, w := range m.schedule {
		total += len(w.queue)
	}
	return total
}

// ProcessCounts returns the number of live processes per warrior Pid.
func (m *MARS) ProcessCounts() map[redcode.Pid]int {
	counts := make(map[redcode.Pid]int)
	if m.current != nil {
		counts[m.current.pid] = 1 + len(m.current.queue)
	}
	for _, w := range m.schedule {
		counts[w.pid] = len(w.queue)
	}
	return counts
}

// processCountDuringExec is like ProcessCount but callable mid-execute,
// before the current process's own new pc(s) have been pushed back. SPL
// uses this to decide whether it may still spawn (spec.md §4.4).
func (m *MARS) processCountDuringExec() int {
	total := 1 + len(m.current.queue)
	for _, w := range m.schedule {
		total += len(w.queue)
	}
	return total
}

// pc utility functions, mirroring spec.md §4.4's step/skip/jump-and-queue
// naming precisely.

func (m *MARS) stepPC() {
	m.pc = redcode.WrapAddr(m.pc, 1, m.memory.Size())
}

func (m *MARS) skipPC() {
	m.pc = redcode.WrapAddr(m.pc, 2, m.memory.Size())
}

func (m *MARS) jumpPC(addr redcode.Address) {
	m.pc = addr
}

func (m *MARS) stepAndQueue() Event {
	m.stepPC()
	m.current.pushBack(m.pc)
	return eventSteppedValue
}

func (m *MARS) skipAndQueue() Event {
	m.skipPC()
	m.current.pushBack(m.pc)
	return eventSkippedValue
}

func (m *MARS) jumpAndQueue(addr redcode.Address) Event {
	m.jumpPC(addr)
	m.current.pushBack(m.pc)
	return eventJumpedValue
}
