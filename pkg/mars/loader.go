package mars

import "github.com/go-corewar/mars/pkg/redcode"

// Load places a single program and returns its Pid. It is a thin wrapper
// around LoadBatch for the common one-warrior case.
func (m *MARS) Load(spec LoadSpec) (redcode.Pid, error) {
	pids, err := m.loadBatch([]LoadSpec{spec})
	if err != nil {
		return 0, err
	}
	return pids[0], nil
}

// LoadBatch validates and places every spec, assigning Pids in order
// starting after any warrior already loaded. A successful load clears the
// halted state whenever at least one warrior is scheduled.
func (m *MARS) LoadBatch(specs []LoadSpec) error {
	_, err := m.loadBatch(specs)
	return err
}

func (m *MARS) loadBatch(specs []LoadSpec) ([]redcode.Pid, error) {
	for _, spec := range specs {
		if len(spec.Program) > m.maxLength {
			return nil, ErrProgramTooLong
		}
	}
	for i, spec := range specs {
		for _, other := range m.origins {
			if redcode.RingDistance(spec.Origin, other, m.memory.Size()) < m.minDistance {
				return nil, ErrInvalidOffset
			}
		}
		for j := 0; j < i; j++ {
			if redcode.RingDistance(spec.Origin, specs[j].Origin, m.memory.Size()) < m.minDistance {
				return nil, ErrInvalidOffset
			}
		}
	}

	pids := make([]redcode.Pid, 0, len(specs))
	nextPid := redcode.Pid(len(m.loaded))
	for _, spec := range specs {
		for i, instr := range spec.Program {
			m.memory.Store(redcode.WrapAddr(spec.Origin, redcode.Offset(i), m.memory.Size()), instr)
		}
		if !m.pspace.Has(spec.Pin) {
			m.pspace.Allocate(spec.Pin)
		}

		w := &warrior{pid: nextPid, pin: spec.Pin, queue: []redcode.Address{spec.Origin}}
		m.schedule = append(m.schedule, w)

		m.origins = append(m.origins, spec.Origin)
		m.loaded = append(m.loaded, spec)
		pids = append(pids, nextPid)
		nextPid++
	}
	m.halted = len(m.schedule) == 0
	return pids, nil
}

// Reset reloads the given specs into a clean memory, restarting every
// warrior's process queue at its origin. Cycle count and halted state are
// cleared. Existing p-space contents are preserved (spec.md §4.2); use
// ResetHard to also zero p-space.
func (m *MARS) Reset(specs []LoadSpec) error {
	m.memory.Clear()
	m.schedule = nil
	m.current = nil
	m.origins = nil
	m.loaded = nil
	m.cycle = 0
	m.halted = false
	return m.LoadBatch(specs)
}

// ResetHard is Reset plus a full reallocation of every pin's p-space to
// zero.
func (m *MARS) ResetHard(specs []LoadSpec) error {
	for pin := range m.pspaceKeys() {
		m.pspace.Allocate(pin)
	}
	for _, spec := range specs {
		m.pspace.Allocate(spec.Pin)
	}
	return m.Reset(specs)
}

func (m *MARS) pspaceKeys() map[redcode.Pin]struct{} {
	keys := make(map[redcode.Pin]struct{}, len(m.loaded))
	for _, spec := range m.loaded {
		keys[spec.Pin] = struct{}{}
	}
	return keys
}
