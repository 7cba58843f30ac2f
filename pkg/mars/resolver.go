package mars

import "github.com/go-corewar/mars/pkg/redcode"

// applyPreDecrement implements spec.md §4.3 step 1: for each of A and B, if
// its addressing mode is a pre-decrement mode, fetch the pointed-to
// instruction, decrement its A- or B-offset, and write it back. A is
// processed before B.
func (m *MARS) applyPreDecrement() {
	a, b := m.ir.A, m.ir.B
	if a.Mode.IsPreDecrement() {
		addr := redcode.WrapAddr(m.pc, a.Offset, m.memory.Size())
		cell := m.memory.Fetch(addr)
		switch a.Mode {
		case redcode.AIndirectPreDecrement:
			cell.A.Offset--
		case redcode.BIndirectPreDecrement:
			cell.B.Offset--
		}
		m.memory.Store(addr, cell)
	}
	if b.Mode.IsPreDecrement() {
		addr := redcode.WrapAddr(m.pc, b.Offset, m.memory.Size())
		cell := m.memory.Fetch(addr)
		switch b.Mode {
		case redcode.AIndirectPreDecrement:
			cell.A.Offset--
		case redcode.BIndirectPreDecrement:
			cell.B.Offset--
		}
		m.memory.Store(addr, cell)
	}
}

// applyPostIncrement is the symmetric step 4, run after execution.
func (m *MARS) applyPostIncrement() {
	a, b := m.ir.A, m.ir.B
	if a.Mode.IsPostIncrement() {
		addr := redcode.WrapAddr(m.pc, a.Offset, m.memory.Size())
		cell := m.memory.Fetch(addr)
		switch a.Mode {
		case redcode.AIndirectPostIncrement:
			cell.A.Offset++
		case redcode.BIndirectPostIncrement:
			cell.B.Offset++
		}
		m.memory.Store(addr, cell)
	}
	if b.Mode.IsPostIncrement() {
		addr := redcode.WrapAddr(m.pc, b.Offset, m.memory.Size())
		cell := m.memory.Fetch(addr)
		switch b.Mode {
		case redcode.AIndirectPostIncrement:
			cell.A.Offset++
		case redcode.BIndirectPostIncrement:
			cell.B.Offset++
		}
		m.memory.Store(addr, cell)
	}
}

// effectiveAddr computes the effective address of field f, loaded at the
// instruction currently in the IR (spec.md §4.3 step 2).
func (m *MARS) effectiveAddr(f redcode.Field) redcode.Address {
	size := m.memory.Size()
	switch f.Mode {
	case redcode.Immediate:
		return m.pc
	case redcode.Direct:
		return redcode.WrapAddr(m.pc, f.Offset, size)
	case redcode.AIndirect, redcode.AIndirectPreDecrement, redcode.AIndirectPostIncrement:
		direct := m.memory.Fetch(redcode.WrapAddr(m.pc, f.Offset, size))
		return redcode.WrapAddr(m.pc, f.Offset+direct.A.Offset, size)
	case redcode.BIndirect, redcode.BIndirectPreDecrement, redcode.BIndirectPostIncrement:
		direct := m.memory.Fetch(redcode.WrapAddr(m.pc, f.Offset, size))
		return redcode.WrapAddr(m.pc, f.Offset+direct.B.Offset, size)
	default:
		return m.pc
	}
}

func (m *MARS) effectiveAddrA() redcode.Address { return m.effectiveAddr(m.ir.A) }
func (m *MARS) effectiveAddrB() redcode.Address { return m.effectiveAddr(m.ir.B) }

// fetchEffectiveA/B read a snapshot of the operand at its effective address;
// later writes during execution never perturb an already-resolved read.
func (m *MARS) fetchEffectiveA() redcode.Instruction { return m.memory.Fetch(m.effectiveAddrA()) }
func (m *MARS) fetchEffectiveB() redcode.Instruction { return m.memory.Fetch(m.effectiveAddrB()) }

func (m *MARS) storeEffectiveB(instr redcode.Instruction) {
	m.memory.Store(m.effectiveAddrB(), instr)
}
