package mars

import "github.com/go-corewar/mars/pkg/redcode"

// execute runs the opcode currently loaded into the IR, updating memory,
// spawning or terminating processes, and advancing pc. One function per
// opcode, each switching over OpMode where the opcode has operand halves
// (spec.md §4.4).
func (m *MARS) execute() Event {
	switch m.ir.Code {
	case redcode.DAT:
		return m.execDat()
	case redcode.MOV:
		return m.execMov()
	case redcode.ADD:
		return m.execArith(func(b, a redcode.Offset) (redcode.Offset, bool) { return b + a, true })
	case redcode.SUB:
		return m.execArith(func(b, a redcode.Offset) (redcode.Offset, bool) { return b - a, true })
	case redcode.MUL:
		return m.execArith(func(b, a redcode.Offset) (redcode.Offset, bool) { return b * a, true })
	case redcode.DIV:
		return m.execArith(func(b, a redcode.Offset) (redcode.Offset, bool) {
			if a == 0 {
				return 0, false
			}
			return b / a, true
		})
	case redcode.MOD:
		return m.execArith(func(b, a redcode.Offset) (redcode.Offset, bool) {
			if a == 0 {
				return 0, false
			}
			return b % a, true
		})
	case redcode.JMP:
		return m.execJmp()
	case redcode.JMZ:
		return m.execJmz()
	case redcode.JMN:
		return m.execJmn()
	case redcode.DJN:
		return m.execDjn()
	case redcode.SPL:
		return m.execSpl()
	case redcode.SEQ:
		return m.execSkipIf(func(a, b redcode.Offset) bool { return a == b })
	case redcode.SNE:
		return m.execSkipIf(func(a, b redcode.Offset) bool { return a != b })
	case redcode.SLT:
		return m.execSkipIf(func(a, b redcode.Offset) bool { return a < b })
	case redcode.LDP:
		return m.execLdp()
	case redcode.STP:
		return m.execStp()
	case redcode.NOP:
		return m.stepAndQueue()
	default:
		return m.stepAndQueue()
	}
}

// execDat terminates the current process: its pc is simply not requeued.
func (m *MARS) execDat() Event {
	return terminatedEvent(m.current.pid)
}

// execMov copies per OpMode; I copies the whole instruction.
func (m *MARS) execMov() Event {
	a := m.fetchEffectiveA()
	b := m.fetchEffectiveB()

	switch m.ir.Mode {
	case redcode.OpModeA:
		b.A = a.A
	case redcode.OpModeB:
		b.B = a.B
	case redcode.OpModeAB:
		b.B = a.A
	case redcode.OpModeBA:
		b.A = a.B
	case redcode.OpModeF:
		b.A, b.B = a.A, a.B
	case redcode.OpModeX:
		b.A, b.B = a.B, a.A
	case redcode.OpModeI:
		b = a
	}

	m.storeEffectiveB(b)
	return m.stepAndQueue()
}

// execArith implements ADD/SUB/MUL/DIV/MOD: combine is applied per OpMode
// to the relevant offset halves. combine returns ok=false on division by
// zero, which terminates the process without writing (spec.md §4.4, §4.8).
func (m *MARS) execArith(combine func(b, a redcode.Offset) (redcode.Offset, bool)) Event {
	a := m.fetchEffectiveA()
	b := m.fetchEffectiveB()
	size := m.memory.Size()

	reduce := func(v redcode.Offset) redcode.Offset {
		s := int(v) % size
		if s < 0 {
			s += size
		}
		return redcode.Offset(s)
	}

	var ok bool
	switch m.ir.Mode {
	case redcode.OpModeA:
		var v redcode.Offset
		if v, ok = combine(b.A.Offset, a.A.Offset); ok {
			b.A.Offset = reduce(v)
		}
	case redcode.OpModeB:
		var v redcode.Offset
		if v, ok = combine(b.B.Offset, a.B.Offset); ok {
			b.B.Offset = reduce(v)
		}
	case redcode.OpModeAB:
		var v redcode.Offset
		if v, ok = combine(b.B.Offset, a.A.Offset); ok {
			b.B.Offset = reduce(v)
		}
	case redcode.OpModeBA:
		var v redcode.Offset
		if v, ok = combine(b.A.Offset, a.B.Offset); ok {
			b.A.Offset = reduce(v)
		}
	case redcode.OpModeF, redcode.OpModeI:
		var v1, v2 redcode.Offset
		if v1, ok = combine(b.A.Offset, a.A.Offset); ok {
			if v2, ok = combine(b.B.Offset, a.B.Offset); ok {
				b.A.Offset, b.B.Offset = reduce(v1), reduce(v2)
			}
		}
	case redcode.OpModeX:
		var v1, v2 redcode.Offset
		if v1, ok = combine(b.B.Offset, a.A.Offset); ok {
			if v2, ok = combine(b.A.Offset, a.B.Offset); ok {
				b.B.Offset, b.A.Offset = reduce(v1), reduce(v2)
			}
		}
	}

	if !ok {
		return terminatedEvent(m.current.pid)
	}
	m.storeEffectiveB(b)
	return m.stepAndQueue()
}

// execJmp jumps to effective-A, applying normal pre/post-decrement side
// effects on the way (resolved already by the step loop). Ignores B.
func (m *MARS) execJmp() Event {
	return m.jumpAndQueue(m.effectiveAddrA())
}

// zeroTest evaluates whether the relevant half(s) of b are all zero, per
// OpMode, matching the A/BA and B/AB pairing real Redcode JMZ/JMN use.
func zeroTest(mode redcode.OpMode, b redcode.Instruction) bool {
	switch mode {
	case redcode.OpModeA, redcode.OpModeBA:
		return b.A.Offset == 0
	case redcode.OpModeB, redcode.OpModeAB:
		return b.B.Offset == 0
	default: // F, I, X
		return b.A.Offset == 0 && b.B.Offset == 0
	}
}

func (m *MARS) execJmz() Event {
	b := m.fetchEffectiveB()
	if zeroTest(m.ir.Mode, b) {
		return m.jumpAndQueue(m.effectiveAddrA())
	}
	return m.stepAndQueue()
}

func (m *MARS) execJmn() Event {
	b := m.fetchEffectiveB()
	if !zeroTest(m.ir.Mode, b) {
		return m.jumpAndQueue(m.effectiveAddrA())
	}
	return m.stepAndQueue()
}

// execDjn decrements the B-operand (per OpMode), writes it back, then
// behaves as JMN.
func (m *MARS) execDjn() Event {
	b := m.fetchEffectiveB()
	size := m.memory.Size()
	dec := func(v redcode.Offset) redcode.Offset {
		s := (int(v) - 1) % size
		if s < 0 {
			s += size
		}
		return redcode.Offset(s)
	}

	switch m.ir.Mode {
	case redcode.OpModeA, redcode.OpModeBA:
		b.A.Offset = dec(b.A.Offset)
	case redcode.OpModeB, redcode.OpModeAB:
		b.B.Offset = dec(b.B.Offset)
	default: // F, I, X
		b.A.Offset = dec(b.A.Offset)
		b.B.Offset = dec(b.B.Offset)
	}
	m.storeEffectiveB(b)

	return m.execJmn()
}

// execSpl enqueues effective-A onto the warrior's own queue after the
// stepped pc, unless the process cap has been reached.
func (m *MARS) execSpl() Event {
	if m.processCountDuringExec() < m.maxProcesses {
		target := m.effectiveAddrA()
		m.stepAndQueue()
		m.current.pushBack(target)
		return eventSplitValue
	}
	return m.stepAndQueue()
}

// execSkipIf skips (pc+2) iff cmp holds under OpMode, else steps normally.
// Comparisons always use the canonical §3 OpMode mapping, not the BA typo
// present in the source this was ported from.
func (m *MARS) execSkipIf(cmp func(a, b redcode.Offset) bool) Event {
	a := m.fetchEffectiveA()
	b := m.fetchEffectiveB()

	var skip bool
	switch m.ir.Mode {
	case redcode.OpModeA:
		skip = cmp(a.A.Offset, b.A.Offset)
	case redcode.OpModeB:
		skip = cmp(a.B.Offset, b.B.Offset)
	case redcode.OpModeAB:
		skip = cmp(a.A.Offset, b.B.Offset)
	case redcode.OpModeBA:
		skip = cmp(a.B.Offset, b.A.Offset)
	case redcode.OpModeX:
		skip = cmp(a.A.Offset, b.B.Offset) && cmp(a.B.Offset, b.A.Offset)
	default: // F, I
		skip = cmp(a.A.Offset, b.A.Offset) && cmp(a.B.Offset, b.B.Offset)
	}

	if skip {
		return m.skipAndQueue()
	}
	return m.stepAndQueue()
}

// execLdp copies from p-space at pin of the current warrior, indexed by
// effective-A, into memory at effective-B. A no-op if the warrior has no
// pin allocated.
func (m *MARS) execLdp() Event {
	src, err := m.pspace.Fetch(m.current.pin, m.effectiveAddrA())
	if err == nil {
		b := m.fetchEffectiveB()
		b = applyFieldMode(m.ir.Mode, src, b)
		m.storeEffectiveB(b)
	}
	return m.stepAndQueue()
}

// execStp is the inverse of LDP: memory at effective-A into p-space at
// effective-B.
func (m *MARS) execStp() Event {
	a := m.fetchEffectiveA()
	dst, err := m.pspace.Fetch(m.current.pin, m.effectiveAddrB())
	if err == nil {
		dst = applyFieldMode(m.ir.Mode, a, dst)
		_ = m.pspace.Store(m.current.pin, m.effectiveAddrB(), dst)
	}
	return m.stepAndQueue()
}

// applyFieldMode copies whole Fields (addressing mode included) from a into
// b per OpMode, as MOV/LDP/STP do.
func applyFieldMode(mode redcode.OpMode, a, b redcode.Instruction) redcode.Instruction {
	switch mode {
	case redcode.OpModeA:
		b.A = a.A
	case redcode.OpModeB:
		b.B = a.B
	case redcode.OpModeAB:
		b.B = a.A
	case redcode.OpModeBA:
		b.A = a.B
	case redcode.OpModeF:
		b.A, b.B = a.A, a.B
	case redcode.OpModeX:
		b.A, b.B = a.B, a.A
	case redcode.OpModeI:
		b = a
	}
	return b
}
