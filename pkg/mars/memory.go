package mars

import "github.com/go-corewar/mars/pkg/redcode"

// Memory is the shared circular core: a fixed-size, ring-addressed sequence
// of instructions (spec.md §4.1). It never resizes after construction.
type Memory struct {
	cells []redcode.Instruction
}

// NewMemory allocates a zeroed (all-DAT.F #0,#0) memory of the given size.
func NewMemory(size int) Memory {
	cells := make([]redcode.Instruction, size)
	for i := range cells {
		cells[i] = redcode.Default()
	}
	return Memory{cells: cells}
}

// Size returns the number of cells in the ring.
func (m Memory) Size() int {
	return len(m.cells)
}

// Fetch returns the instruction at addr mod Size(). No bounds error is
// possible once Memory has been constructed.
func (m Memory) Fetch(addr redcode.Address) redcode.Instruction {
	return m.cells[m.wrap(addr)]
}

// Store writes instr at addr mod Size().
func (m Memory) Store(addr redcode.Address, instr redcode.Instruction) {
	m.cells[m.wrap(addr)] = instr
}

// Snapshot returns a read-only copy of the full memory contents.
func (m Memory) Snapshot() []redcode.Instruction {
	out := make([]redcode.Instruction, len(m.cells))
	copy(out, m.cells)
	return out
}

// Clear resets every cell back to the default DAT.F #0,#0.
func (m Memory) Clear() {
	for i := range m.cells {
		m.cells[i] = redcode.Default()
	}
}

func (m Memory) wrap(addr redcode.Address) int {
	size := len(m.cells)
	a := int(addr) % size
	if a < 0 {
		a += size
	}
	return a
}
