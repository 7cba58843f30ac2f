package mars

import "github.com/go-corewar/mars/pkg/redcode"

// PSpace is the registry of per-warrior private storage: a mapping from a
// warrior's Pin to a fixed-size circular array of instructions, persistent
// across a soft Reset but zeroed by ResetHard (spec.md §4.2).
type PSpace struct {
	size  int
	store map[redcode.Pin][]redcode.Instruction
}

// NewPSpace creates an empty registry whose allocated arrays will be of the
// given size.
func NewPSpace(size int) PSpace {
	return PSpace{size: size, store: make(map[redcode.Pin][]redcode.Instruction)}
}

// Allocate ensures pin has a zeroed p-space, replacing any existing one.
func (p PSpace) Allocate(pin redcode.Pin) {
	cells := make([]redcode.Instruction, p.size)
	for i := range cells {
		cells[i] = redcode.Default()
	}
	p.store[pin] = cells
}

// Has reports whether pin has an allocated p-space.
func (p PSpace) Has(pin redcode.Pin) bool {
	_, ok := p.store[pin]
	return ok
}

// Fetch returns the instruction at addr mod size within pin's p-space, or
// ErrUnknownPin if pin has no allocation.
func (p PSpace) Fetch(pin redcode.Pin, addr redcode.Address) (redcode.Instruction, error) {
	cells, ok := p.store[pin]
	if !ok {
		return redcode.Instruction{}, ErrUnknownPin
	}
	return cells[wrapIndex(addr, len(cells))], nil
}

// Store writes instr at addr mod size within pin's p-space, or returns
// ErrUnknownPin if pin has no allocation.
func (p PSpace) Store(pin redcode.Pin, addr redcode.Address, instr redcode.Instruction) error {
	cells, ok := p.store[pin]
	if !ok {
		return ErrUnknownPin
	}
	cells[wrapIndex(addr, len(cells))] = instr
	return nil
}

func wrapIndex(addr redcode.Address, size int) int {
	a := int(addr) % size
	if a < 0 {
		a += size
	}
	return a
}
