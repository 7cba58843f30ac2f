package redcode

import "fmt"

// Address is a non-negative index into core memory, always in [0, size).
type Address int

// Offset is a signed displacement from an Address.
type Offset int

// Pin is a warrior identity token used to key p-space. The loader takes it
// from each load spec as given; it is not derived from the load index.
type Pin int

// Pid identifies a warrior within a running match.
type Pid int

// Field is one half of an instruction: an addressing mode paired with a
// signed offset.
type Field struct {
	Mode   AddressingMode
	Offset Offset
}

// Instruction is the value spec.md §3 describes: an opcode, an opcode mode,
// and two operand fields.
type Instruction struct {
	Code OpCode
	Mode OpMode
	A    Field
	B    Field
}

// Default returns the zero-value Redcode cell: DAT.F #0, #0. A process that
// executes it dies.
func Default() Instruction {
	return Instruction{
		Code: DAT,
		Mode: OpModeF,
		A:    Field{Mode: Immediate, Offset: 0},
		B:    Field{Mode: Immediate, Offset: 0},
	}
}

// String renders a compact one-line form, used only in logs and test
// failure messages — not a display/disassembly feature.
func (i Instruction) String() string {
	return fmt.Sprintf("%s.%s %s%d, %s%d", i.Code, i.Mode, i.A.Mode, i.A.Offset, i.B.Mode, i.B.Offset)
}

// Program is a sequence of instructions, as loaded from an (external)
// assembler. go-mars accepts already-assembled programs; parsing Redcode
// source is out of scope.
type Program []Instruction

// WrapAddr computes (base + offset) mod size, wrapping negative offsets
// sign-correctly so that, e.g. with size=10, base=0, offset=-1 resolves to
// address 9.
func WrapAddr(base Address, offset Offset, size int) Address {
	if size <= 0 {
		return 0
	}
	sum := (int(base) + int(offset)) % size
	if sum < 0 {
		sum += size
	}
	return Address(sum)
}

// RingDistance is the shorter of the two distances between a and b around a
// ring of the given size.
func RingDistance(a, b Address, size int) int {
	if size <= 0 {
		return 0
	}
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if size-d < d {
		return size - d
	}
	return d
}
