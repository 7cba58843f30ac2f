package mars

import (
	"testing"

	"github.com/go-corewar/mars/pkg/redcode"
)

func imp() redcode.Program {
	return redcode.Program{
		{Code: redcode.MOV, Mode: redcode.OpModeI, A: redcode.Field{Mode: redcode.Direct, Offset: 0}, B: redcode.Field{Mode: redcode.Direct, Offset: 1}},
	}
}

func dwarf() redcode.Program {
	return redcode.Program{
		{Code: redcode.ADD, Mode: redcode.OpModeAB, A: redcode.Field{Mode: redcode.Immediate, Offset: 4}, B: redcode.Field{Mode: redcode.Direct, Offset: 3}},
		{Code: redcode.MOV, Mode: redcode.OpModeI, A: redcode.Field{Mode: redcode.Direct, Offset: 2}, B: redcode.Field{Mode: redcode.AIndirect, Offset: 2}},
		{Code: redcode.JMP, Mode: redcode.OpModeA, A: redcode.Field{Mode: redcode.Direct, Offset: -2}, B: redcode.Field{Mode: redcode.Direct, Offset: 0}},
		{Code: redcode.DAT, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
}

func smallMars(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder().WithSize(100).WithMinDistance(10).WithMaxLength(20).WithMaxCycles(1000).WithMaxProcesses(64)
}

func TestImpAloneRunsForever(t *testing.T) {
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{{Program: imp(), Origin: 0, Pin: 0}})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	if m.Halted() {
		t.Fatalf("single imp should not be halted at start")
	}
	for i := 0; i < 50; i++ {
		ev, err := m.Step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !ev.IsStepped() {
			t.Errorf("step %d: got event %s, want Stepped", i, ev)
		}
	}
	if m.Halted() {
		t.Error("lone imp should never halt on its own")
	}
}

func TestDwarfJumpLandsOnEffectiveAddress(t *testing.T) {
	b := NewBuilder().WithSize(8000).WithMinDistance(100).WithMaxLength(100)
	m, err := b.BuildAndLoad([]LoadSpec{
		{Program: dwarf(), Origin: 4000, Pin: 0},
		{Program: imp(), Origin: 0, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}

	// Steps alternate dwarf/imp, so six steps run three dwarf instructions
	// and leave the dwarf at the head of the schedule.
	for i := 0; i < 6; i++ {
		if _, err := m.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if m.PC() != 4000 {
		t.Errorf("after three dwarf instructions, PC = %d, want 4000 (JMP must land on effective-A, not pc+effective-A)", m.PC())
	}
}

func TestImpAdvancesPC(t *testing.T) {
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{{Program: imp(), Origin: 0, Pin: 0}})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	if _, err := m.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if m.PC() != 1 {
		t.Errorf("after one step, PC = %d, want 1", m.PC())
	}
	cell := m.Memory()[1]
	if cell.Code != redcode.MOV {
		t.Errorf("imp did not copy itself forward: cell 1 = %s", cell)
	}
}

func TestDivByZeroTerminates(t *testing.T) {
	m := smallMars(t).Build()
	prog := redcode.Program{
		{Code: redcode.DIV, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Direct, Offset: 1}},
		{Code: redcode.NOP, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	second := imp()
	if loadErr := m.LoadBatch([]LoadSpec{
		{Program: prog, Origin: 0, Pin: 0},
		{Program: second, Origin: 50, Pin: 1},
		{Program: imp(), Origin: 25, Pin: 2},
	}); loadErr != nil {
		t.Fatalf("LoadBatch: %v", loadErr)
	}

	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	pid, ok := ev.IsTerminated()
	if !ok {
		t.Fatalf("division by zero: got event %s, want Terminated", ev)
	}
	if pid != 0 {
		t.Errorf("terminated pid = %d, want 0", pid)
	}
}

func TestSplSpawnsProcess(t *testing.T) {
	prog := redcode.Program{
		{Code: redcode.SPL, Mode: redcode.OpModeA, A: redcode.Field{Mode: redcode.Direct, Offset: 1}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
		{Code: redcode.NOP, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{
		{Program: prog, Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	before := m.ProcessCounts()[0]
	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	if !ev.IsSplit() {
		t.Errorf("SPL: got event %s, want Split", ev)
	}
	after := m.ProcessCounts()[0]
	if after != before+1 {
		t.Errorf("SPL: process count for pid 0 went %d -> %d, want +1", before, after)
	}
}

func TestSplRespectsProcessCap(t *testing.T) {
	prog := redcode.Program{
		{Code: redcode.SPL, Mode: redcode.OpModeA, A: redcode.Field{Mode: redcode.Direct, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	b := smallMars(t).WithMaxProcesses(1)
	m, err := b.BuildAndLoad([]LoadSpec{
		{Program: prog, Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	if ev.IsSplit() {
		t.Error("SPL at the process cap should not split")
	}
	if !ev.IsStepped() {
		t.Errorf("SPL at cap: got event %s, want Stepped", ev)
	}
}

func TestDatTerminatesProcess(t *testing.T) {
	prog := redcode.Program{
		{Code: redcode.DAT, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{
		{Program: prog, Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
		{Program: imp(), Origin: 25, Pin: 2},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	pid, ok := ev.IsTerminated()
	if !ok || pid != 0 {
		t.Errorf("DAT: got event %s, want Terminated(0)", ev)
	}
}

func TestLastWarriorStandingFinishes(t *testing.T) {
	datOnly := redcode.Program{
		{Code: redcode.DAT, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{
		{Program: datOnly, Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	if !ev.IsFinished() {
		t.Errorf("last-standing warrior: got event %s, want Finished (overriding Terminated)", ev)
	}
	if !m.Halted() {
		t.Error("MARS should be halted once only one warrior remains")
	}
}

func TestTwoSuicidesFinishAfterFirst(t *testing.T) {
	dat := redcode.Program{
		{Code: redcode.DAT, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{
		{Program: dat, Origin: 0, Pin: 0},
		{Program: dat, Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	ev, stepErr := m.Step()
	if stepErr != nil {
		t.Fatalf("step: %v", stepErr)
	}
	if !ev.IsFinished() {
		t.Errorf("after first DAT: got %s, want Finished (one warrior left)", ev)
	}
	if !m.Halted() {
		t.Error("should be halted after only one warrior remains")
	}
}

func TestStepOnHaltedMarsErrors(t *testing.T) {
	m := smallMars(t).Build()
	m.Halt()
	if _, err := m.Step(); err != ErrAlreadyHalted {
		t.Errorf("Step on halted MARS: got err %v, want ErrAlreadyHalted", err)
	}
}

func TestMaxCyclesProducesTie(t *testing.T) {
	b := smallMars(t).WithMaxCycles(3)
	m, err := b.BuildAndLoad([]LoadSpec{
		{Program: imp(), Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	var last Event
	for i := 0; i < 3 && !m.Halted(); i++ {
		last, err = m.Step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if !last.IsTied() {
		t.Errorf("after max cycles: got %s, want Tied", last)
	}
	if !m.Halted() {
		t.Error("MARS should halt once max cycles is reached")
	}
}

func TestLoadRejectsOverlongProgram(t *testing.T) {
	b := smallMars(t).WithMaxLength(1)
	_, err := b.BuildAndLoad([]LoadSpec{{Program: imp(), Origin: 0, Pin: 0}, {Program: dwarf(), Origin: 20, Pin: 1}})
	if err != ErrProgramTooLong {
		t.Errorf("overlong program: got err %v, want ErrProgramTooLong", err)
	}
}

func TestLoadRejectsTooCloseSpacing(t *testing.T) {
	b := smallMars(t).WithMinDistance(10)
	_, err := b.BuildAndLoad([]LoadSpec{
		{Program: imp(), Origin: 0, Pin: 0},
		{Program: imp(), Origin: 5, Pin: 1},
	})
	if err != ErrInvalidOffset {
		t.Errorf("too-close spacing: got err %v, want ErrInvalidOffset", err)
	}
}

func TestResetPreservesPSpace(t *testing.T) {
	m := smallMars(t).Build()
	specs := []LoadSpec{{Program: imp(), Origin: 0, Pin: 0}, {Program: imp(), Origin: 50, Pin: 1}}
	if err := m.LoadBatch(specs); err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	want := redcode.Instruction{Code: redcode.NOP, Mode: redcode.OpModeF}
	if err := m.pspace.Store(0, 3, want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := m.Reset(specs); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, err := m.pspace.Fetch(0, 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Code != redcode.NOP {
		t.Errorf("p-space cell after soft Reset = %s, want preserved NOP", got.Code)
	}
	if m.Cycle() != 0 || m.Halted() {
		t.Error("Reset should clear cycle count and halted state")
	}
}

func TestResetHardZeroesPSpace(t *testing.T) {
	m := smallMars(t).Build()
	specs := []LoadSpec{{Program: imp(), Origin: 0, Pin: 0}, {Program: imp(), Origin: 50, Pin: 1}}
	if err := m.LoadBatch(specs); err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if err := m.pspace.Store(0, 3, redcode.Instruction{Code: redcode.NOP}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := m.ResetHard(specs); err != nil {
		t.Fatalf("ResetHard: %v", err)
	}
	got, err := m.pspace.Fetch(0, 3)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Code != redcode.DAT {
		t.Errorf("p-space cell after ResetHard = %s, want zeroed DAT", got.Code)
	}
}

func TestPCAlwaysInRange(t *testing.T) {
	m, err := smallMars(t).BuildAndLoad([]LoadSpec{
		{Program: dwarf(), Origin: 0, Pin: 0},
		{Program: imp(), Origin: 50, Pin: 1},
	})
	if err != nil {
		t.Fatalf("BuildAndLoad: %v", err)
	}
	for i := 0; i < 200 && !m.Halted(); i++ {
		if _, err := m.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if m.PC() < 0 || int(m.PC()) >= m.Size() {
			t.Fatalf("step %d: PC = %d out of range [0, %d)", i, m.PC(), m.Size())
		}
	}
}
