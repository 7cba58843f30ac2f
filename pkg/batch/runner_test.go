package batch

import (
	"testing"

	"github.com/go-corewar/mars/pkg/mars"
	"github.com/go-corewar/mars/pkg/redcode"
)

func imp() redcode.Program {
	return redcode.Program{
		{Code: redcode.MOV, Mode: redcode.OpModeI, A: redcode.Field{Mode: redcode.Direct, Offset: 0}, B: redcode.Field{Mode: redcode.Direct, Offset: 1}},
	}
}

func dat() redcode.Program {
	return redcode.Program{
		{Code: redcode.DAT, Mode: redcode.OpModeF, A: redcode.Field{Mode: redcode.Immediate, Offset: 0}, B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
	}
}

func builder() *mars.Builder {
	return mars.NewBuilder().WithSize(100).WithMinDistance(10).WithMaxLength(20).WithMaxCycles(500).WithMaxProcesses(64)
}

func TestRunMatchImpBeatsDat(t *testing.T) {
	m := Match{
		Builder: builder(),
		Specs: []mars.LoadSpec{
			{Program: imp(), Origin: 0, Pin: 0},
			{Program: dat(), Origin: 50, Pin: 1},
		},
		Warriors: []string{"imp", "dat-only"},
	}
	outcome, err := RunMatch(m)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if outcome.Winner != 0 {
		t.Errorf("winner = %d, want 0 (imp)", outcome.Winner)
	}
	if outcome.Warriors[outcome.Winner] != "imp" {
		t.Errorf("winning label = %q, want imp", outcome.Warriors[outcome.Winner])
	}
}

func TestRunMatchMutualDatSecondSurvives(t *testing.T) {
	m := Match{
		Builder: builder(),
		Specs: []mars.LoadSpec{
			{Program: dat(), Origin: 0, Pin: 0},
			{Program: dat(), Origin: 50, Pin: 1},
		},
	}
	outcome, err := RunMatch(m)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	// The first DAT kills warrior 0, leaving warrior 1 alone before it runs.
	if outcome.Winner != 1 {
		t.Errorf("winner = %d, want 1 (the DAT that never ran)", outcome.Winner)
	}
	if outcome.Warriors[0] != "warrior-0" || outcome.Warriors[1] != "warrior-1" {
		t.Errorf("default labels = %v, want [warrior-0 warrior-1]", outcome.Warriors)
	}
}

func TestRunAllCollectsEveryOutcome(t *testing.T) {
	matches := make([]Match, 0, 5)
	for i := 0; i < 5; i++ {
		matches = append(matches, Match{
			Builder: builder(),
			Specs: []mars.LoadSpec{
				{Program: imp(), Origin: 0, Pin: 0},
				{Program: dat(), Origin: 50, Pin: 1},
			},
		})
	}

	r := NewRunner(2)
	r.RunAll(matches)

	run, failed := r.Stats()
	if run != 5 || failed != 0 {
		t.Errorf("stats = (run=%d, failed=%d), want (5, 0)", run, failed)
	}
	if r.Report.Len() != 5 {
		t.Errorf("report has %d outcomes, want 5", r.Report.Len())
	}
}
