// Command marsctl is a small demonstration CLI for the mars simulator. It
// loads one of a handful of canned warriors and either single-steps a
// match while printing events, or benchmarks a warrior against itself
// across many concurrent matches.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-corewar/mars/pkg/batch"
	"github.com/go-corewar/mars/pkg/mars"
	"github.com/go-corewar/mars/pkg/redcode"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marsctl",
		Short: "Run canned Redcode warriors against each other",
	}

	var warriorAName, warriorBName string
	var maxSteps int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Step a two-warrior match and print each event",
		RunE: func(cmd *cobra.Command, args []string) error {
			progA, err := namedWarrior(warriorAName)
			if err != nil {
				return err
			}
			progB, err := namedWarrior(warriorBName)
			if err != nil {
				return err
			}

			vm, err := mars.NewBuilder().BuildAndLoad([]mars.LoadSpec{
				{Program: progA, Origin: 0, Pin: 0},
				{Program: progB, Origin: 4000, Pin: 1},
			})
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}

			fmt.Printf("%s vs %s, core size %d\n", warriorAName, warriorBName, vm.Size())
			for step := 0; step < maxSteps && !vm.Halted(); step++ {
				ev, err := vm.Step()
				if err != nil {
					return err
				}
				fmt.Printf("  cycle %-6d pid %-2d pc %-6d %s\n", vm.Cycle(), vm.Pid(), vm.PC(), ev)
			}

			survivors := vm.Pids()
			switch {
			case len(survivors) == 1:
				fmt.Printf("winner: pid %d\n", survivors[0])
			default:
				fmt.Println("result: tie")
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&warriorAName, "a", "imp", "first warrior (imp, dwarf, or idiot)")
	runCmd.Flags().StringVar(&warriorBName, "b", "dwarf", "second warrior (imp, dwarf, or idiot)")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 200, "maximum steps to print before stopping")

	var benchRounds int
	var benchWorkers int

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a warrior against itself many times concurrently and tally outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := namedWarrior(warriorAName)
			if err != nil {
				return err
			}

			matches := make([]batch.Match, benchRounds)
			for i := range matches {
				matches[i] = batch.Match{
					Builder: mars.NewBuilder(),
					Specs: []mars.LoadSpec{
						{Program: prog, Origin: 0, Pin: 0},
						{Program: prog, Origin: 4000, Pin: 1},
					},
					Warriors: []string{"first", "second"},
				}
			}

			runner := batch.NewRunner(benchWorkers)
			runner.RunAll(matches)

			run, failed := runner.Stats()
			wins := runner.Report.Wins()
			fmt.Printf("%s vs itself: %d matches run, %d failed\n", warriorAName, run, failed)
			fmt.Printf("  first:  %d wins\n", wins["first"])
			fmt.Printf("  second: %d wins\n", wins["second"])
			fmt.Printf("  ties:   %d\n", run-int64(wins["first"])-int64(wins["second"]))
			return nil
		},
	}
	benchCmd.Flags().StringVar(&warriorAName, "warrior", "imp", "warrior to self-play (imp, dwarf, or idiot)")
	benchCmd.Flags().IntVar(&benchRounds, "rounds", 100, "number of matches to run")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "worker goroutines (0 = NumCPU)")

	rootCmd.AddCommand(runCmd, benchCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// namedWarrior returns one of a small set of canned, pre-assembled
// warriors. Parsing Redcode source is out of scope for this tool.
func namedWarrior(name string) (redcode.Program, error) {
	switch name {
	case "imp":
		return redcode.Program{
			{Code: redcode.MOV, Mode: redcode.OpModeI,
				A: redcode.Field{Mode: redcode.Direct, Offset: 0},
				B: redcode.Field{Mode: redcode.Direct, Offset: 1}},
		}, nil
	case "dwarf":
		return redcode.Program{
			{Code: redcode.ADD, Mode: redcode.OpModeAB,
				A: redcode.Field{Mode: redcode.Immediate, Offset: 4},
				B: redcode.Field{Mode: redcode.Direct, Offset: 3}},
			{Code: redcode.MOV, Mode: redcode.OpModeI,
				A: redcode.Field{Mode: redcode.Direct, Offset: 2},
				B: redcode.Field{Mode: redcode.AIndirect, Offset: 2}},
			{Code: redcode.JMP, Mode: redcode.OpModeA,
				A: redcode.Field{Mode: redcode.Direct, Offset: -2},
				B: redcode.Field{Mode: redcode.Direct, Offset: 0}},
			{Code: redcode.DAT, Mode: redcode.OpModeF,
				A: redcode.Field{Mode: redcode.Immediate, Offset: 0},
				B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
		}, nil
	case "idiot":
		return redcode.Program{
			{Code: redcode.JMP, Mode: redcode.OpModeA,
				A: redcode.Field{Mode: redcode.Direct, Offset: 0},
				B: redcode.Field{Mode: redcode.Immediate, Offset: 0}},
		}, nil
	default:
		return nil, fmt.Errorf("unknown warrior %q: choose imp, dwarf, or idiot", name)
	}
}
