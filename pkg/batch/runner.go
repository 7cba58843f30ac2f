// Package batch runs many independent MARS matches concurrently and
// collects their outcomes. It has no notion of tournament pairing or
// scoring — callers build the match list; batch only supplies the worker
// pool that drives each one to completion.
package batch

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/go-corewar/mars/pkg/mars"
	"github.com/go-corewar/mars/pkg/result"
)

// Match is one match to run: a configured, unloaded MARS builder plus the
// warriors to load into it. Warriors are labeled in load order for
// reporting; if shorter than specs, missing labels default to their pid.
type Match struct {
	Builder  *mars.Builder
	Specs    []mars.LoadSpec
	Warriors []string
}

// Runner distributes Matches across a fixed pool of goroutines and
// accumulates their Outcomes into a Report.
type Runner struct {
	NumWorkers int
	Report     *result.Report

	run  atomic.Int64
	fail atomic.Int64
}

// NewRunner creates a pool with the given number of workers. A
// non-positive count defaults to runtime.NumCPU().
func NewRunner(numWorkers int) *Runner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Runner{
		NumWorkers: numWorkers,
		Report:     result.NewReport(),
	}
}

// Stats returns the number of matches run and the number that errored out
// of the whole batch so far.
func (r *Runner) Stats() (run, failed int64) {
	return r.run.Load(), r.fail.Load()
}

// RunAll runs every match to completion, distributing them across
// r.NumWorkers goroutines, and blocks until all have finished.
func (r *Runner) RunAll(matches []Match) {
	ch := make(chan Match, len(matches))
	for _, m := range matches {
		ch <- m
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < r.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range ch {
				r.runOne(m)
			}
		}()
	}
	wg.Wait()
}

func (r *Runner) runOne(m Match) {
	outcome, err := RunMatch(m)
	if err != nil {
		r.fail.Add(1)
		glog.Errorf("batch: match failed: %v", err)
		return
	}
	r.run.Add(1)
	r.Report.Add(outcome)
}

// RunMatch builds, loads, and runs a single match to completion, returning
// its Outcome. It does not touch a Runner or Report — RunAll calls it, but
// it is equally usable standalone.
func RunMatch(m Match) (result.Outcome, error) {
	vm, err := m.Builder.BuildAndLoad(m.Specs)
	if err != nil {
		return result.Outcome{}, err
	}

	labels := make([]string, len(m.Specs))
	copy(labels, m.Warriors)
	for i := range labels {
		if labels[i] == "" {
			labels[i] = defaultLabel(i)
		}
	}

	for !vm.Halted() {
		if _, err := vm.Step(); err != nil {
			return result.Outcome{}, err
		}
	}

	winner := -1
	if survivors := vm.Pids(); len(survivors) == 1 {
		winner = int(survivors[0])
	}

	return result.Outcome{
		Warriors: labels,
		Winner:   winner,
		Cycles:   vm.Cycle(),
	}, nil
}

func defaultLabel(i int) string {
	return fmt.Sprintf("warrior-%d", i)
}
