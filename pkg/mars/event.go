package mars

import (
	"fmt"

	"github.com/go-corewar/mars/pkg/redcode"
)

// Event is the single outcome reported by a successful Step call
// (spec.md §6.2). Exactly one is returned per call.
type Event struct {
	kind eventKind
	pid  redcode.Pid // valid only when kind == eventTerminated
}

type eventKind uint8

const (
	eventStepped eventKind = iota
	eventJumped
	eventSkipped
	eventSplit
	eventTerminated
	eventFinished
	eventTied
)

var eventNames = [...]string{
	eventStepped:    "Stepped",
	eventJumped:     "Jumped",
	eventSkipped:    "Skipped",
	eventSplit:      "Split",
	eventTerminated: "Terminated",
	eventFinished:   "Finished",
	eventTied:       "Tied",
}

func (e Event) String() string {
	if e.kind == eventTerminated {
		return fmt.Sprintf("Terminated(%d)", e.pid)
	}
	return eventNames[e.kind]
}

// IsTerminated reports whether this event is a Terminated(pid) event, and
// if so returns the Pid of the warrior whose process terminated.
func (e Event) IsTerminated() (redcode.Pid, bool) {
	return e.pid, e.kind == eventTerminated
}

func (e Event) IsStepped() bool    { return e.kind == eventStepped }
func (e Event) IsJumped() bool     { return e.kind == eventJumped }
func (e Event) IsSkipped() bool    { return e.kind == eventSkipped }
func (e Event) IsSplit() bool      { return e.kind == eventSplit }
func (e Event) IsFinished() bool   { return e.kind == eventFinished }
func (e Event) IsTied() bool       { return e.kind == eventTied }

var (
	eventSteppedValue  = Event{kind: eventStepped}
	eventJumpedValue   = Event{kind: eventJumped}
	eventSkippedValue  = Event{kind: eventSkipped}
	eventSplitValue    = Event{kind: eventSplit}
	eventFinishedValue = Event{kind: eventFinished}
	eventTiedValue     = Event{kind: eventTied}
)

func terminatedEvent(pid redcode.Pid) Event {
	return Event{kind: eventTerminated, pid: pid}
}
