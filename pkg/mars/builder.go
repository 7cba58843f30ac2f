package mars

import "github.com/go-corewar/mars/pkg/redcode"

// Default MARS parameters, matching the '94 standard as used by the
// reference MarsBuilder this was ported from.
const (
	DefaultSize         = 8000
	DefaultPSpaceSize   = 500
	DefaultMaxCycles    = 80000
	DefaultMaxProcesses = 8000
	DefaultMaxLength    = 100
	DefaultMinDistance  = 100
	DefaultVersion      = 80
)

// Builder configures a MARS before any program is loaded. NewBuilder
// starts from the standard defaults and WithX methods return the receiver
// for chaining. Build/BuildAndLoad use the fields exactly as set; a
// zero-valued Builder gets no defaults.
type Builder struct {
	size         int
	pspaceSize   int
	maxCycles    int
	maxProcesses int
	maxLength    int
	minDistance  int
	version      int
}

// NewBuilder returns a Builder pre-populated with the standard defaults.
func NewBuilder() *Builder {
	return &Builder{
		size:         DefaultSize,
		pspaceSize:   DefaultPSpaceSize,
		maxCycles:    DefaultMaxCycles,
		maxProcesses: DefaultMaxProcesses,
		maxLength:    DefaultMaxLength,
		minDistance:  DefaultMinDistance,
		version:      DefaultVersion,
	}
}

func (b *Builder) WithSize(size int) *Builder                 { b.size = size; return b }
func (b *Builder) WithPSpaceSize(size int) *Builder            { b.pspaceSize = size; return b }
func (b *Builder) WithMaxCycles(cycles int) *Builder           { b.maxCycles = cycles; return b }
func (b *Builder) WithMaxProcesses(processes int) *Builder     { b.maxProcesses = processes; return b }
func (b *Builder) WithMaxLength(length int) *Builder            { b.maxLength = length; return b }
func (b *Builder) WithMinDistance(distance int) *Builder       { b.minDistance = distance; return b }
func (b *Builder) WithVersion(version int) *Builder            { b.version = version; return b }

// Build returns a freshly constructed, halted MARS with no programs loaded.
// A successful Load or LoadBatch clears the halted state; BuildAndLoad does
// both in one call for the common case.
func (b *Builder) Build() *MARS {
	return &MARS{
		memory:       NewMemory(b.size),
		pspace:       NewPSpace(b.pspaceSize),
		schedule:     nil,
		halted:       true,
		maxLength:    b.maxLength,
		minDistance:  b.minDistance,
		version:      b.version,
		pspaceSize:   b.pspaceSize,
		maxProcesses: b.maxProcesses,
		maxCycles:    b.maxCycles,
	}
}

// BuildAndLoad constructs a MARS and loads every spec in order, assigning
// Pids 0..n-1. Each warrior's Pin is the spec's Pin as given; a spec that
// leaves Pin at zero uses pin 0, not its Pid. The returned MARS is ready to
// Step.
func (b *Builder) BuildAndLoad(specs []LoadSpec) (*MARS, error) {
	m := b.Build()
	if err := m.LoadBatch(specs); err != nil {
		return nil, err
	}
	m.halted = len(m.schedule) == 0
	return m, nil
}

// LoadSpec places a single program's origin on the memory ring. Pin keys
// the warrior's p-space; callers that don't use p-space may leave it at
// its zero value so long as that value isn't reused across warriors that
// do use LDP/STP.
type LoadSpec struct {
	Program redcode.Program
	Origin  redcode.Address
	Pin     redcode.Pin
}
