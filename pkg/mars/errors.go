package mars

import "errors"

// Boundary errors (spec.md §7). Internal anomalies — division by zero, an
// executed DAT, a warrior's queue running dry — are not errors; they are
// ordinary events the execute unit reports through Event, not through error.
var (
	// ErrAlreadyHalted is returned by Step when called on a halted MARS.
	ErrAlreadyHalted = errors.New("mars: step called on a halted MARS")

	// ErrProgramTooLong is returned by a load when a program exceeds MaxLength.
	ErrProgramTooLong = errors.New("mars: program exceeds max length")

	// ErrInvalidOffset is returned by a load when two programs are placed
	// closer than MinDistance apart on the memory ring.
	ErrInvalidOffset = errors.New("mars: programs violate minimum spacing")

	// ErrUnknownPin is returned by p-space access for a pin with no
	// allocation.
	ErrUnknownPin = errors.New("mars: unknown pin")
)
