package store

import "errors"

var (
	// ErrExerciseNotFound is returned when no template has the given id.
	ErrExerciseNotFound = errors.New("store: exercise not found")
	// ErrInvalidExercise is returned for templates without a name, category
	// or positive phase.
	ErrInvalidExercise = errors.New("store: invalid exercise")
	// ErrInvalidPhase is returned for non-positive phases.
	ErrInvalidPhase = errors.New("store: invalid phase")
	// ErrInvalidCategory is returned for empty category names.
	ErrInvalidCategory = errors.New("store: invalid category")
	// ErrPhaseInUse is returned when removing a phase that templates still
	// reference.
	ErrPhaseInUse = errors.New("store: phase in use")
	// ErrInvalidLog is returned for log entries without an exercise or date.
	ErrInvalidLog = errors.New("store: invalid log entry")
)
