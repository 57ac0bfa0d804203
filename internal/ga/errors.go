package ga

import "errors"

var (
	// ErrChronometerNotTic is returned when elapsed time is queried before
	// a generation's timer has been started.
	ErrChronometerNotTic = errors.New("ga: chronometer not started")

	// ErrInvalidConfiguration wraps mode/callback mismatches and out-of-range
	// parameters rejected by Config.Validate.
	ErrInvalidConfiguration = errors.New("ga: invalid configuration")

	// ErrInvariantViolation wraps programmer errors surfaced mid-run: zero
	// reduced objectives, an empty first generation, a size mismatch between
	// a callback's output and the expected shape.
	ErrInvariantViolation = errors.New("ga: invariant violation")
)
