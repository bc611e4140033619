package parkfee

import "errors"

// Input validation errors, surfaced synchronously at the entry to Optimize
// (spec.md §7). Wrapped with additional detail via fmt.Errorf("%w: ...", ...)
// at the point of failure, so callers can still errors.Is against these.
var (
	ErrNoZones         = errors.New("parkfee: city has zero zones")
	ErrInvalidZone     = errors.New("parkfee: zone violates invariants")
	ErrInvalidCity     = errors.New("parkfee: city violates invariants")
	ErrInvalidSettings = errors.New("parkfee: optimizer settings violate invariants")

	// ErrEvaluation is returned by Optimize when the search ends with an
	// empty final population. Evaluators have no error return: a panicking
	// evaluator is not recovered and aborts Optimize, and there is no
	// per-individual retry.
	ErrEvaluation = errors.New("parkfee: evaluator failed")
)
