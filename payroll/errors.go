/*
errors.go - Error types for the payroll engine

PURPOSE:
  All engine errors in one place. Note what is NOT here: malformed work
  periods. A period missing its date or times is a degraded-input case that
  contributes zero hours; it never aborts a calculation.

ERROR CATEGORIES:
  1. Value errors - Unparseable clock times and dates at the boundary
  2. Validation errors - Terms or hours the calculator refuses to run with

USAGE:
  if errors.Is(err, payroll.ErrNonPositiveWage) { ... }
*/
package payroll

import "errors"

var (
	// ErrInvalidClock is returned for an unparseable or out-of-range
	// time-of-day.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidDate is returned for an unparseable calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNonPositiveWage is returned when the hourly wage is zero or
	// negative. Pay is never silently computed from a bad wage.
	ErrNonPositiveWage = errors.New("hourly wage must be positive")

	// ErrNegativeAllowance is returned when a flat allowance is negative.
	ErrNegativeAllowance = errors.New("allowance must not be negative")

	// ErrNegativeHours is returned when hand-built hour buckets carry a
	// negative bucket. Aggregation clamps at zero, so this only fires for
	// inputs that bypassed it.
	ErrNegativeHours = errors.New("hours must not be negative")
)
