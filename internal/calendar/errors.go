package calendar

import (
	"errors"

	"trainingcal/internal/grid"
)

// Conditions recovered by the calendar core. None of them is fatal: the
// offending session, location or percentage is left out of the views and
// the error is only surfaced to callers that ask for it (Index.Malformed,
// FillPercentage, catalog validation).
var (
	ErrMalformedDate     = grid.ErrMalformedDate
	ErrDanglingReference = errors.New("dangling reference")
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrInvertedDateRange = errors.New("end date before start date")
)
