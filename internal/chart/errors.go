package chart

import "errors"

var (
	// ErrFetchFailure means a week could not be retrieved or parsed.
	// It aborts the whole range build.
	ErrFetchFailure = errors.New("chart fetch failed")

	// ErrFieldParse means a required numeric field was missing or non-numeric.
	// It is always reported together with ErrFetchFailure.
	ErrFieldParse = errors.New("chart field parse failed")

	// ErrInvalidRange means a range whose end precedes its start
	ErrInvalidRange = errors.New("invalid date range")
)
