package domain

import "errors"

// Domain errors represent error conditions in the choromap domain.
// These errors are returned by the public API and can be checked with
// errors.Is. The CLI maps them to exit codes: ErrUsage exits 2,
// ErrMissingInput exits 1.
var (
	// ErrUsage is returned for invocation errors: a missing map name,
	// a value column that cannot be detected, or a missing pages manifest.
	ErrUsage = errors.New("choromap: usage error")

	// ErrMissingInput is returned when the input CSV does not exist.
	ErrMissingInput = errors.New("choromap: input file not found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("choromap: invalid configuration")

	// ErrGeometryUnavailable is returned when neither the local geometry
	// dataset nor the remote fallback could be loaded. Fatal for the run.
	ErrGeometryUnavailable = errors.New("choromap: world geometry unavailable")
)
