package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state vector of the wrong length.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrAborted indicates a mechanical limit ended the run early.
	ErrAborted = errors.New("dynamo: run aborted by limit")

	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)
