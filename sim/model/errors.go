package model

import "errors"

// Errors returned by model construction and evaluation.
var (
	// ErrNilKernel is returned when a model is built without a kernel.
	ErrNilKernel = errors.New("model: nil kernel")

	// ErrDuplicateParam is returned when a parameter name is declared twice.
	ErrDuplicateParam = errors.New("model: duplicate parameter")

	// ErrUnknownParam is returned when an argument does not match any
	// declared parameter.
	ErrUnknownParam = errors.New("model: unknown parameter")

	// ErrMissingParam is returned when a parameter without a default is
	// not supplied.
	ErrMissingParam = errors.New("model: missing parameter")

	// ErrEmptyValue is returned when a supplied vector value has length zero.
	ErrEmptyValue = errors.New("model: empty value")

	// ErrLengthMismatch is returned when vector-valued properties disagree
	// on the sample count.
	ErrLengthMismatch = errors.New("model: property length mismatch")

	// ErrUnknownDiff is returned when a diff target is not a declared
	// broadcastable property.
	ErrUnknownDiff = errors.New("model: diff target is not a broadcastable property")

	// ErrNoDiff is returned by Jacobian when the model was built without
	// diff targets.
	ErrNoDiff = errors.New("model: no diff targets configured")

	// ErrContrastMismatch is returned when the kernel emits a different
	// number of contrasts for different samples.
	ErrContrastMismatch = errors.New("model: contrast count mismatch across samples")

	// ErrDerivShape is returned when a manual Jacobian kernel emits output
	// whose shape disagrees with the configured diff targets.
	ErrDerivShape = errors.New("model: manual jacobian shape mismatch")
)
