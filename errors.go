package mdview

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates options failed validation.
	ErrValidation = errors.New("validation error")

	// ErrInvalidSpan indicates a source span does not fit the text it is
	// applied to, usually because the text changed since it was rendered.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrNoOpener indicates a link was activated but the host has no way to
	// open it.
	ErrNoOpener = errors.New("no link opener")

	// ErrNoMatch indicates a file argument matched no files.
	ErrNoMatch = errors.New("no matching files")
)
