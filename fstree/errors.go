package fstree

import "errors"

// Sentinel errors for package fstree.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Transcript errors
	ErrMalformedLine  = errors.New("malformed transcript line")
	ErrUnknownCommand = errors.New("unknown transcript command")
	ErrAscendPastRoot = errors.New("cannot ascend above the root directory")
	ErrKindConflict   = errors.New("entry declared as both file and directory")

	// ErrImplicitDirectory marks a cd into a name no listing has mentioned.
	// It is only ever recorded as a warning, never returned from Build.
	ErrImplicitDirectory = errors.New("directory entered before it was listed")

	// Query errors
	ErrNoCandidate     = errors.New("no directory satisfies the size requirement")
	ErrInvalidCapacity = errors.New("capacity and target must be non-negative")

	// Tree errors
	ErrNodeNotFound = errors.New("node not found in tree")
)
