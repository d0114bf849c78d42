package service

import "errors"

var (
	// ErrManualResolutionRequired is returned when the policy engine maps a
	// conflict to the manual strategy and no explicit user choice was
	// supplied.
	ErrManualResolutionRequired = errors.New("conflict requires manual resolution")

	// ErrInvalidUserChoice is returned when a manual resolution carries a
	// user choice other than "local" or "server".
	ErrInvalidUserChoice = errors.New("invalid user choice for manual resolution")

	// ErrUnknownStrategy is returned when ApplyResolution receives a
	// strategy outside the known set.
	ErrUnknownStrategy = errors.New("unknown resolution strategy")

	// ErrItemNotFound is returned when a write-path operation targets an
	// item with no local snapshot.
	ErrItemNotFound = errors.New("item not found")

	// ErrUnknownOperationType is returned by the server apply path for an
	// operation type outside create, update, delete.
	ErrUnknownOperationType = errors.New("unknown operation type")
)
