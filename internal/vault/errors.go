package vault

import "errors"

var (
	// ErrRootNotFound indicates the vault root does not exist or is not a directory.
	ErrRootNotFound = errors.New("vault root not found")

	// ErrWalkFailed indicates filesystem traversal of the vault failed.
	ErrWalkFailed = errors.New("vault walk failed")
)
