package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrIO is returned when a directory or file cannot be created or read.
	ErrIO = errors.New("io error")

	// ErrCorruptMetadata is returned when a metadata file cannot be decoded.
	ErrCorruptMetadata = errors.New("corrupt metadata")

	// ErrSiblingCollision is returned when a node's directory already exists.
	// It is a specialization of ErrIO.
	ErrSiblingCollision = fmt.Errorf("%w: sibling collision", ErrIO)

	// ErrNoSelection is returned when the cursor does not point at an entry.
	ErrNoSelection = errors.New("no selection")

	// ErrNotPersisted is returned when a child is added to a folder that has no path yet.
	ErrNotPersisted = errors.New("folder is not persisted")

	// ErrAlreadyPersisted is returned when a persisted node is rebound or
	// grown outside the service.
	ErrAlreadyPersisted = errors.New("node is already persisted")

	// ErrNotLibrary is returned when a directory has no library metadata.
	ErrNotLibrary = errors.New("not a library")

	// ErrInvalidTitle is returned for empty titles.
	ErrInvalidTitle = errors.New("title cannot be empty")

	// ErrBuilderConsumed is returned when Build is called a second time.
	ErrBuilderConsumed = errors.New("builder already consumed")
)
