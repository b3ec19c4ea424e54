package core

import "context"

// Repository maps the in-memory tree onto durable storage.
// Adhering to this interface keeps the tree independent of the storage layout.
type Repository interface {
	// InitialiseFolder persists f (and its descendants) under parent.
	// An empty parent means the repository's base location.
	InitialiseFolder(ctx context.Context, f *Folder, parent string) error

	// InitialiseNote persists n under parent.
	InitialiseNote(ctx context.Context, n *Note, parent string) error

	// Open loads the library rooted at path with every reachable node bound.
	Open(ctx context.Context, path string) (*Folder, error)
}
