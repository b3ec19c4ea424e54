package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// LibraryBuilder stages the configuration of a new library.
// Build consumes it; a builder cannot be committed twice.
type LibraryBuilder struct {
	repo     Repository
	title    string
	tags     []string
	base     string
	folders  []*Folder
	notes    []*Note
	consumed bool
}

// NewLibraryBuilder creates a builder persisting through repo.
func NewLibraryBuilder(repo Repository) *LibraryBuilder {
	return &LibraryBuilder{repo: repo}
}

// Title sets the library title. Required.
func (b *LibraryBuilder) Title(title string) *LibraryBuilder {
	b.title = title
	return b
}

// Tags appends tags.
func (b *LibraryBuilder) Tags(tags ...string) *LibraryBuilder {
	b.tags = append(b.tags, tags...)
	return b
}

// Path sets the directory the library is created in.
// Defaults to the repository's base directory.
func (b *LibraryBuilder) Path(base string) *LibraryBuilder {
	b.base = base
	return b
}

// Folders stages child folders persisted together with the library.
func (b *LibraryBuilder) Folders(folders ...*Folder) *LibraryBuilder {
	b.folders = append(b.folders, folders...)
	return b
}

// Notes stages notes persisted together with the library.
func (b *LibraryBuilder) Notes(notes ...*Note) *LibraryBuilder {
	b.notes = append(b.notes, notes...)
	return b
}

// Build creates the library and persists it.
func (b *LibraryBuilder) Build(ctx context.Context) (*Folder, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if strings.TrimSpace(b.title) == "" {
		return nil, ErrInvalidTitle
	}

	lib := NewLibrary(b.title, b.tags...)
	lib.folders = b.folders
	lib.notes = b.notes

	base := b.base
	if base != "" {
		base = filepath.Clean(base)
	}
	if err := b.repo.InitialiseFolder(ctx, lib, base); err != nil {
		return nil, fmt.Errorf("failed to create library %q: %w", b.title, err)
	}
	return lib, nil
}
