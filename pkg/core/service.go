package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Service handles tree mutations that must reach storage.
type Service struct {
	repo   Repository
	logger *slog.Logger
	mu     sync.RWMutex
	added  int
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Repository returns the storage backing the service.
func (s *Service) Repository() Repository {
	return s.repo
}

// NewLibrary starts a builder for a library persisted through this service.
func (s *Service) NewLibrary() *LibraryBuilder {
	return NewLibraryBuilder(s.repo)
}

// Open loads an existing library.
func (s *Service) Open(ctx context.Context, path string) (*Folder, error) {
	lib, err := s.repo.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("library opened", "path", lib.Path(), "title", lib.Title())
	return lib, nil
}

// AddNote persists n inside parent and appends it.
// The note stays at the end of parent's list until the library is reopened.
func (s *Service) AddNote(ctx context.Context, parent *Folder, n *Note) error {
	if err := s.checkChild(parent, n.Title()); err != nil {
		return err
	}
	if err := s.repo.InitialiseNote(ctx, n, parent.Path()); err != nil {
		return fmt.Errorf("failed to add note %q: %w", n.Title(), err)
	}
	parent.appendNote(n)
	s.recordAdd()
	s.logger.Debug("note added", "parent", parent.Path(), "path", n.Path())
	return nil
}

// AddFolder persists f (with any attached children) inside parent and appends it.
func (s *Service) AddFolder(ctx context.Context, parent *Folder, f *Folder) error {
	if err := s.checkChild(parent, f.Title()); err != nil {
		return err
	}
	if err := s.repo.InitialiseFolder(ctx, f, parent.Path()); err != nil {
		return fmt.Errorf("failed to add folder %q: %w", f.Title(), err)
	}
	parent.appendFolder(f)
	s.recordAdd()
	s.logger.Debug("folder added", "parent", parent.Path(), "path", f.Path())
	return nil
}

func (s *Service) checkChild(parent *Folder, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrInvalidTitle
	}
	if !parent.Persisted() {
		return fmt.Errorf("%w: %q", ErrNotPersisted, parent.Title())
	}
	return nil
}

func (s *Service) recordAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added++
}
