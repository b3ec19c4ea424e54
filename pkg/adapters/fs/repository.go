package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/quire/pkg/core"
)

// Base names of the metadata files; the codec supplies the extension.
const (
	LibraryBase = "library"
	FolderBase  = "folder"
	NoteBase    = "note"
)

// Repository implements core.Repository with one directory per node.
//
// Layout:
//
//	<library>/library.yaml
//	<library>/<folder>/folder.yaml
//	<library>/<folder>/<note>/note.yaml
//	<library>/<folder>/<note>/note.md
type Repository struct {
	config Config
	codec  Codec
	logger *slog.Logger

	mu          sync.RWMutex
	lastOpen    string
	lastLoaded  int
	lastSkipped int
	created     int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	BaseDir string // Directory libraries are created in. Defaults to ".".
	Logger  *slog.Logger
	Codec   Codec // Defaults to YAML.
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.BaseDir == "" {
		config.BaseDir = "."
	}
	if config.Codec == nil {
		config.Codec = NewYAMLCodec()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		config: config,
		codec:  config.Codec,
		logger: logger,
	}
}

// MetadataFile returns the metadata file name for a base name, e.g. "note.yaml".
func (r *Repository) MetadataFile(base string) string {
	return base + r.codec.Ext()
}

// InitialiseFolder persists f under parent, then its child folders and notes in
// memory order. A folder that already has a path is not recreated; only its
// children are walked. The first failure aborts the walk and directories created
// before it are left in place.
func (r *Repository) InitialiseFolder(ctx context.Context, f *core.Folder, parent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !f.Persisted() {
		dir, err := r.createNodeDir(parent, f.Title())
		if err != nil {
			return err
		}

		data, err := r.codec.EncodeFolder(f.Metadata())
		if err != nil {
			return fmt.Errorf("failed to encode metadata for %q: %w", f.Title(), err)
		}

		base := FolderBase
		if f.IsRoot() {
			base = LibraryBase
		}
		if err := writeFileAtomic(filepath.Join(dir, r.MetadataFile(base)), data, 0644); err != nil {
			return fmt.Errorf("%w: %w", core.ErrIO, err)
		}

		if err := f.Bind(dir); err != nil {
			return err
		}
		r.recordCreate()
		r.logger.Debug("folder initialised", "path", dir, "root", f.IsRoot())
	}

	for _, child := range f.Folders() {
		if err := r.InitialiseFolder(ctx, child, f.Path()); err != nil {
			return err
		}
	}
	for _, note := range f.Notes() {
		if err := r.InitialiseNote(ctx, note, f.Path()); err != nil {
			return err
		}
	}
	return nil
}

// InitialiseNote persists n under parent. The content file is only created when
// absent, so initialising never truncates a body.
func (r *Repository) InitialiseNote(ctx context.Context, n *core.Note, parent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Persisted() {
		return nil
	}

	dir, err := r.createNodeDir(parent, n.Title())
	if err != nil {
		return err
	}

	data, err := r.codec.EncodeNote(n.Metadata())
	if err != nil {
		return fmt.Errorf("failed to encode metadata for %q: %w", n.Title(), err)
	}
	if err := writeFileAtomic(filepath.Join(dir, r.MetadataFile(NoteBase)), data, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	if err := createIfAbsent(filepath.Join(dir, core.ContentFile), 0644); err != nil {
		return fmt.Errorf("%w: failed to create content file: %w", core.ErrIO, err)
	}

	if err := n.Bind(dir); err != nil {
		return err
	}
	r.recordCreate()
	r.logger.Debug("note initialised", "path", dir)
	return nil
}

func (r *Repository) createNodeDir(parent, title string) (string, error) {
	slug := core.Slug(title)
	if !validSlug(slug) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidTitle, title)
	}
	if parent == "" {
		parent = r.config.BaseDir
	}

	dir := filepath.Join(parent, slug)
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return "", fmt.Errorf("%w: %s", core.ErrSiblingCollision, dir)
		}
		return "", fmt.Errorf("%w: failed to create directory: %w", core.ErrIO, err)
	}
	return dir, nil
}

// validSlug reports whether slug names a single directory entry, so the node
// stays a direct child of its parent.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.ContainsRune(slug, os.PathSeparator)
}

type nodeKind int

const (
	kindUnknown nodeKind = iota
	kindLibrary
	kindFolder
	kindNote
)

// classify reports which metadata file dir holds, checked in the order
// library, folder, note.
func (r *Repository) classify(dir string) nodeKind {
	for _, c := range []struct {
		base string
		kind nodeKind
	}{
		{LibraryBase, kindLibrary},
		{FolderBase, kindFolder},
		{NoteBase, kindNote},
	} {
		info, err := os.Stat(filepath.Join(dir, r.MetadataFile(c.base)))
		if err == nil && info.Mode().IsRegular() {
			return c.kind
		}
	}
	return kindUnknown
}

// Open loads the library at path.
//
// Only the root's own failures are returned: a missing or corrupt library file,
// or an unreadable root directory. Descendants that fail to load are left out
// of the tree.
func (r *Repository) Open(ctx context.Context, path string) (*core.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	libFile := filepath.Join(path, r.MetadataFile(LibraryBase))
	if _, err := os.Stat(libFile); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			if kind := r.classify(path); kind == kindFolder || kind == kindNote {
				return nil, fmt.Errorf("%w: %s", core.ErrNotLibrary, path)
			}
		}
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	loader := &treeLoader{repo: r, ctx: ctx}
	lib, err := loader.folder(path, kindLibrary, true)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.recordOpen(path, loader.loaded, loader.skipped)
	return lib, nil
}

// treeLoader carries per-call counters through one Open.
type treeLoader struct {
	repo    *Repository
	ctx     context.Context
	loaded  int
	skipped int
}

// folder loads the folder at dir. Only the top of an Open is a root; a nested
// directory holding a library file is loaded as a plain folder.
func (l *treeLoader) folder(dir string, kind nodeKind, root bool) (*core.Folder, error) {
	base := FolderBase
	if kind == kindLibrary {
		base = LibraryBase
	}

	data, err := os.ReadFile(filepath.Join(dir, l.repo.MetadataFile(base)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	meta, err := l.repo.codec.DecodeFolder(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	var folders []*core.Folder
	var notes []*core.Note
	for _, entry := range entries {
		if l.ctx.Err() != nil {
			break
		}
		if !entry.IsDir() {
			continue
		}

		childDir := filepath.Join(dir, entry.Name())
		switch childKind := l.repo.classify(childDir); childKind {
		case kindLibrary, kindFolder:
			child, err := l.folder(childDir, childKind, false)
			if err != nil {
				l.skip(childDir, err)
				continue
			}
			folders = append(folders, child)
		case kindNote:
			note, err := l.note(childDir)
			if err != nil {
				l.skip(childDir, err)
				continue
			}
			notes = append(notes, note)
		case kindUnknown:
			// not a node; ignored
		}
	}

	slices.SortStableFunc(folders, func(a, b *core.Folder) int {
		return strings.Compare(a.Title(), b.Title())
	})
	slices.SortStableFunc(notes, func(a, b *core.Note) int {
		return strings.Compare(a.Title(), b.Title())
	})

	l.loaded++
	return core.RestoreFolder(meta, root, dir, folders, notes), nil
}

func (l *treeLoader) note(dir string) (*core.Note, error) {
	data, err := os.ReadFile(filepath.Join(dir, l.repo.MetadataFile(NoteBase)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	meta, err := l.repo.codec.DecodeNote(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	l.loaded++
	return core.RestoreNote(meta, dir), nil
}

func (l *treeLoader) skip(dir string, err error) {
	l.skipped++
	l.repo.logger.Debug("skipping unreadable entry", "path", dir, "error", err)
}

func (r *Repository) recordCreate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *Repository) recordOpen(path string, loaded, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOpen = path
	r.lastLoaded = loaded
	r.lastSkipped = skipped
}

var _ core.Repository = (*Repository)(nil)
