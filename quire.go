package quire

import (
	"context"
	"log/slog"

	"github.com/aretw0/quire/internal/navigator"
	"github.com/aretw0/quire/internal/platform"
	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

// --- Types ---

// Library is the root folder of a hierarchy.
type Library = core.Folder

// Navigator is the terminal-independent browsing controller.
type Navigator = navigator.Navigator

// --- Configuration ---

// Option defines a functional option for configuring quire.
type Option = platform.Option

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithCodec replaces the metadata codec of the filesystem adapter.
func WithCodec(codec fs.Codec) Option {
	return platform.WithCodec(codec)
}

// WithBaseDir sets the directory new libraries are created in.
func WithBaseDir(dir string) Option {
	return platform.WithBaseDir(dir)
}

// WithEditor sets the command used to edit note content.
func WithEditor(editor string) Option {
	return platform.WithEditor(editor)
}

// WithAuthor sets the default author of new notes.
func WithAuthor(author string) Option {
	return platform.WithAuthor(author)
}

// --- Factory ---

// New creates a new Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// --- Operations ---

// CreateLibrary builds and persists a new, empty library.
func CreateLibrary(ctx context.Context, title string, tags []string, opts ...Option) (*core.Service, *Library, error) {
	return platform.CreateLibrary(ctx, title, tags, opts...)
}

// OpenLibrary loads a library. An empty dir searches upwards from the working directory.
func OpenLibrary(ctx context.Context, dir string, opts ...Option) (*core.Service, *Library, error) {
	return platform.OpenLibrary(ctx, dir, opts...)
}

// NewNavigator creates a browsing controller over lib.
func NewNavigator(svc *core.Service, lib *Library, opts ...Option) *Navigator {
	return platform.NewNavigator(svc, lib, opts...)
}

// Browse runs the terminal browser until the user quits.
func Browse(ctx context.Context, svc *core.Service, lib *Library, opts ...Option) error {
	return platform.Browse(ctx, svc, lib, opts...)
}

// --- Utils ---

// FindLibraryRoot looks upwards from startDir for the nearest library.
func FindLibraryRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
