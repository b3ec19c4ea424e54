package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/quire/internal/navigator"
	"github.com/aretw0/quire/internal/tui"
	"github.com/aretw0/quire/pkg/core"
)

// CreateLibrary builds a new library titled title inside the base directory.
func CreateLibrary(ctx context.Context, title string, tags []string, opts ...Option) (*core.Service, *core.Folder, error) {
	svc, err := New(opts...)
	if err != nil {
		return nil, nil, err
	}
	lib, err := svc.NewLibrary().Title(title).Tags(tags...).Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return svc, lib, nil
}

// OpenLibrary loads the library at dir. An empty dir means the nearest
// library at or above the working directory.
func OpenLibrary(ctx context.Context, dir string, opts ...Option) (*core.Service, *core.Folder, error) {
	if dir == "" {
		root, err := FindRoot(".")
		if err != nil {
			return nil, nil, err
		}
		dir = root
	}

	svc, err := New(opts...)
	if err != nil {
		return nil, nil, err
	}
	lib, err := svc.Open(ctx, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library %s: %w", dir, err)
	}
	return svc, lib, nil
}

// NewNavigator creates a navigator over lib that mutates through svc.
func NewNavigator(svc *core.Service, lib *core.Folder, opts ...Option) *navigator.Navigator {
	o := applyOptions(opts)
	return navigator.New(lib, svc,
		navigator.WithAuthor(o.author),
		navigator.WithLogger(o.logger),
	)
}

// Browse runs the terminal browser over lib until the user quits.
func Browse(ctx context.Context, svc *core.Service, lib *core.Folder, opts ...Option) error {
	o := applyOptions(opts)
	nav := NewNavigator(svc, lib, opts...)
	return tui.Run(ctx, nav, tui.Config{
		Editor: o.editor,
		Logger: o.logger,
	})
}
