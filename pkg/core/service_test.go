package core_test

import (
	"context"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/core"
)

// MockRepository implements core.Repository in memory.
// Paths are joined with "/" and recorded in creation order.
type MockRepository struct {
	created []string
	fail    error
	opened  map[string]*core.Folder
}

func NewMockRepository() *MockRepository {
	return &MockRepository{opened: make(map[string]*core.Folder)}
}

func (m *MockRepository) InitialiseFolder(ctx context.Context, f *core.Folder, parent string) error {
	if !f.Persisted() {
		if err := m.bind(parent, f.Title(), f.Bind); err != nil {
			return err
		}
	}
	for _, c := range f.Folders() {
		if err := m.InitialiseFolder(ctx, c, f.Path()); err != nil {
			return err
		}
	}
	for _, n := range f.Notes() {
		if err := m.InitialiseNote(ctx, n, f.Path()); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) InitialiseNote(ctx context.Context, n *core.Note, parent string) error {
	if n.Persisted() {
		return nil
	}
	return m.bind(parent, n.Title(), n.Bind)
}

func (m *MockRepository) Open(ctx context.Context, p string) (*core.Folder, error) {
	lib, ok := m.opened[p]
	if !ok {
		return nil, core.ErrNotLibrary
	}
	return lib, nil
}

func (m *MockRepository) bind(parent, title string, bind func(string) error) error {
	if m.fail != nil {
		return m.fail
	}
	p := path.Join(parent, core.Slug(title))
	for _, c := range m.created {
		if c == p {
			return core.ErrSiblingCollision
		}
	}
	m.created = append(m.created, p)
	return bind(p)
}

func date() time.Time {
	return time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
}

func TestService_AddNote(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends After Persisting", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)
		lib, err := svc.NewLibrary().Title("Lib").Build(ctx)
		require.NoError(t, err)

		first := core.NewNote("Zeta", nil, "me", date())
		second := core.NewNote("Alpha", nil, "me", date())
		require.NoError(t, svc.AddNote(ctx, lib, first))
		require.NoError(t, svc.AddNote(ctx, lib, second))

		notes := lib.Notes()
		require.Len(t, notes, 2)
		assert.Same(t, first, notes[0], "new notes are appended, not sorted")
		assert.Same(t, second, notes[1])
		assert.Equal(t, "lib/zeta", first.Path())

		state := svc.State().(core.ServiceState)
		assert.Equal(t, 2, state.NodesAdded)
	})

	t.Run("Unpersisted Parent", func(t *testing.T) {
		svc := core.NewService(NewMockRepository(), nil)
		parent := core.NewFolder("Loose")

		err := svc.AddNote(ctx, parent, core.NewNote("N", nil, "me", date()))
		assert.ErrorIs(t, err, core.ErrNotPersisted)
		assert.Zero(t, parent.Len())
	})

	t.Run("Blank Title", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)
		lib, err := svc.NewLibrary().Title("Lib").Build(ctx)
		require.NoError(t, err)

		err = svc.AddNote(ctx, lib, core.NewNote("  ", nil, "me", date()))
		assert.ErrorIs(t, err, core.ErrInvalidTitle)
		assert.Len(t, repo.created, 1)
	})

	t.Run("Storage Failure Leaves Parent Unchanged", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)
		lib, err := svc.NewLibrary().Title("Lib").Build(ctx)
		require.NoError(t, err)

		repo.fail = core.ErrIO
		note := core.NewNote("N", nil, "me", date())
		err = svc.AddNote(ctx, lib, note)
		assert.ErrorIs(t, err, core.ErrIO)
		assert.Zero(t, lib.Len())
		assert.False(t, note.Persisted())
	})

	t.Run("Collision", func(t *testing.T) {
		repo := NewMockRepository()
		svc := core.NewService(repo, nil)
		lib, err := svc.NewLibrary().Title("Lib").Build(ctx)
		require.NoError(t, err)

		require.NoError(t, svc.AddNote(ctx, lib, core.NewNote("Draft", nil, "me", date())))
		err = svc.AddNote(ctx, lib, core.NewNote("draft ", nil, "me", date()))
		assert.ErrorIs(t, err, core.ErrSiblingCollision)
		assert.Len(t, lib.Notes(), 1)
	})
}

func TestService_AddFolder(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	svc := core.NewService(repo, nil)
	lib, err := svc.NewLibrary().Title("Lib").Build(ctx)
	require.NoError(t, err)

	sub := core.NewFolder("Sub", "x")
	require.NoError(t, sub.AttachNotes(core.NewNote("Inner", nil, "me", date())))
	require.NoError(t, svc.AddFolder(ctx, lib, sub))

	assert.Equal(t, []string{"lib", "lib/sub", "lib/sub/inner"}, repo.created)
	require.Len(t, lib.Folders(), 1)
	assert.Same(t, sub, lib.Folders()[0])
	assert.False(t, sub.IsRoot())

	err = svc.AddFolder(ctx, core.NewFolder("Loose"), core.NewFolder("Child"))
	assert.ErrorIs(t, err, core.ErrNotPersisted)
}

func TestService_Open(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	lib := core.RestoreFolder(core.Metadata{Title: "Lib"}, true, "lib", nil, nil)
	repo.opened["lib"] = lib
	svc := core.NewService(repo, nil)

	got, err := svc.Open(ctx, "lib")
	require.NoError(t, err)
	assert.Same(t, lib, got)

	_, err = svc.Open(ctx, "missing")
	assert.True(t, errors.Is(err, core.ErrNotLibrary))
}

func TestService_State(t *testing.T) {
	svc := core.NewService(NewMockRepository(), nil)
	state := svc.State().(core.ServiceState)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "service", svc.ComponentType())
}
