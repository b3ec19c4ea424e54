package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/internal/watch"
	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

func setup(t *testing.T) (*fs.Repository, *core.Service, *core.Folder) {
	t.Helper()
	repo := fs.NewRepository(fs.Config{BaseDir: t.TempDir()})
	svc := core.NewService(repo, nil)
	lib, err := svc.NewLibrary().Title("Lib").Build(context.Background())
	require.NoError(t, err)
	return repo, svc, lib
}

// waitFor reads events until one matches or the deadline passes.
func waitFor(t *testing.T, events <-chan watch.Event, match func(watch.Event) bool) watch.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-events:
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timeout waiting for watch event")
			return watch.Event{}
		}
	}
}

func startWorker(t *testing.T, repo *fs.Repository, root string) (*watch.Worker, <-chan watch.Event) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan watch.Event, 32)
	w := watch.NewWorker(repo, root, events)
	require.NoError(t, w.Start(ctx))

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		_ = w.Stop(stopCtx)
		cancel()
	})
	return w, events
}

func TestWorker(t *testing.T) {
	t.Run("Reports Metadata Change", func(t *testing.T) {
		repo, _, lib := setup(t)
		w, events := startWorker(t, repo, lib.Path())
		assert.True(t, w.Watching())

		libFile := filepath.Join(lib.Path(), "library.yaml")
		require.NoError(t, os.WriteFile(libFile, []byte("title: Lib\ntags: [x]\n"), 0644))

		e := waitFor(t, events, func(e watch.Event) bool { return e.Subject == watch.SubjectLibrary })
		assert.Equal(t, libFile, e.Path)
		assert.Equal(t, ".", e.Node)
		assert.NotEqual(t, watch.Removed, e.Op)
	})

	t.Run("Follows New Nodes", func(t *testing.T) {
		repo, svc, lib := setup(t)
		_, events := startWorker(t, repo, lib.Path())

		sub := core.NewFolder("Sub")
		require.NoError(t, svc.AddFolder(context.Background(), lib, sub))
		note := core.NewNote("Deep Note", nil, "me", time.Now())
		require.NoError(t, svc.AddNote(context.Background(), sub, note))

		e := waitFor(t, events, func(e watch.Event) bool { return e.Subject == watch.SubjectNote })
		assert.Equal(t, "sub/deep-note", e.Node)
		assert.Equal(t, watch.Created, e.Op)

		require.NoError(t, os.WriteFile(note.ContentPath(), []byte("body"), 0644))
		e = waitFor(t, events, func(e watch.Event) bool {
			return e.Subject == watch.SubjectContent && e.Op == watch.Modified
		})
		assert.Equal(t, note.ContentPath(), e.Path)
	})

	t.Run("Ignores Stray Files", func(t *testing.T) {
		repo, _, lib := setup(t)
		w, events := startWorker(t, repo, lib.Path())

		require.NoError(t, os.WriteFile(filepath.Join(lib.Path(), "scratch.txt"), []byte("x"), 0644))
		select {
		case e := <-events:
			t.Fatalf("unexpected event %s", e)
		case <-time.After(300 * time.Millisecond):
		}
		assert.Zero(t, w.Emitted())
	})

	t.Run("Missing Root", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{BaseDir: t.TempDir()})
		w := watch.NewWorker(repo, filepath.Join(t.TempDir(), "missing"), make(chan watch.Event))
		err := w.Start(context.Background())
		assert.ErrorIs(t, err, core.ErrIO)
	})
}
