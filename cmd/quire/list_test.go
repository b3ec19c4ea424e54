package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/core"
)

func setupLibrary(t *testing.T) *core.Folder {
	t.Helper()
	ctx := context.Background()
	svc, lib, err := quire.CreateLibrary(ctx, "Lib", nil, quire.WithBaseDir(t.TempDir()))
	require.NoError(t, err)

	date := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	ideas := core.NewFolder("Ideas")
	require.NoError(t, svc.AddFolder(ctx, lib, ideas))
	deep := core.NewFolder("Deep")
	require.NoError(t, svc.AddFolder(ctx, ideas, deep))

	require.NoError(t, svc.AddNote(ctx, lib, core.NewNote("Top Note", []string{"todo"}, "me", date)))
	require.NoError(t, svc.AddNote(ctx, ideas, core.NewNote("Spark", []string{"idea"}, "me", date)))
	require.NoError(t, svc.AddNote(ctx, deep, core.NewNote("Buried", []string{"idea", "todo"}, "me", date)))
	return lib
}

func paths(entries []noteEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestCollectNotes(t *testing.T) {
	lib := setupLibrary(t)

	t.Run("No Filter", func(t *testing.T) {
		entries, err := collectNotes(lib, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"top-note", "ideas/spark", "ideas/deep/buried"}, paths(entries))
	})

	t.Run("Single Star Stays In Folder", func(t *testing.T) {
		entries, err := collectNotes(lib, "ideas/*", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"ideas/spark"}, paths(entries))
	})

	t.Run("Double Star Descends", func(t *testing.T) {
		entries, err := collectNotes(lib, "ideas/**", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"ideas/spark", "ideas/deep/buried"}, paths(entries))
	})

	t.Run("Tag And Pattern", func(t *testing.T) {
		entries, err := collectNotes(lib, "**/b*", "todo")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Buried", entries[0].Title)
	})

	t.Run("Invalid Pattern", func(t *testing.T) {
		_, err := collectNotes(lib, "ideas/[", "")
		assert.Error(t, err)
	})
}

func TestSummarize(t *testing.T) {
	lib := setupLibrary(t)
	s := summarize(lib)
	assert.Equal(t, "Lib", s.Title)
	assert.Equal(t, 2, s.Folders)
	assert.Equal(t, 3, s.Notes)
	assert.Equal(t, 3, s.MaxDepth)
}
