package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	t.Run("Coalesces Same Path", func(t *testing.T) {
		d := newDebouncer(20 * time.Millisecond)

		var mu sync.Mutex
		var got []Event
		collect := func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, e)
		}

		d.add(Event{Op: Created, Path: "a/note.yaml"}, collect)
		d.add(Event{Op: Modified, Path: "a/note.yaml"}, collect)
		d.add(Event{Op: Modified, Path: "b/note.yaml"}, collect)

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == 2
		}, time.Second, 5*time.Millisecond)

		require.True(t, d.stopAndWait(time.Second))

		mu.Lock()
		defer mu.Unlock()
		ops := map[string]Op{}
		for _, e := range got {
			ops[e.Path] = e.Op
		}
		assert.Equal(t, Created, ops["a/note.yaml"], "a creation stays a creation")
		assert.Equal(t, Modified, ops["b/note.yaml"])
	})

	t.Run("Stop Drops Pending", func(t *testing.T) {
		d := newDebouncer(time.Hour)
		fired := false
		d.add(Event{Op: Created, Path: "x"}, func(Event) { fired = true })

		assert.True(t, d.stopAndWait(time.Second))
		assert.False(t, fired)

		d.add(Event{Op: Created, Path: "y"}, func(Event) { fired = true })
		assert.Empty(t, d.pending)
	})
}
