package watch

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

const debounceDelay = 50 * time.Millisecond

// Worker watches every directory of one library and emits an Event per
// change to a metadata or content file. Directories created while running
// are watched as they appear.
type Worker struct {
	*worker.BaseWorker
	root     string
	subjects map[string]Subject
	events   chan<- Event
	logger   *slog.Logger
	onError  func(error)

	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
	active    atomic.Bool
	emitted   atomic.Int64
}

type options struct {
	logger  *slog.Logger
	onError func(error)
}

// Option configures a Worker.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithErrorHandler registers a callback for runtime watcher errors, which
// are otherwise only logged.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// NewWorker creates a worker for the library at root. File names are taken
// from repo so the watcher follows its codec.
func NewWorker(repo *fs.Repository, root string, events chan<- Event, opts ...Option) *Worker {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker("quire-watcher"),
		root:       filepath.Clean(root),
		subjects: map[string]Subject{
			repo.MetadataFile(fs.LibraryBase): SubjectLibrary,
			repo.MetadataFile(fs.FolderBase):  SubjectFolder,
			repo.MetadataFile(fs.NoteBase):    SubjectNote,
			core.ContentFile:                  SubjectContent,
		},
		events:  events,
		logger:  o.logger,
		onError: o.onError,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addTree(watcher, w.root); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceDelay)
	w.active.Store(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *Worker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"root":              w.root,
		}
	})
}

// Watching reports whether the event loop is running.
func (w *Worker) Watching() bool {
	return w.active.Load()
}

// Emitted is the number of events delivered so far.
func (w *Worker) Emitted() int64 {
	return w.emitted.Load()
}

// addTree watches dir and every directory below it.
func (w *Worker) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("%w: %w", core.ErrIO, err)
			}
			w.logger.Debug("skipping unreadable directory", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Worker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.active.Store(false)
	defer w.watcher.Close()

	err = w.loop(ctx)

	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Worker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.handle(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
			if w.onError != nil {
				w.onError(wErr)
			}
		}
	}
}

func (w *Worker) handle(ctx context.Context, event fsnotify.Event) {
	w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchNewDir(ctx, event.Name)
			return
		}
	}

	op := mapOp(event)
	if op == "" {
		return
	}
	w.emit(ctx, op, event.Name)
}

// watchNewDir adds a directory created while running and reports the files
// already written into it before the watch was in place.
func (w *Worker) watchNewDir(ctx context.Context, dir string) {
	if err := w.addTree(w.watcher, dir); err != nil {
		w.logger.Debug("failed to watch new directory", "path", dir, "error", err)
		return
	}
	_ = filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			w.emit(ctx, Created, path)
		}
		return nil
	})
}

func (w *Worker) emit(ctx context.Context, op Op, path string) {
	subject, ok := w.subjects[filepath.Base(path)]
	if !ok {
		return
	}
	node, err := filepath.Rel(w.root, filepath.Dir(path))
	if err != nil || strings.HasPrefix(node, "..") {
		return
	}

	w.debouncer.add(Event{
		Op:        op,
		Subject:   subject,
		Path:      path,
		Node:      filepath.ToSlash(node),
		Timestamp: time.Now(),
	}, func(e Event) {
		select {
		case w.events <- e:
			w.emitted.Add(1)
		case <-ctx.Done():
		}
	})
}

func mapOp(event fsnotify.Event) Op {
	switch {
	case event.Has(fsnotify.Create):
		return Created
	case event.Has(fsnotify.Write):
		return Modified
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Removed
	}
	return ""
}
