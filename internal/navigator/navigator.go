// Package navigator drives browsing of a library tree independently of any
// terminal. A Navigator holds a stack of open folders and a cursor into the
// display list of the top one; notes are listed before folders.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/quire/pkg/core"
)

// ErrInvalidState is returned when a command is not accepted in the current mode.
var ErrInvalidState = errors.New("invalid state for command")

// Mode is the interaction mode of a Navigator.
type Mode int

const (
	Browsing Mode = iota
	Editing
	Prompting
	Exited
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	case Prompting:
		return "prompting"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Effect is work the caller must carry out after a command.
// A non-empty Edit is the content file to open in an editor; call EditDone
// once the editor has exited.
type Effect struct {
	Edit string
}

// Mutator persists new children of a folder. *core.Service implements it.
type Mutator interface {
	AddNote(ctx context.Context, parent *core.Folder, n *core.Note) error
	AddFolder(ctx context.Context, parent *core.Folder, f *core.Folder) error
}

// Item is one row of the display list.
type Item struct {
	Kind  core.Kind
	Title string
	Tags  []string
}

// Navigator is safe for concurrent use.
type Navigator struct {
	svc    Mutator
	author string
	now    func() time.Time
	logger *slog.Logger

	mu     sync.RWMutex
	stack  []*core.Folder
	cursor int
	mode   Mode
	prompt *Prompt
}

type options struct {
	author string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Navigator.
type Option func(*options)

// WithAuthor sets the author used when a note prompt leaves it blank.
func WithAuthor(author string) Option {
	return func(o *options) {
		o.author = author
	}
}

// WithClock replaces time.Now for note dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Navigator browsing lib.
func New(lib *core.Folder, svc Mutator, opts ...Option) *Navigator {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Navigator{
		svc:    svc,
		author: o.author,
		now:    o.now,
		logger: o.logger,
		stack:  []*core.Folder{lib},
		mode:   Browsing,
	}
}

// Mode returns the current interaction mode.
func (n *Navigator) Mode() Mode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mode
}

// Cursor returns the index of the selected row.
func (n *Navigator) Cursor() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cursor
}

// Current returns the folder on top of the stack, or nil once exited.
func (n *Navigator) Current() *core.Folder {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.top()
}

// Depth is the number of open folders.
func (n *Navigator) Depth() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.stack)
}

// Items returns the display list of the current folder.
func (n *Navigator) Items() []Item {
	n.mu.RLock()
	defer n.mu.RUnlock()

	top := n.top()
	if top == nil {
		return nil
	}
	items := make([]Item, 0, top.Len())
	for _, note := range top.Notes() {
		items = append(items, Item{Kind: core.KindNote, Title: note.Title(), Tags: note.Tags()})
	}
	for _, f := range top.Folders() {
		items = append(items, Item{Kind: core.KindFolder, Title: f.Title(), Tags: f.Tags()})
	}
	return items
}

// Breadcrumb returns the titles of the open folders, root first.
func (n *Navigator) Breadcrumb() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	crumbs := make([]string, len(n.stack))
	for i, f := range n.stack {
		crumbs[i] = f.Title()
	}
	return crumbs
}

// Prompt returns the pending prompt, or nil outside Prompting.
func (n *Navigator) Prompt() *Prompt {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.prompt
}

// Dispatch applies cmd. Commands are only accepted while Browsing.
func (n *Navigator) Dispatch(ctx context.Context, cmd Command) (Effect, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.mode != Browsing {
		return Effect{}, fmt.Errorf("%w: %s while %s", ErrInvalidState, cmd, n.mode)
	}

	top := n.top()
	switch cmd {
	case ScrollUp:
		if n.cursor > 0 {
			n.cursor--
		}
	case ScrollDown:
		if n.cursor < top.Len()-1 {
			n.cursor++
		}
	case Select:
		return n.selectEntry(top)
	case Back:
		n.stack = n.stack[:len(n.stack)-1]
		n.cursor = 0
		if len(n.stack) == 0 {
			n.setMode(Exited)
		}
	case AddNote:
		n.prompt = notePrompt(n.author)
		n.setMode(Prompting)
	case AddFolder:
		n.prompt = folderPrompt()
		n.setMode(Prompting)
	case Quit:
		n.setMode(Exited)
	}
	return Effect{}, nil
}

func (n *Navigator) selectEntry(top *core.Folder) (Effect, error) {
	kind, note, folder, err := top.At(n.cursor)
	if err != nil {
		return Effect{}, err
	}
	if kind == core.KindFolder {
		n.stack = append(n.stack, folder)
		n.cursor = 0
		n.logger.Debug("folder entered", "title", folder.Title(), "depth", len(n.stack))
		return Effect{}, nil
	}
	n.setMode(Editing)
	return Effect{Edit: note.ContentPath()}, nil
}

// EditDone returns to Browsing after an editor session.
func (n *Navigator) EditDone() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.mode != Editing {
		return fmt.Errorf("%w: edit done while %s", ErrInvalidState, n.mode)
	}
	n.setMode(Browsing)
	return nil
}

// Cancel abandons the pending prompt.
func (n *Navigator) Cancel() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.mode != Prompting {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidState, n.mode)
	}
	n.prompt = nil
	n.setMode(Browsing)
	return nil
}

// Submit creates the prompted node from answers, keyed by field name.
// The navigator returns to Browsing either way; on success the cursor is
// placed on the new entry.
func (n *Navigator) Submit(ctx context.Context, answers map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.mode != Prompting {
		return fmt.Errorf("%w: submit while %s", ErrInvalidState, n.mode)
	}
	prompt := n.prompt
	n.prompt = nil
	n.setMode(Browsing)

	top := n.top()
	title := strings.TrimSpace(answers[FieldTitle])
	tags := core.ParseTags(answers[FieldTags])

	switch prompt.Kind {
	case core.KindNote:
		author := strings.TrimSpace(answers[FieldAuthor])
		if author == "" {
			author = n.author
		}
		note := core.NewNote(title, tags, author, n.now().Truncate(time.Second))
		if err := n.svc.AddNote(ctx, top, note); err != nil {
			return err
		}
		n.cursor = len(top.Notes()) - 1
	case core.KindFolder:
		if err := n.svc.AddFolder(ctx, top, core.NewFolder(title, tags...)); err != nil {
			return err
		}
		n.cursor = top.Len() - 1
	}
	n.logger.Debug("entry created", "kind", prompt.Kind, "title", title)
	return nil
}

func (n *Navigator) top() *core.Folder {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

func (n *Navigator) setMode(m Mode) {
	if n.mode != m {
		n.logger.Debug("navigator mode changed", "from", n.mode, "to", m)
	}
	n.mode = m
}
