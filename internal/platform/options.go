package platform

import (
	"log/slog"

	"github.com/aretw0/quire/internal/config"
	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

// options holds the internal configuration for a quire session.
type options struct {
	repository core.Repository
	codec      fs.Codec
	logger     *slog.Logger
	baseDir    string
	editor     string
	author     string
}

// Option defines a functional option for configuring quire.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		baseDir: ".",
		editor:  config.DefaultEditor,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the default filesystem adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithCodec replaces the YAML metadata codec of the filesystem adapter.
func WithCodec(codec fs.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithBaseDir sets the directory new libraries are created in.
// Defaults to the working directory.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.baseDir = dir
		}
	}
}

// WithEditor sets the command used to edit note content. Blank keeps the default.
func WithEditor(editor string) Option {
	return func(o *options) {
		if editor != "" {
			o.editor = editor
		}
	}
}

// WithAuthor sets the author given to notes whose prompt leaves it blank.
func WithAuthor(author string) Option {
	return func(o *options) {
		o.author = author
	}
}
