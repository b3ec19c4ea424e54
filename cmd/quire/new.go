package main

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var (
	newPath     string
	newTags     []string
	newEditor   string
	newNoBrowse bool
)

var newCmd = &cobra.Command{
	Use:         "new <title>",
	Short:       "Create a library and browse it",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		opts := sessionOptions(newEditor, quire.WithBaseDir(newPath))

		svc, lib, err := quire.CreateLibrary(ctx, args[0], newTags, opts...)
		if err != nil {
			fatal("Error creating library", err)
		}
		slog.Info("library created", "title", lib.Title(), "path", lib.Path())
		color.Green("Created library %q at %s", lib.Title(), lib.Path())

		if newNoBrowse {
			return
		}
		if err := quire.Browse(ctx, svc, lib, opts...); err != nil {
			fatal("Error running browser", err)
		}
	},
}

// sessionOptions combines configuration and flags into service options.
func sessionOptions(editorFlag string, extra ...quire.Option) []quire.Option {
	editor := cfg.Editor
	if editorFlag != "" {
		editor = editorFlag
	}
	return append([]quire.Option{
		quire.WithLogger(slog.Default()),
		quire.WithEditor(editor),
		quire.WithAuthor(cfg.Author),
	}, extra...)
}

func init() {
	newCmd.Flags().StringVar(&newPath, "path", ".", "Directory to create the library in")
	newCmd.Flags().StringArrayVarP(&newTags, "tag", "t", nil, "Tag for the library (repeatable)")
	newCmd.Flags().StringVar(&newEditor, "editor", "", "Editor command (default $QUIRE_EDITOR, $EDITOR or nvim)")
	newCmd.Flags().BoolVar(&newNoBrowse, "no-browse", false, "Create the library without opening the browser")
	rootCmd.AddCommand(newCmd)
}
