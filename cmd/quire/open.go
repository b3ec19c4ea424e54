package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
)

var openEditor string

var openCmd = &cobra.Command{
	Use:   "open [dir]",
	Short: "Browse an existing library",
	Long: `Open loads the library in dir and starts the browser.
Without dir, the nearest library.yaml at or above the working directory is used.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		opts := sessionOptions(openEditor)

		svc, lib, err := quire.OpenLibrary(ctx, argOrEmpty(args), opts...)
		if err != nil {
			fatal("Error opening library", err)
		}
		if err := quire.Browse(ctx, svc, lib, opts...); err != nil {
			fatal("Error running browser", err)
		}
	},
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	openCmd.Flags().StringVar(&openEditor, "editor", "", "Editor command (default $QUIRE_EDITOR, $EDITOR or nvim)")
	rootCmd.AddCommand(openCmd)
}
