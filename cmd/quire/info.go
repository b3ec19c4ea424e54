package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/core"
)

var infoCmd = &cobra.Command{
	Use:   "info [dir]",
	Short: "Print the state of a library and its storage",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, lib, err := quire.OpenLibrary(context.Background(), argOrEmpty(args), quire.WithLogger(slog.Default()))
		if err != nil {
			fatal("Error opening library", err)
		}

		report := map[string]any{
			"library": summarize(lib),
		}
		for _, c := range []introspection.Component{svc, componentOf(svc.Repository())} {
			if c == nil {
				continue
			}
			if i, ok := c.(introspection.Introspectable); ok {
				report[c.ComponentType()] = i.State()
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fatal("Error encoding state", err)
		}
	},
}

// treeSummary counts the nodes of a library.
type treeSummary struct {
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Path     string   `json:"path"`
	Folders  int      `json:"folders"`
	Notes    int      `json:"notes"`
	MaxDepth int      `json:"max_depth"`
}

func summarize(lib *core.Folder) treeSummary {
	s := treeSummary{Title: lib.Title(), Tags: lib.Tags(), Path: lib.Path()}
	lib.Walk(func(depth int, f *core.Folder, n *core.Note) bool {
		s.MaxDepth = max(s.MaxDepth, depth)
		switch {
		case n != nil:
			s.Notes++
		case f != lib:
			s.Folders++
		}
		return true
	})
	return s
}

func componentOf(v any) introspection.Component {
	c, _ := v.(introspection.Component)
	return c
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
