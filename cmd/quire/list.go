package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/quire"
	"github.com/aretw0/quire/pkg/core"
)

var (
	listMatch string
	listTag   string
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "Print the tree of a library",
	Long: `List prints the folders and notes of a library.
With --match or --tag only matching notes are printed, by slug path
relative to the library (e.g. --match 'ideas/**').`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, lib, err := quire.OpenLibrary(context.Background(), argOrEmpty(args), quire.WithLogger(slog.Default()))
		if err != nil {
			fatal("Error opening library", err)
		}

		if listMatch == "" && listTag == "" && !listJSON {
			printTree(lib)
			return
		}

		entries, err := collectNotes(lib, listMatch, listTag)
		if err != nil {
			fatal("Error filtering notes", err)
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, e := range entries {
			fmt.Printf("%s  %s %s\n", color.CyanString(e.Path), e.Title, formatTags(e.Tags))
		}
	},
}

// noteEntry is the listing record of one note.
type noteEntry struct {
	Path   string    `json:"path"`
	Title  string    `json:"title"`
	Tags   []string  `json:"tags"`
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

// collectNotes returns the notes below lib whose slug path matches pattern
// and which carry tag. Empty filters match everything.
func collectNotes(lib *core.Folder, pattern, tag string) ([]noteEntry, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	entries := []noteEntry{}
	var walkErr error
	lib.Walk(func(depth int, f *core.Folder, n *core.Note) bool {
		if n == nil || walkErr != nil {
			return walkErr == nil
		}
		rel, err := filepath.Rel(lib.Path(), n.Path())
		if err != nil {
			walkErr = err
			return false
		}
		rel = filepath.ToSlash(rel)

		if pattern != "" {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				walkErr = err
				return false
			}
			if !ok {
				return true
			}
		}
		if tag != "" && !n.HasTag(tag) {
			return true
		}

		entries = append(entries, noteEntry{
			Path:   rel,
			Title:  n.Title(),
			Tags:   n.Tags(),
			Author: n.Author(),
			Date:   n.Date(),
		})
		return true
	})
	return entries, walkErr
}

func printTree(lib *core.Folder) {
	folder := color.New(color.FgBlue, color.Bold).SprintFunc()
	lib.Walk(func(depth int, f *core.Folder, n *core.Note) bool {
		indent := strings.Repeat("  ", depth)
		if n != nil {
			fmt.Printf("%s%s %s\n", indent, n.Title(), formatTags(n.Tags()))
			return true
		}
		fmt.Printf("%s%s %s\n", indent, folder(f.Title()+"/"), formatTags(f.Tags()))
		return true
	})
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return color.New(color.Faint).Sprint("#" + strings.Join(tags, " #"))
}

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only notes whose slug path matches this glob (supports **)")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only notes with this tag")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print notes as JSON")
	rootCmd.AddCommand(listCmd)
}
