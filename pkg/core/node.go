// Package core holds the note hierarchy and the contracts used to persist it.
package core

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ContentFile is the name of the free-form body file stored next to a note's metadata.
const ContentFile = "note.md"

// Metadata is the record shared by folders, libraries and notes.
type Metadata struct {
	Title string
	Tags  []string
}

// NoteMetadata extends Metadata with authorship.
type NoteMetadata struct {
	Metadata
	Author string
	Date   time.Time
}

// Kind distinguishes the entries of a folder.
type Kind int

const (
	KindNote Kind = iota
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindFolder:
		return "folder"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Folder is a named container of folders and notes, persisted as one directory.
// A library is the root folder of a hierarchy.
type Folder struct {
	meta    Metadata
	folders []*Folder
	notes   []*Note
	root    bool
	path    string
}

// NewFolder creates an unpersisted folder.
func NewFolder(title string, tags ...string) *Folder {
	return &Folder{meta: Metadata{Title: title, Tags: normalizeTags(tags)}}
}

// NewLibrary creates an unpersisted root folder.
func NewLibrary(title string, tags ...string) *Folder {
	f := NewFolder(title, tags...)
	f.root = true
	return f
}

// RestoreFolder rebuilds a folder read back from storage.
func RestoreFolder(meta Metadata, root bool, path string, folders []*Folder, notes []*Note) *Folder {
	meta.Tags = normalizeTags(meta.Tags)
	return &Folder{
		meta:    meta,
		folders: folders,
		notes:   notes,
		root:    root,
		path:    path,
	}
}

func (f *Folder) Title() string { return f.meta.Title }
func (f *Folder) Tags() []string { return slices.Clone(f.meta.Tags) }
func (f *Folder) Metadata() Metadata { return Metadata{Title: f.meta.Title, Tags: f.Tags()} }
func (f *Folder) IsRoot() bool { return f.root }
func (f *Folder) Path() string { return f.path }
func (f *Folder) Persisted() bool { return f.path != "" }
func (f *Folder) Folders() []*Folder { return slices.Clone(f.folders) }
func (f *Folder) Notes() []*Note { return slices.Clone(f.notes) }
func (f *Folder) Len() int { return len(f.notes) + len(f.folders) }
func (f *Folder) String() string { return f.meta.Title }

// Bind records the directory a folder was persisted to. A path is set once.
func (f *Folder) Bind(path string) error {
	if f.path != "" {
		return fmt.Errorf("%w: %s", ErrAlreadyPersisted, f.path)
	}
	f.path = path
	return nil
}

// AttachFolders adds child folders to a folder that has not been persisted yet.
// Persisted folders grow through Service.AddFolder.
func (f *Folder) AttachFolders(children ...*Folder) error {
	if f.Persisted() {
		return fmt.Errorf("%w: %s", ErrAlreadyPersisted, f.path)
	}
	f.folders = append(f.folders, children...)
	return nil
}

// AttachNotes adds notes to a folder that has not been persisted yet.
// Persisted folders grow through Service.AddNote.
func (f *Folder) AttachNotes(notes ...*Note) error {
	if f.Persisted() {
		return fmt.Errorf("%w: %s", ErrAlreadyPersisted, f.path)
	}
	f.notes = append(f.notes, notes...)
	return nil
}

// At resolves an index of the combined display list: notes first, then folders.
func (f *Folder) At(i int) (Kind, *Note, *Folder, error) {
	switch {
	case i < 0 || i >= f.Len():
		return 0, nil, nil, fmt.Errorf("%w: index %d of %d", ErrNoSelection, i, f.Len())
	case i < len(f.notes):
		return KindNote, f.notes[i], nil, nil
	default:
		return KindFolder, nil, f.folders[i-len(f.notes)], nil
	}
}

func (f *Folder) appendNote(n *Note) { f.notes = append(f.notes, n) }
func (f *Folder) appendFolder(c *Folder) { f.folders = append(f.folders, c) }

// Walk visits f and every descendant depth first. Returning false from fn
// skips the children of the visited folder.
func (f *Folder) Walk(fn func(depth int, folder *Folder, note *Note) bool) {
	f.walk(0, fn)
}

func (f *Folder) walk(depth int, fn func(int, *Folder, *Note) bool) {
	if !fn(depth, f, nil) {
		return
	}
	for _, n := range f.notes {
		fn(depth+1, nil, n)
	}
	for _, c := range f.folders {
		c.walk(depth+1, fn)
	}
}

// Note pairs a metadata record with an opaque content file.
type Note struct {
	meta NoteMetadata
	path string
}

// NewNote creates an unpersisted note.
func NewNote(title string, tags []string, author string, date time.Time) *Note {
	return &Note{meta: NoteMetadata{
		Metadata: Metadata{Title: title, Tags: normalizeTags(tags)},
		Author:   author,
		Date:     date,
	}}
}

// RestoreNote rebuilds a note read back from storage.
func RestoreNote(meta NoteMetadata, path string) *Note {
	meta.Tags = normalizeTags(meta.Tags)
	return &Note{meta: meta, path: path}
}

func (n *Note) Title() string { return n.meta.Title }
func (n *Note) Tags() []string { return slices.Clone(n.meta.Tags) }
func (n *Note) Author() string { return n.meta.Author }
func (n *Note) Date() time.Time { return n.meta.Date }
func (n *Note) Path() string { return n.path }
func (n *Note) Persisted() bool { return n.path != "" }
func (n *Note) String() string { return n.meta.Title }

// Metadata returns a copy of the note's record.
func (n *Note) Metadata() NoteMetadata {
	m := n.meta
	m.Tags = n.Tags()
	return m
}

// ContentPath is the body file of a persisted note, or "" before persistence.
func (n *Note) ContentPath() string {
	if n.path == "" {
		return ""
	}
	return filepath.Join(n.path, ContentFile)
}

// Bind records the directory a note was persisted to. A path is set once.
func (n *Note) Bind(path string) error {
	if n.path != "" {
		return fmt.Errorf("%w: %s", ErrAlreadyPersisted, n.path)
	}
	n.path = path
	return nil
}

// HasTag reports whether tag is one of the note's tags.
func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.meta.Tags, tag)
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
