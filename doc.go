// Package quire is the composition root of the quire note keeper.
//
// A library is a tree of folders and notes kept as plain directories: every
// node owns one directory named after the slug of its title, holding a small
// YAML metadata file (library.yaml, folder.yaml or note.yaml). A note also
// owns note.md, a free-form body that quire never reads and only hands to an
// editor.
//
//	notes/
//	  library.yaml
//	  ideas/
//	    folder.yaml
//	    first-draft/
//	      note.yaml
//	      note.md
//
// The core domain (pkg/core) knows nothing about that layout; the filesystem
// adapter (pkg/adapters/fs) maps it onto disk.
//
// Usage:
//
//	svc, lib, err := quire.CreateLibrary(ctx, "Notes", nil, quire.WithBaseDir("."))
//	if err != nil {
//		return err
//	}
//	note := core.NewNote("First Draft", []string{"idea"}, "ada", time.Now())
//	err = svc.AddNote(ctx, lib, note)
package quire
