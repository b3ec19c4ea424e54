package navigator

import (
	"fmt"

	"github.com/aretw0/quire/pkg/core"
)

// Command is an input accepted by Dispatch.
type Command int

const (
	ScrollUp Command = iota
	ScrollDown
	Select
	Back
	AddNote
	AddFolder
	Quit
)

func (c Command) String() string {
	switch c {
	case ScrollUp:
		return "scroll-up"
	case ScrollDown:
		return "scroll-down"
	case Select:
		return "select"
	case Back:
		return "back"
	case AddNote:
		return "add-note"
	case AddFolder:
		return "add-folder"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Prompt field names.
const (
	FieldTitle  = "title"
	FieldTags   = "tags"
	FieldAuthor = "author"
)

// Field is one question of a prompt.
type Field struct {
	Name    string
	Label   string
	Default string
}

// Prompt lists the fields collected before a node is created.
type Prompt struct {
	Kind   core.Kind
	Fields []Field
}

func notePrompt(author string) *Prompt {
	return &Prompt{
		Kind: core.KindNote,
		Fields: []Field{
			{Name: FieldTitle, Label: "Title"},
			{Name: FieldTags, Label: "Tags (comma separated)"},
			{Name: FieldAuthor, Label: "Author", Default: author},
		},
	}
}

func folderPrompt() *Prompt {
	return &Prompt{
		Kind: core.KindFolder,
		Fields: []Field{
			{Name: FieldTitle, Label: "Title"},
			{Name: FieldTags, Label: "Tags (comma separated)"},
		},
	}
}
