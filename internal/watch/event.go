// Package watch streams changes to the metadata and content files of a library.
package watch

import (
	"fmt"
	"time"
)

// Op is the kind of change observed.
type Op string

const (
	Created  Op = "created"
	Modified Op = "modified"
	Removed  Op = "removed"
)

// Subject names which file of a node changed.
type Subject string

const (
	SubjectLibrary Subject = "library"
	SubjectFolder  Subject = "folder"
	SubjectNote    Subject = "note"
	SubjectContent Subject = "content"
)

// Event describes one change. Path is the changed file; Node is the
// directory of the node it belongs to, relative to the library root.
type Event struct {
	Op        Op        `json:"op"`
	Subject   Subject   `json:"subject"`
	Path      string    `json:"path"`
	Node      string    `json:"node"`
	Timestamp time.Time `json:"timestamp"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %s", e.Op, e.Subject, e.Node)
}
