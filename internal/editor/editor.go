// Package editor builds the process that opens a note's content file.
package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when the editor setting is blank.
var ErrNoEditor = errors.New("no editor configured")

// Command returns the process opening path in editor. The editor setting may
// carry arguments, e.g. "code --wait". The process inherits the terminal.
func Command(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, ErrNoEditor
	}
	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// IsSpawnFailure reports whether err from running an editor means the process
// never ran. A non-zero exit status is not a spawn failure.
func IsSpawnFailure(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}
