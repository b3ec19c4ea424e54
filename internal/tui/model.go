// Package tui is the terminal browser for a library.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quire/internal/editor"
	"github.com/aretw0/quire/internal/navigator"
)

// Config configures the browser.
type Config struct {
	Editor string
	Logger *slog.Logger
}

// Model is the bubbletea model wrapping a navigator.
type Model struct {
	ctx    context.Context
	nav    *navigator.Navigator
	editor string
	logger *slog.Logger
	theme  *Theme
	keys   KeyMap
	help   help.Model

	width  int
	height int
	offset int

	input   textinput.Model
	field   int
	answers map[string]string

	statusMsg    string
	errorMsg     string
	showFullHelp bool
}

// NewModel creates the browser model.
func NewModel(ctx context.Context, nav *navigator.Navigator, cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.CharLimit = 256

	return &Model{
		ctx:    ctx,
		nav:    nav,
		editor: cfg.Editor,
		logger: logger,
		theme:  DefaultTheme(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// editorFinishedMsg is sent once the editor process has exited or failed to start.
type editorFinishedMsg struct {
	path string
	err  error
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case editorFinishedMsg:
		if err := m.nav.EditDone(); err != nil {
			m.logger.Error("edit finished in unexpected state", "error", err)
		}
		if editor.IsSpawnFailure(msg.err) {
			m.errorMsg = fmt.Sprintf("Failed to start editor: %v", msg.err)
		} else {
			m.logger.Debug("editor closed", "path", msg.path, "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.nav.Mode() {
		case navigator.Prompting:
			return m.handlePromptMode(msg)
		case navigator.Browsing:
			return m.handleBrowseMode(msg)
		}
		return m, nil
	}

	if m.nav.Mode() == navigator.Prompting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleBrowseMode maps keys onto navigator commands.
func (m *Model) handleBrowseMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.dispatch(navigator.Quit)
	case key.Matches(msg, m.keys.Up):
		return m.dispatch(navigator.ScrollUp)
	case key.Matches(msg, m.keys.Down):
		return m.dispatch(navigator.ScrollDown)
	case key.Matches(msg, m.keys.Open):
		return m.dispatch(navigator.Select)
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(navigator.Back)
	case key.Matches(msg, m.keys.NewNote):
		return m.dispatch(navigator.AddNote)
	case key.Matches(msg, m.keys.NewFolder):
		return m.dispatch(navigator.AddFolder)
	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = !m.showFullHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) dispatch(cmd navigator.Command) (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	m.statusMsg = ""

	effect, err := m.nav.Dispatch(m.ctx, cmd)
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}

	switch {
	case m.nav.Mode() == navigator.Exited:
		return m, tea.Quit
	case effect.Edit != "":
		return m, m.openEditor(effect.Edit)
	case m.nav.Mode() == navigator.Prompting:
		return m, m.startPrompt()
	}
	m.keepCursorVisible()
	return m, nil
}

// openEditor suspends the program while the editor owns the terminal.
func (m *Model) openEditor(path string) tea.Cmd {
	c, err := editor.Command(m.editor, path)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{path: path, err: err} }
	}
	m.logger.Debug("opening editor", "editor", m.editor, "path", path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// startPrompt begins collecting the fields of the pending prompt.
func (m *Model) startPrompt() tea.Cmd {
	m.field = 0
	m.answers = make(map[string]string)
	return m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	f := m.nav.Prompt().Fields[m.field]
	m.input.Placeholder = f.Label
	m.input.SetValue(f.Default)
	m.input.CursorEnd()
	return m.input.Focus()
}

// handlePromptMode collects one field per enter; esc abandons the prompt.
func (m *Model) handlePromptMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.endPrompt()
		_ = m.nav.Cancel()
		return m.dispatch(navigator.Quit)

	case tea.KeyEscape:
		m.endPrompt()
		if err := m.nav.Cancel(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, nil

	case tea.KeyEnter:
		prompt := m.nav.Prompt()
		m.answers[prompt.Fields[m.field].Name] = strings.TrimSpace(m.input.Value())
		m.field++
		if m.field < len(prompt.Fields) {
			return m, m.focusField()
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	title := m.answers[navigator.FieldTitle]
	m.endPrompt()

	if err := m.nav.Submit(m.ctx, m.answers); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("Created %s", title)
	m.keepCursorVisible()
	return m, nil
}

func (m *Model) endPrompt() {
	m.input.Blur()
	m.input.SetValue("")
	m.errorMsg = ""
	m.statusMsg = ""
}

// keepCursorVisible adjusts the scroll offset around the cursor.
func (m *Model) keepCursorVisible() {
	cursor := m.nav.Cursor()
	visible := m.visibleLines()
	if cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= m.offset+visible {
		m.offset = cursor - visible + 1
	}
}

// visibleLines returns how many entries fit between the title and the bars.
func (m *Model) visibleLines() int {
	available := m.height - 8
	if available < 5 {
		return 5
	}
	return available
}
