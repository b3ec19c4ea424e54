package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/quire/internal/navigator"
	"github.com/aretw0/quire/pkg/core"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.nav.Mode() == navigator.Exited {
		return ""
	}

	sections := []string{
		m.renderTitle(),
		m.renderList(),
		m.renderStatus(),
	}
	if m.nav.Mode() == navigator.Prompting {
		sections = append(sections, m.renderPrompt())
	}
	sections = append(sections, m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the breadcrumb of open folders.
func (m *Model) renderTitle() string {
	return m.theme.TitleStyle.Render(strings.Join(m.nav.Breadcrumb(), " / "))
}

func (m *Model) renderList() string {
	items := m.nav.Items()
	box := m.theme.BorderStyle.
		Width(max(m.width-4, 10)).
		Height(m.visibleLines())

	if len(items) == 0 {
		return box.Render(m.theme.EmptyStyle.Render("(empty folder: n adds a note, f adds a folder)"))
	}

	end := min(m.offset+m.visibleLines(), len(items))
	cursor := m.nav.Cursor()

	var lines []string
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderItem(items[i], i == cursor))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderItem(item navigator.Item, selected bool) string {
	icon, style := "📄", m.theme.NoteStyle
	if item.Kind == core.KindFolder {
		icon, style = "📁", m.theme.FolderStyle
	}
	if selected {
		style = m.theme.SelectedStyle
	}

	line := style.Render(fmt.Sprintf("%s %s", icon, item.Title))
	if len(item.Tags) > 0 {
		line += " " + m.theme.TagStyle.Render("#"+strings.Join(item.Tags, " #"))
	}
	return line
}

// renderStatus renders the position and the last message.
func (m *Model) renderStatus() string {
	left := "0 items"
	if n := len(m.nav.Items()); n > 0 {
		left = fmt.Sprintf("%d/%d items", m.nav.Cursor()+1, n)
	}

	right := m.statusMsg
	if m.errorMsg != "" {
		right = m.theme.ErrorStyle.Render(m.errorMsg)
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 0)
	return m.theme.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

func (m *Model) renderPrompt() string {
	prompt := m.nav.Prompt()
	if prompt == nil {
		return ""
	}
	label := fmt.Sprintf("New %s · %s (%d/%d) ", prompt.Kind, prompt.Fields[m.field].Label, m.field+1, len(prompt.Fields))
	return m.theme.PromptStyle.Render(label + m.input.View())
}

func (m *Model) renderHelpBar() string {
	if m.showFullHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
