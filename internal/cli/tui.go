package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jverdier/coursemap/pkg/catalog"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TemplateListModel - Interactive node template selection
// =============================================================================

// TemplateListModel is the bubbletea model for interactive template selection.
type TemplateListModel struct {
	Templates []catalog.Template
	Cursor    int
	Selected  *catalog.Template
}

// NewTemplateListModel creates a new template list model.
func NewTemplateListModel(templates []catalog.Template) TemplateListModel {
	return TemplateListModel{Templates: templates}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Templates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Module Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, tmpl := range m.Templates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		family := tmpl.Family
		if tmpl.Subfamily != "" {
			family += "/" + tmpl.Subfamily
		}
		if family == "" {
			family = "—"
		}

		line := fmt.Sprintf("%s%-20s %-24s %s", cursor, tmpl.ID,
			tmpl.Title, listDimStyle.Render(fmt.Sprintf("%s · %d units", family, tmpl.DefaultDurationUnits)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Templates))))

	return b.String()
}

// pickTemplate runs the interactive template picker and returns the selected
// template, or ok=false when the user quit without selecting.
func pickTemplate(templates []catalog.Template) (catalog.Template, bool, error) {
	p := tea.NewProgram(NewTemplateListModel(templates))
	finalModel, err := p.Run()
	if err != nil {
		return catalog.Template{}, false, err
	}
	fm, ok := finalModel.(TemplateListModel)
	if !ok || fm.Selected == nil {
		return catalog.Template{}, false, nil
	}
	return *fm.Selected, true, nil
}
