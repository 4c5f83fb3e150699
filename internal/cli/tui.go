package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/racklabs/rackplan/pkg/proposal"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EnclosurePickerModel - Interactive rack selection
// =============================================================================

// EnclosurePickerModel is the bubbletea model for choosing which of the
// racks detected in a proposal the plan should target.
type EnclosurePickerModel struct {
	Enclosures []proposal.Enclosure
	Cursor     int
	Selected   *proposal.Enclosure
}

// NewEnclosurePickerModel creates a picker over the detected racks.
func NewEnclosurePickerModel(enclosures []proposal.Enclosure) EnclosurePickerModel {
	return EnclosurePickerModel{Enclosures: enclosures}
}

func (m EnclosurePickerModel) Init() tea.Cmd {
	return nil
}

func (m EnclosurePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Enclosures)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Enclosures[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m EnclosurePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Rack"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, e := range m.Enclosures {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var status string
		if e.Kind == proposal.KindNetwork {
			status = StyleWarning.Render("#")
		} else {
			status = StyleSuccess.Render("*")
		}

		location := e.Location
		if location == "" {
			location = "unspecified location"
		}

		line := fmt.Sprintf("%s%s %3dU  %-28s x%d  %s",
			cursor, status, e.SizeU, e.Model, e.Quantity, listDimStyle.Render(location))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s AV rack   %s network rack\n",
		StyleSuccess.Render("*"), StyleWarning.Render("#")))

	return b.String()
}

// pickEnclosure runs the interactive picker and returns the chosen rack,
// or nil when the user backed out without selecting.
func pickEnclosure(enclosures []proposal.Enclosure) (*proposal.Enclosure, error) {
	p := tea.NewProgram(NewEnclosurePickerModel(enclosures))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := finalModel.(EnclosurePickerModel)
	if !ok {
		return nil, nil
	}
	return m.Selected, nil
}
