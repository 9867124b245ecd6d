package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

// AddLicensesModel asks how many licenses to add to a school.
type AddLicensesModel struct {
	schoolID     string
	focusManager *FocusManager
	count        *TextInput
	buttons      *ButtonGroup
}

func NewAddLicensesModel(schoolID string) *AddLicensesModel {
	m := &AddLicensesModel{schoolID: schoolID}
	m.count = NewTextInput("Number of Licenses", "1", 4)
	m.buttons = NewButtonGroup([]string{"Add", "Cancel"}, func(i int) tea.Cmd {
		if i == 0 {
			return m.submit()
		}
		return pop
	})
	m.focusManager = NewFocusManager(m.count, m.buttons)
	m.focusManager.Focus()
	return m
}

func (m *AddLicensesModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AddLicensesModel) submit() tea.Cmd {
	n, err := strconv.Atoi(strings.TrimSpace(m.count.Value()))
	if err != nil {
		m.count.Err = "Number of Licenses must be a number"
		return m.focusManager.SetFocus(m.count)
	}
	if err := portal.ValidateLicenseCount(n); err != nil {
		m.count.Err = err.Error()
		return m.focusManager.SetFocus(m.count)
	}
	return send(addLicensesMsg{schoolID: m.schoolID, count: n, form: m})
}

func (m *AddLicensesModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return m, m.focusManager.Next()
		case "shift+tab", "up":
			return m, m.focusManager.Prev()
		case "esc":
			return m, pop
		case "enter":
			if m.focusManager.Focused() == m.count {
				return m, m.submit()
			}
		}
	}
	_, cmd := m.focusManager.Update(msg)
	return m, cmd
}

func (m *AddLicensesModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Add More"))
	s.WriteString("\n\n")
	s.WriteString(m.focusManager.View())
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("enter to add, esc to cancel"))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *AddLicensesModel) IsConsumingInput() bool {
	return m.count.Model.Focused()
}
