package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

// SchoolFormModel is the "New Account" form.
type SchoolFormModel struct {
	focusManager    *FocusManager
	name            *TextInput
	email           *TextInput
	defaultLicenses *Checkbox
	buttons         *ButtonGroup
}

func NewSchoolFormModel() *SchoolFormModel {
	m := &SchoolFormModel{}
	m.name = NewTextInput("Name", "School name", 128)
	m.email = NewTextInput("Email", "office@school.edu", 254)
	m.defaultLicenses = NewCheckbox("Create default licenses", false)
	m.buttons = NewButtonGroup([]string{"Create", "Cancel"}, func(i int) tea.Cmd {
		if i == 0 {
			return m.submit()
		}
		return pop
	})
	m.focusManager = NewFocusManager(m.name, m.email, m.defaultLicenses, m.buttons)
	m.focusManager.Focus()
	return m
}

func (m *SchoolFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// submit validates the form and asks the main model to create the school.
func (m *SchoolFormModel) submit() tea.Cmd {
	school := portal.NewSchool{
		Name:                  strings.TrimSpace(m.name.Value()),
		Email:                 strings.TrimSpace(m.email.Value()),
		CreateDefaultLicenses: m.defaultLicenses.Checked(),
	}
	err := school.Validate()
	var verr *portal.ValidationError
	if errors.As(err, &verr) {
		m.name.Err = verr.Fields["Name"]
		m.email.Err = verr.Fields["Email"]
		if m.name.Err != "" {
			return m.focusManager.SetFocus(m.name)
		}
		return m.focusManager.SetFocus(m.email)
	}
	if err != nil {
		return toastError(err.Error())
	}
	return send(createSchoolMsg{school: school, form: m})
}

func (m *SchoolFormModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return m, m.focusManager.Next()
		case "shift+tab", "up":
			return m, m.focusManager.Prev()
		case "esc":
			return m, pop
		case "enter":
			switch m.focusManager.Focused() {
			case m.name, m.email:
				return m, m.focusManager.Next()
			}
		}
	}
	_, cmd := m.focusManager.Update(msg)
	return m, cmd
}

func (m *SchoolFormModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("New Account"))
	s.WriteString("\n\n")
	s.WriteString(m.focusManager.View())
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("tab to switch fields, space to toggle, enter to select, esc to cancel"))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *SchoolFormModel) IsConsumingInput() bool {
	return m.name.Model.Focused() || m.email.Model.Focused()
}
