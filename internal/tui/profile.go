package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

// ProfileModel shows who is signed in, with Home and Logout.
type ProfileModel struct {
	session *portal.Session
	buttons *ButtonGroup
}

func NewProfileModel(session *portal.Session) *ProfileModel {
	m := &ProfileModel{session: session}
	m.buttons = NewButtonGroup([]string{"Home", "Logout"}, func(i int) tea.Cmd {
		if i == 0 {
			return send(homeMsg{})
		}
		return send(logoutMsg{})
	})
	m.buttons.Focus()
	return m
}

func (m *ProfileModel) Init() tea.Cmd { return nil }

func (m *ProfileModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "p":
			return m, pop
		}
		_, cmd := m.buttons.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProfileModel) View() string {
	label := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Width(10)
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Profile"))
	s.WriteString("\n\n")
	s.WriteString(label.Render("Role"))
	s.WriteString(string(m.session.Role))
	s.WriteString("\n")
	s.WriteString(label.Render("Email"))
	s.WriteString(m.session.Email)
	s.WriteString("\n")
	s.WriteString(label.Render("Since"))
	s.WriteString(m.session.Started.Format(time.DateTime))
	s.WriteString("\n\n")
	s.WriteString(m.buttons.View())
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(CurrentTheme.Primary).Padding(1, 2)
	return lipgloss.NewStyle().Margin(1, 2).Render(box.Render(s.String()))
}

func (m *ProfileModel) IsConsumingInput() bool {
	return false
}
