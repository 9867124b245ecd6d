package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginModel asks for an email and password.
type LoginModel struct {
	focusManager     *FocusManager
	email            *TextInput
	password         *TextInput
	buttons          *ButtonGroup
	passwordRevealed bool
	width, height    int
}

func NewLoginModel() *LoginModel {
	m := &LoginModel{}

	m.email = NewTextInput("Email", "you@example.com", 254)
	m.password = NewTextInput("Password", "", 128)
	m.password.Model.EchoMode = textinput.EchoPassword
	m.password.Model.EchoCharacter = '•'

	m.buttons = NewButtonGroup([]string{"Login"}, func(int) tea.Cmd {
		return m.submit()
	})

	m.focusManager = NewFocusManager(m.email, m.password, m.buttons)
	m.focusManager.Focus()
	return m
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" {
		m.email.Err = "Email is required"
		return m.focusManager.SetFocus(m.email)
	}
	if password == "" {
		m.password.Err = "Password is required"
		return m.focusManager.SetFocus(m.password)
	}
	return send(loginMsg{email: email, password: password})
}

// toggleReveal shows or hides the password.
func (m *LoginModel) toggleReveal() {
	m.passwordRevealed = !m.passwordRevealed
	if m.passwordRevealed {
		m.password.Model.EchoMode = textinput.EchoNormal
	} else {
		m.password.Model.EchoMode = textinput.EchoPassword
	}
}

func (m *LoginModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case loginFailedMsg:
		m.password.Model.SetValue("")
		return m, m.focusManager.SetFocus(m.password)
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.focusManager.Next()
		case "shift+tab", "up":
			return m, m.focusManager.Prev()
		case "ctrl+r":
			m.toggleReveal()
			return m, nil
		case "enter":
			switch m.focusManager.Focused() {
			case m.email:
				return m, m.focusManager.Next()
			case m.password:
				return m, m.submit()
			}
		}
	}

	_, cmd := m.focusManager.Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("School Fitness Test"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Sign in to manage schools and licenses"))
	s.WriteString("\n\n")
	s.WriteString(m.focusManager.View())

	reveal := "ctrl+r show password"
	if m.passwordRevealed {
		reveal = "ctrl+r hide password"
	}
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("tab next field • " + reveal + " • enter sign in • ctrl+c quit"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 3).
		Render(s.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, box)
}

func (m *LoginModel) IsConsumingInput() bool {
	return m.email.Model.Focused() || m.password.Model.Focused()
}
