package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmation is a pending yes/no question owned by a view. While it is set
// the view routes keys to handle instead of its own bindings.
type confirmation struct {
	question string
	onYes    tea.Cmd
}

// handle processes a key for the question. It returns whether the question
// is answered, and the command to run if the answer was yes.
func (c *confirmation) handle(msg tea.Msg) (finished bool, cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			return true, c.onYes
		case "n", "N", "esc", "q":
			return true, nil
		}
	}
	return false, nil
}

func (c *confirmation) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Error).
		Padding(0, 2).
		Render(c.question + " (y/N)")
}
