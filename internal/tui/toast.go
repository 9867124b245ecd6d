package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 6 * time.Second

type severity int

const (
	severitySuccess severity = iota
	severityError
)

// toast is the notification currently shown under the active view. It never
// takes input; a newer toast replaces it.
type toast struct {
	id       int
	text     string
	severity severity
}

// show replaces the current toast and schedules its expiry.
func (t *toast) show(text string, sev severity) tea.Cmd {
	t.id++
	t.text = text
	t.severity = sev
	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// expire hides the toast unless a newer one replaced it.
func (t *toast) expire(id int) {
	if id == t.id {
		t.text = ""
	}
}

func (t toast) View() string {
	if t.text == "" {
		return ""
	}
	color := CurrentTheme.Success
	if t.severity == severityError {
		color = CurrentTheme.Error
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		Render(t.text)
}
