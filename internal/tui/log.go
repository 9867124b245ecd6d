package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	applog "github.com/portalcc/licensetui/internal/log"
)

// LogViewModel shows the most recent log records.
type LogViewModel struct {
	records func() []slog.Record
}

// NewLogViewModel creates a log view reading from the default handler.
func NewLogViewModel() *LogViewModel {
	return &LogViewModel{records: applog.Logs}
}

func (m *LogViewModel) Init() tea.Cmd {
	return nil
}

func (m *LogViewModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "L":
			return m, pop
		}
	}
	return m, nil
}

func (m *LogViewModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Latest logs"))
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render(" (press 'q' to return)"))
	s.WriteString("\n\n")

	records := m.records()
	if len(records) == 0 {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Nothing logged yet."))
	}
	for _, r := range records {
		style := lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
		switch {
		case r.Level >= slog.LevelError:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Error)
		case r.Level >= slog.LevelWarn:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Warning)
		case r.Level < slog.LevelInfo:
			style = lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
		}
		var line strings.Builder
		fmt.Fprintf(&line, "%s [%s] %s", r.Time.Format("15:04:05"), r.Level, r.Message)
		r.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&line, " %s=%v", a.Key, a.Value.Any())
			return true
		})
		s.WriteString(style.Render(line.String()))
		s.WriteString("\n")
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *LogViewModel) IsConsumingInput() bool {
	return false
}
