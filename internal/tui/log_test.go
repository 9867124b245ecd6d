package tui

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLogViewModel_View(t *testing.T) {
	r := slog.NewRecord(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), slog.LevelError, "request failed", 0)
	r.AddAttrs(slog.String("action", "delete school"))
	m := &LogViewModel{records: func() []slog.Record { return []slog.Record{r} }}

	view := m.View()
	for _, want := range []string{"09:30:00", "[ERROR]", "request failed", "action=delete school"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in\n%s", want, view)
		}
	}
}

func TestLogViewModel_Empty(t *testing.T) {
	m := &LogViewModel{records: func() []slog.Record { return nil }}
	if !strings.Contains(m.View(), "Nothing logged yet.") {
		t.Errorf("expected the empty message in\n%s", m.View())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected esc to close the view")
	}
	if _, ok := cmd().(popViewMsg); !ok {
		t.Error("expected a popViewMsg")
	}
}
