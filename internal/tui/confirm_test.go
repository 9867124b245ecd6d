package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmation(t *testing.T) {
	yes := func() tea.Msg { return deleteSchoolMsg{schoolID: "s1"} }

	tests := []struct {
		key      tea.KeyMsg
		finished bool
		confirm  bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, true, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, true, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, false, false},
	}
	for _, tt := range tests {
		c := &confirmation{question: "Are you sure you want to delete this school?", onYes: yes}
		finished, cmd := c.handle(tt.key)
		if finished != tt.finished {
			t.Errorf("%s: finished = %v, want %v", tt.key, finished, tt.finished)
		}
		if (cmd != nil) != tt.confirm {
			t.Errorf("%s: confirmed = %v, want %v", tt.key, cmd != nil, tt.confirm)
		}
		if cmd != nil {
			if _, ok := cmd().(deleteSchoolMsg); !ok {
				t.Errorf("%s: expected a deleteSchoolMsg", tt.key)
			}
		}
	}
}
