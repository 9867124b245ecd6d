package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAddLicensesModel_Submit(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
		want    int
	}{
		{input: "12", want: 12},
		{input: "abc", wantErr: "must be a number"},
		{input: "0", wantErr: "or greater"},
		{input: "5000", wantErr: "or less"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			m := NewAddLicensesModel("school-1")
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.input)})
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

			if tc.wantErr != "" {
				if !strings.Contains(m.View(), tc.wantErr) {
					t.Errorf("expected %q in\n%s", tc.wantErr, m.View())
				}
				if cmd != nil {
					if _, ok := cmd().(addLicensesMsg); ok {
						t.Error("invalid input must not add licenses")
					}
				}
				return
			}

			if cmd == nil {
				t.Fatal("expected a command")
			}
			msg, ok := cmd().(addLicensesMsg)
			if !ok || msg.schoolID != "school-1" || msg.count != tc.want {
				t.Errorf("expected addLicensesMsg{school-1 %d}, got %#v", tc.want, msg)
			}
		})
	}
}

func TestAddLicensesModel_Cancel(t *testing.T) {
	m := NewAddLicensesModel("school-1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(popViewMsg); !ok {
		t.Error("expected a popViewMsg")
	}
}
