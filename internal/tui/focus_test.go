package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// stubFocusable records focus changes for the focus manager tests.
type stubFocusable struct {
	id      string
	focused bool
}

func (s *stubFocusable) Focus() tea.Cmd {
	s.focused = true
	return nil
}

func (s *stubFocusable) Blur() {
	s.focused = false
}

func (s *stubFocusable) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	return s, nil
}

func (s *stubFocusable) View() string {
	marker := " "
	if s.focused {
		marker = "*"
	}
	return fmt.Sprintf("[%s%s]", marker, s.id)
}

func focusState(fm *FocusManager) string {
	var views []string
	for _, item := range fm.items {
		views = append(views, item.View())
	}
	return strings.Join(views, " ")
}

func TestFocusManager_Cycle(t *testing.T) {
	a, b, c := &stubFocusable{id: "a"}, &stubFocusable{id: "b"}, &stubFocusable{id: "c"}
	fm := NewFocusManager(a, b, c)
	fm.Focus()

	steps := []struct {
		move     func() tea.Cmd
		expected string
	}{
		{fm.Next, "[ a] [*b] [ c]"},
		{fm.Next, "[ a] [ b] [*c]"},
		{fm.Next, "[*a] [ b] [ c]"},
		{fm.Prev, "[ a] [ b] [*c]"},
		{fm.Prev, "[ a] [*b] [ c]"},
	}
	if got := focusState(fm); got != "[*a] [ b] [ c]" {
		t.Fatalf("initial state = %s", got)
	}
	for i, step := range steps {
		step.move()
		if got := focusState(fm); got != step.expected {
			t.Errorf("step %d: got %s, want %s", i, got, step.expected)
		}
	}
}

func TestFocusManager_SetFocus(t *testing.T) {
	a, b := &stubFocusable{id: "a"}, &stubFocusable{id: "b"}
	fm := NewFocusManager(a, b)
	fm.Focus()

	fm.SetFocus(b)
	if fm.Focused() != b || a.focused {
		t.Errorf("SetFocus(b) left state %s", focusState(fm))
	}

	fm.SetFocus(&stubFocusable{id: "stranger"})
	if fm.Focused() != b {
		t.Errorf("SetFocus with an unmanaged item should be ignored, got %s", focusState(fm))
	}
}

func TestFocusManager_Empty(t *testing.T) {
	fm := NewFocusManager()
	if fm.Focus() != nil || fm.Next() != nil || fm.Prev() != nil {
		t.Error("empty manager should not produce commands")
	}
	if fm.Focused() != nil {
		t.Error("empty manager should have nothing focused")
	}
	fm.Blur()
}

func TestButtonGroup(t *testing.T) {
	var pressed []int
	bg := NewButtonGroup([]string{"Create", "Cancel"}, func(i int) tea.Cmd {
		pressed = append(pressed, i)
		return nil
	})
	bg.Focus()

	bg.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bg.Update(tea.KeyMsg{Type: tea.KeyRight})
	bg.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bg.Update(tea.KeyMsg{Type: tea.KeyRight})
	bg.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if fmt.Sprint(pressed) != "[0 1 0]" {
		t.Errorf("pressed = %v, want [0 1 0]", pressed)
	}
}

func TestCheckbox(t *testing.T) {
	cb := NewCheckbox("Create default licenses", false)
	cb.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !cb.Checked() {
		t.Error("space should check the box")
	}
	if !strings.Contains(cb.View(), "[x] Create default licenses") {
		t.Errorf("unexpected view %q", cb.View())
	}
	cb.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cb.Checked() {
		t.Error("enter should uncheck the box")
	}
}
