package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Focusable defines the contract for a UI element that can be managed by the
// focus manager.
type Focusable interface {
	// Focus is called when the element gains focus. It can return a command.
	Focus() tea.Cmd
	// Blur is called when the element loses focus.
	Blur()
	// Update is called when the element is focused and a message is received.
	Update(msg tea.Msg) (Focusable, tea.Cmd)
	View() string
}

// FocusManager cycles focus through a form's elements.
type FocusManager struct {
	items []Focusable
	focus int
}

// NewFocusManager creates a new focus manager with the given items.
func NewFocusManager(items ...Focusable) *FocusManager {
	return &FocusManager{items: items}
}

// Focus focuses the first item.
func (m *FocusManager) Focus() tea.Cmd {
	return m.setFocus(0)
}

// Blur blurs the focused item.
func (m *FocusManager) Blur() {
	if len(m.items) > 0 {
		m.items[m.focus].Blur()
	}
}

// Update passes the message to the focused item.
func (m *FocusManager) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	newItem, cmd := m.items[m.focus].Update(msg)
	m.items[m.focus] = newItem
	return m, cmd
}

// View renders every item, one per paragraph.
func (m *FocusManager) View() string {
	var s string
	for i, item := range m.items {
		if i > 0 {
			s += "\n\n"
		}
		s += item.View()
	}
	return s
}

// Next moves focus to the next item, wrapping around.
func (m *FocusManager) Next() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	return m.setFocus((m.focus + 1) % len(m.items))
}

// Prev moves focus to the previous item, wrapping around.
func (m *FocusManager) Prev() tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}
	return m.setFocus((m.focus - 1 + len(m.items)) % len(m.items))
}

// Focused returns the currently focused element.
func (m *FocusManager) Focused() Focusable {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[m.focus]
}

// SetFocus moves focus to item. Items that are not managed are ignored.
func (m *FocusManager) SetFocus(item Focusable) tea.Cmd {
	for i, it := range m.items {
		if it == item {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *FocusManager) setFocus(index int) tea.Cmd {
	if index < 0 || index >= len(m.items) {
		return nil
	}
	m.items[m.focus].Blur()
	m.focus = index
	return m.items[m.focus].Focus()
}
