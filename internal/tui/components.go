package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Styles ---

func focusedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
}

func blurredStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
}

// --- TextInput ---

// TextInput adapts a textinput.Model to Focusable.
type TextInput struct {
	Model textinput.Model
	label string
	// Err is shown under the input until the next edit.
	Err string

	OnFocus func(*textinput.Model) tea.Cmd
	OnBlur  func(*textinput.Model)
}

func NewTextInput(label, placeholder string, charLimit int) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 40
	ti.Prompt = ""
	return &TextInput{Model: ti, label: label}
}

func (t *TextInput) Value() string {
	return t.Model.Value()
}

func (t *TextInput) Focus() tea.Cmd {
	cmd := t.Model.Focus()
	if t.OnFocus != nil {
		return tea.Batch(cmd, t.OnFocus(&t.Model))
	}
	return cmd
}

func (t *TextInput) Blur() {
	t.Model.Blur()
	if t.OnBlur != nil {
		t.OnBlur(&t.Model)
	}
}

func (t *TextInput) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	var cmd tea.Cmd
	before := t.Model.Value()
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.Err = ""
	}
	return t, cmd
}

func (t *TextInput) View() string {
	label := blurredStyle().Render(t.label)
	if t.Model.Focused() {
		label = focusedStyle().Render(t.label)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1)
	if t.Model.Focused() {
		box = box.BorderForeground(CurrentTheme.Primary)
	}
	s := label + "\n" + box.Render(t.Model.View())
	if t.Err != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(t.Err)
	}
	return s
}

// --- Checkbox ---

type Checkbox struct {
	label   string
	checked bool
	focused bool
}

func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{
		label:   label,
		checked: checked,
	}
}

func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *Checkbox) Blur() {
	c.focused = false
}

func (c *Checkbox) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			c.checked = !c.checked
		}
	}
	return c, nil
}

func (c *Checkbox) View() string {
	box := "[ ]"
	if c.checked {
		box = "[x]"
	}
	if c.focused {
		return focusedStyle().Render(box + " " + c.label)
	}
	return blurredStyle().Render(box + " " + c.label)
}

func (c *Checkbox) Checked() bool {
	return c.checked
}

// --- ButtonGroup ---

// ButtonGroup is a row of buttons; action receives the index of the button
// pressed.
type ButtonGroup struct {
	buttons  []string
	selected int
	focused  bool
	action   func(int) tea.Cmd
}

func NewButtonGroup(buttons []string, action func(int) tea.Cmd) *ButtonGroup {
	return &ButtonGroup{
		buttons: buttons,
		action:  action,
	}
}

func (b *ButtonGroup) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *ButtonGroup) Blur() {
	b.focused = false
}

func (b *ButtonGroup) Update(msg tea.Msg) (Focusable, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			b.selected = (b.selected + 1) % len(b.buttons)
		case "left", "h":
			b.selected = (b.selected - 1 + len(b.buttons)) % len(b.buttons)
		case "enter", " ":
			if b.action != nil {
				return b, b.action(b.selected)
			}
		}
	}
	return b, nil
}

func (b *ButtonGroup) View() string {
	var s strings.Builder
	for i, label := range b.buttons {
		style := blurredStyle()
		if b.focused && i == b.selected {
			style = focusedStyle()
		}
		s.WriteString(style.Render("[ " + label + " ]"))
		s.WriteString("  ")
	}
	return s.String()
}

// Selected is the index of the highlighted button.
func (b *ButtonGroup) Selected() int {
	return b.selected
}
