package tui

import tea "github.com/charmbracelet/bubbletea"

// ComponentStack holds the open views; only the top one gets input.
type ComponentStack struct {
	components []Component
}

// NewComponentStack creates a new component stack.
func NewComponentStack(initial ...Component) *ComponentStack {
	return &ComponentStack{
		components: initial,
	}
}

// Push adds a component to the top of the stack.
func (s *ComponentStack) Push(c Component) {
	if top := s.Top(); top != nil {
		cover(top, true)
	}
	s.components = append(s.components, c)
}

// Pop removes the top component if there is more than one component on the
// stack.
func (s *ComponentStack) Pop() tea.Cmd {
	if len(s.components) <= 1 {
		return nil
	}
	top := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	cover(s.Top(), false)
	return leave(top)
}

// Remove takes c off the stack wherever it is. It does nothing if c is no
// longer on the stack or is the last component.
func (s *ComponentStack) Remove(c Component) tea.Cmd {
	if len(s.components) <= 1 {
		return nil
	}
	for i, comp := range s.components {
		if comp == c {
			wasTop := i == len(s.components)-1
			s.components = append(s.components[:i], s.components[i+1:]...)
			if wasTop {
				cover(s.Top(), false)
			}
			return leave(c)
		}
	}
	return nil
}

// Reset replaces the whole stack with root.
func (s *ComponentStack) Reset(root Component) tea.Cmd {
	var cmds []tea.Cmd
	for i := len(s.components) - 1; i >= 0; i-- {
		cmds = append(cmds, leave(s.components[i]))
	}
	s.components = []Component{root}
	return tea.Batch(cmds...)
}

// Top returns the component that receives input, or nil.
func (s *ComponentStack) Top() Component {
	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

// Len is the number of components on the stack.
func (s *ComponentStack) Len() int {
	return len(s.components)
}

// IsConsumingInput reports whether the top component is capturing keys for
// a text input.
func (s *ComponentStack) IsConsumingInput() bool {
	top := s.Top()
	return top != nil && top.IsConsumingInput()
}

// Update updates the top component on the stack.
func (s *ComponentStack) Update(msg tea.Msg) tea.Cmd {
	top := s.Top()
	if top == nil {
		return nil
	}
	newComp, cmd := top.Update(msg)
	if newComp != top {
		s.components[len(s.components)-1] = newComp
		return tea.Batch(cmd, leave(top), newComp.Init())
	}
	return cmd
}

// Broadcast sends msg to every component, bottom to top. Used for messages
// like tea.WindowSizeMsg that all views must see.
func (s *ComponentStack) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, c := range s.components {
		newComp, cmd := c.Update(msg)
		s.components[i] = newComp
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View returns the view of the top component on the stack.
func (s *ComponentStack) View() string {
	top := s.Top()
	if top == nil {
		return ""
	}
	return top.View()
}

func leave(c Component) tea.Cmd {
	if leavable, ok := c.(Leavable); ok {
		return leavable.OnLeave()
	}
	return nil
}

func cover(c Component, covered bool) {
	coverable, ok := c.(Coverable)
	if !ok {
		return
	}
	if covered {
		coverable.OnCover()
	} else {
		coverable.OnUncover()
	}
}
