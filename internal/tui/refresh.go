package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	RefreshOff      = 0
	RefreshInterval = 30 * time.Second
)

// RefreshSchedule periodically requests a refetch of the visible list.
type RefreshSchedule struct {
	callback func() tea.Msg
	interval time.Duration
	// gen tags ticks so a loop from before the last restart dies out.
	gen int
	// paused keeps the loop ticking without firing the callback.
	paused bool
}

// NewRefreshSchedule creates a stopped schedule.
func NewRefreshSchedule(callback func() tea.Msg) *RefreshSchedule {
	return &RefreshSchedule{
		callback: callback,
	}
}

// Enabled reports whether the schedule is running.
func (s *RefreshSchedule) Enabled() bool {
	return s.interval != RefreshOff
}

// Toggle starts or stops the schedule.
func (s *RefreshSchedule) Toggle() (bool, tea.Cmd) {
	if s.Enabled() {
		return false, s.SetSchedule(RefreshOff)
	}
	return true, s.SetSchedule(RefreshInterval)
}

// SetSchedule sets the refresh interval. RefreshOff stops it.
func (s *RefreshSchedule) SetSchedule(interval time.Duration) tea.Cmd {
	wasOff := !s.Enabled()
	s.interval = interval
	if interval == RefreshOff {
		s.gen++
		return nil
	}
	if wasOff {
		s.gen++
		return s.tick()
	}
	return nil
}

// Pause skips the callback until Resume.
func (s *RefreshSchedule) Pause() {
	s.paused = true
}

func (s *RefreshSchedule) Resume() {
	s.paused = false
}

// Update fires the callback on the schedule's own ticks.
func (s *RefreshSchedule) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(refreshTickMsg)
	if !ok || !s.Enabled() || tick.gen != s.gen {
		return nil
	}
	if s.paused {
		return s.tick()
	}
	return tea.Batch(s.callback, s.tick())
}

// refreshTickMsg triggers a refresh.
type refreshTickMsg struct{ gen int }

func (s *RefreshSchedule) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return refreshTickMsg{gen: gen}
	})
}
