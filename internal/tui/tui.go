package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

// DefaultTimeout bounds every API request started from the TUI.
const DefaultTimeout = 15 * time.Second

// Config holds what the TUI needs from the outside.
type Config struct {
	Backend       portal.Backend
	Authenticator *portal.Authenticator
	Logger        *slog.Logger
	// Clock defaults to time.Now.
	Clock portal.Clock
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// Session skips the login screen when set.
	Session *portal.Session
}

// The main model for our TUI application
type model struct {
	stack *ComponentStack

	spinner       spinner.Model
	api           api
	auth          *portal.Authenticator
	clock         portal.Clock
	logger        *slog.Logger
	session       *portal.Session
	loading       bool
	busy          bool
	statusMessage string
	toast         toast
	width, height int
}

// NewModel creates the starting state of our application
func NewModel(cfg Config) (*model, error) {
	if cfg.Backend == nil {
		return nil, errors.New("tui: no backend")
	}
	if cfg.Authenticator == nil && cfg.Session == nil {
		return nil, errors.New("tui: no authenticator")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	m := &model{
		spinner: s,
		api:     api{backend: cfg.Backend, timeout: cfg.Timeout},
		auth:    cfg.Authenticator,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
		session: cfg.Session,
	}
	if m.session != nil {
		m.stack = NewComponentStack(NewSchoolsModel())
		m.setLoading("Loading schools...")
	} else {
		m.stack = NewComponentStack(NewLoginModel())
	}
	return m, nil
}

// Init is the first command that is run when the program starts
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.stack.Top().Init()}
	if m.session != nil {
		cmds = append(cmds, m.api.fetchSchools())
	}
	return tea.Batch(cmds...)
}

func (m *model) setLoading(status string) {
	m.loading = true
	m.statusMessage = status
}

func (m *model) doneLoading() {
	m.loading = false
	m.statusMessage = ""
}

// mutate starts a request that changes data, unless one is already running.
func (m *model) mutate(status string, cmd tea.Cmd) tea.Cmd {
	if m.busy {
		return m.toast.show("Another request is still running", severityError)
	}
	m.busy = true
	m.setLoading(status)
	return cmd
}

// goHome shows a fresh school list and fetches it.
func (m *model) goHome() tea.Cmd {
	leaveCmd := m.stack.Reset(NewSchoolsModel())
	m.setLoading("Loading schools...")
	return tea.Batch(leaveCmd, m.resize(), m.api.fetchSchools())
}

// resize sends the last window size to every view.
func (m *model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}
	return m.stack.Broadcast(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

// Update handles all incoming messages and updates the model accordingly
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Global messages that are not passed to components
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.stack.Broadcast(msg)
	case popViewMsg:
		return m, m.stack.Pop()
	case pushViewMsg:
		m.stack.Push(msg.c)
		return m, tea.Batch(msg.c.Init(), m.resize())
	case toastMsg:
		return m, m.toast.show(msg.text, msg.severity)
	case toastExpiredMsg:
		m.toast.expire(msg.id)
		return m, nil

	case loginMsg:
		m.setLoading("Signing in...")
		return m, login(m.auth, m.clock, msg.email, msg.password)
	case loggedInMsg:
		m.session = msg.session
		m.logger.Info("signed in", "email", msg.session.Email, "role", msg.session.Role)
		text := "User login successful"
		if msg.session.IsAdmin() {
			text = "Admin login successful"
		}
		return m, tea.Batch(m.toast.show(text, severitySuccess), m.goHome())
	case loginFailedMsg:
		m.doneLoading()
		m.logger.Warn("sign in failed", "error", msg.err)
		cmds = append(cmds, m.toast.show("Invalid credentials", severityError))
	case logoutMsg:
		if m.session != nil {
			m.logger.Info("signed out", "email", m.session.Email)
		}
		m.session = nil
		m.busy = false
		m.doneLoading()
		return m, tea.Batch(m.stack.Reset(NewLoginModel()), m.stack.Top().Init(), m.resize())
	case homeMsg:
		return m, m.goHome()

	case loadSchoolsMsg:
		m.setLoading("Loading schools...")
		return m, m.api.fetchSchools()
	case loadLicensesMsg:
		m.setLoading("Loading licenses...")
		return m, m.api.fetchLicenses(msg.schoolID)
	case openLicensesMsg:
		view := NewLicensesModel(m.session, m.clock, msg.schoolID)
		m.stack.Push(view)
		m.setLoading("Loading licenses...")
		return m, tea.Batch(view.Init(), m.resize(), m.api.fetchLicenses(msg.schoolID))
	case schoolsLoadedMsg, licensesLoadedMsg:
		// Views below the top keep their data current too.
		m.doneLoading()
		return m, m.stack.Broadcast(msg)
	case refreshTickMsg:
		return m, m.stack.Broadcast(msg)

	case createSchoolMsg:
		return m, m.mutate(fmt.Sprintf("Creating %s...", msg.school.Name), m.api.createSchool(msg.school, msg.form))
	case deleteSchoolMsg:
		return m, m.mutate(fmt.Sprintf("Deleting %s...", msg.name), m.api.deleteSchool(msg.schoolID, msg.name))
	case renewLicenseMsg:
		if err := m.session.Authorize(portal.ActionRenewLicense); err != nil {
			return m, m.toast.show(err.Error(), severityError)
		}
		return m, m.mutate("Renewing license...", m.api.renewLicense(msg.schoolID, msg.licenseID, msg.expiry))
	case deleteLicenseMsg:
		if err := m.session.Authorize(portal.ActionDeleteLicense); err != nil {
			return m, m.toast.show(err.Error(), severityError)
		}
		return m, m.mutate("Deleting license...", m.api.deleteLicense(msg.schoolID, msg.licenseID))
	case addLicensesMsg:
		return m, m.mutate(fmt.Sprintf("Adding %d licenses...", msg.count), m.api.addLicenses(msg.schoolID, msg.count, msg.form))
	case mutationDoneMsg:
		m.busy = false
		m.doneLoading()
		m.logger.Info(msg.toast)
		cmds = append(cmds, m.toast.show(msg.toast, severitySuccess))
		if msg.form != nil {
			cmds = append(cmds, m.stack.Remove(msg.form))
		}
		if msg.notify != nil {
			cmds = append(cmds, m.stack.Broadcast(msg.notify))
		}
		if msg.refresh != nil {
			cmds = append(cmds, send(msg.refresh))
		}
		return m, tea.Batch(cmds...)
	case mutationFailedMsg:
		m.busy = false
		m.doneLoading()
		m.logger.Error("request failed", "action", msg.action, "error", msg.err)
		return m, m.toast.show(failureText(msg.action, msg.err), severityError)
	case errorMsg:
		m.doneLoading()
		m.logger.Error("request failed", "action", msg.action, "error", msg.err)
		// Views stop waiting and keep whatever they already show.
		return m, tea.Batch(m.toast.show(failureText(msg.action, msg.err), severityError), m.stack.Broadcast(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.stack.IsConsumingInput() && m.session != nil {
			switch msg.String() {
			case "p":
				if _, open := m.stack.Top().(*ProfileModel); !open {
					return m, push(NewProfileModel(m.session))
				}
			case "L":
				if _, open := m.stack.Top().(*LogViewModel); !open {
					return m, push(NewLogViewModel())
				}
			}
		}
	}

	// Delegate to the component on the stack
	cmds = append(cmds, m.stack.Update(msg))

	// Spinner update
	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)
	cmds = append(cmds, spinnerCmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI based on the current model state
func (m *model) View() string {
	var s strings.Builder
	s.WriteString(m.stack.View())

	if t := m.toast.View(); t != "" {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(t))
	}

	status := lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
	if m.loading {
		s.WriteString(fmt.Sprintf("\n  %s %s", m.spinner.View(), status.Render(m.statusMessage)))
	} else if m.statusMessage != "" {
		s.WriteString(fmt.Sprintf("\n  %s", status.Render(m.statusMessage)))
	}

	return s.String()
}
