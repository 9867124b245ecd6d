package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portalcc/licensetui/portal"
)

// Component is the interface for a TUI view on the stack.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string
	// IsConsumingInput reports whether keys should go to a text input
	// instead of global shortcuts.
	IsConsumingInput() bool
}

// Leavable is implemented by components that need to clean up when they are
// removed from the stack.
type Leavable interface {
	OnLeave() tea.Cmd
}

// Coverable is implemented by components that pause background work while
// another view is on top of them.
type Coverable interface {
	OnCover()
	OnUncover()
}

// Bubbletea messages are used to communicate between the main loop and commands
type (
	// Navigation
	popViewMsg  struct{}
	pushViewMsg struct{ c Component }
	homeMsg     struct{}
	logoutMsg   struct{}

	// Session
	loginMsg struct {
		email    string
		password string
	}
	loggedInMsg    struct{ session *portal.Session }
	loginFailedMsg struct{ err error }

	// Requests to the main model
	loadSchoolsMsg  struct{}
	loadLicensesMsg struct{ schoolID string }
	openLicensesMsg struct{ schoolID string }
	createSchoolMsg struct {
		school portal.NewSchool
		form   Component
	}
	deleteSchoolMsg struct {
		schoolID string
		name     string
	}
	renewLicenseMsg struct {
		schoolID  string
		licenseID string
		expiry    time.Time
	}
	deleteLicenseMsg struct {
		schoolID  string
		licenseID string
	}
	addLicensesMsg struct {
		schoolID string
		count    int
		form     Component
	}

	// From backend
	schoolsLoadedMsg  []portal.School
	licensesLoadedMsg struct {
		school   portal.School
		licenses []portal.License
	}
	// errorMsg reports a failed fetch.
	errorMsg struct {
		action string
		err    error
	}
	mutationDoneMsg struct {
		toast string
		// form started the mutation and is closed if it is still open.
		form Component
		// notify is delivered to the top view before the refresh.
		notify tea.Msg
		// refresh is requested once the toast is shown.
		refresh tea.Msg
	}
	mutationFailedMsg struct {
		action string
		err    error
	}

	// Local view updates
	licenseRemovedMsg struct {
		schoolID  string
		licenseID string
	}

	// Notifications
	toastMsg struct {
		text     string
		severity severity
	}
	toastExpiredMsg struct{ id int }
)

func pop() tea.Msg { return popViewMsg{} }

func push(c Component) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{c: c} }
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func toastError(text string) tea.Cmd {
	return send(toastMsg{text: text, severity: severityError})
}

// --- Commands that interact with the backend ---

// api runs fn with a fresh deadline for every request.
type api struct {
	backend portal.Backend
	timeout time.Duration
}

func (a api) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (a api) fetchSchools() tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		schools, err := a.backend.ListSchools(ctx)
		if err != nil {
			return errorMsg{action: "load schools", err: err}
		}
		return schoolsLoadedMsg(schools)
	})
}

func (a api) fetchLicenses(schoolID string) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		school, err := a.backend.GetSchool(ctx, schoolID)
		if err != nil {
			return errorMsg{action: "load school", err: err}
		}
		licenses, err := a.backend.ListLicenses(ctx, schoolID)
		if err != nil {
			return errorMsg{action: "load licenses", err: err}
		}
		return licensesLoadedMsg{school: school, licenses: licenses}
	})
}

func (a api) createSchool(s portal.NewSchool, form Component) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		if err := a.backend.CreateSchool(ctx, s); err != nil {
			return mutationFailedMsg{action: "create school", err: err}
		}
		return mutationDoneMsg{
			toast:   fmt.Sprintf("Created %s", s.Name),
			form:    form,
			refresh: loadSchoolsMsg{},
		}
	})
}

func (a api) deleteSchool(schoolID, name string) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		if err := a.backend.DeleteSchool(ctx, schoolID); err != nil {
			return mutationFailedMsg{action: "delete school", err: err}
		}
		return mutationDoneMsg{
			toast:   fmt.Sprintf("Deleted %s", name),
			refresh: loadSchoolsMsg{},
		}
	})
}

func (a api) renewLicense(schoolID, licenseID string, expiry time.Time) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		if err := a.backend.UpdateLicenseExpiry(ctx, schoolID, licenseID, expiry); err != nil {
			return mutationFailedMsg{action: "renew license", err: err}
		}
		return mutationDoneMsg{
			toast:   fmt.Sprintf("License renewed until %s", expiry.Format(time.DateOnly)),
			refresh: loadLicensesMsg{schoolID: schoolID},
		}
	})
}

func (a api) deleteLicense(schoolID, licenseID string) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		if err := a.backend.DeleteLicense(ctx, schoolID, licenseID); err != nil {
			return mutationFailedMsg{action: "delete license", err: err}
		}
		return mutationDoneMsg{
			toast:   "License deleted",
			notify:  licenseRemovedMsg{schoolID: schoolID, licenseID: licenseID},
			refresh: loadLicensesMsg{schoolID: schoolID},
		}
	})
}

func (a api) addLicenses(schoolID string, count int, form Component) tea.Cmd {
	return a.call(func(ctx context.Context) tea.Msg {
		if err := a.backend.AddLicenses(ctx, schoolID, count); err != nil {
			return mutationFailedMsg{action: "add licenses", err: err}
		}
		return mutationDoneMsg{
			toast:   fmt.Sprintf("Added %d licenses", count),
			form:    form,
			refresh: loadLicensesMsg{schoolID: schoolID},
		}
	})
}

func login(auth *portal.Authenticator, clock portal.Clock, email, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := auth.Login(email, password, clock())
		if err != nil {
			return loginFailedMsg{err}
		}
		return loggedInMsg{session}
	}
}
