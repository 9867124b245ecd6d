package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	applog "github.com/portalcc/licensetui/internal/log"
	"github.com/portalcc/licensetui/internal/tui"
	"github.com/portalcc/licensetui/portal"
)

func runTUI(cfg tui.Config) error {
	m, err := tui.NewModel(cfg)
	if err != nil {
		return fmt.Errorf("error initializing model: %w", err)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Forward log records so the log view redraws while it is open.
	logs := make(chan tea.Msg, 64)
	done := make(chan struct{})
	applog.SetOutput(logs)
	defer func() {
		applog.SetOutput(nil)
		close(done)
	}()
	go func() {
		for {
			select {
			case msg := <-logs:
				p.Send(msg)
			case <-done:
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// listOptions are shared by the list subcommands.
type listOptions struct {
	JSON   bool
	Search string
	Sort   string
	Desc   bool
}

// sortState resolves a -sort flag against the sortable columns.
func sortState[R any](cols portal.Columns[R], opts listOptions) (portal.SortState, error) {
	state := portal.DefaultSort()
	if opts.Sort != "" {
		if _, ok := cols.Lookup(opts.Sort); !ok {
			return state, fmt.Errorf("unknown sort key %q (want one of %s): %w", opts.Sort, strings.Join(cols.Keys(), ", "), portal.ErrInvalidInput)
		}
		state.Key = opts.Sort
	}
	if opts.Desc {
		state.Direction = portal.Desc
	}
	return state, nil
}

type schoolJSON struct {
	No                int    `json:"no"`
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Licenses          int    `json:"licenses"`
	AllLicensesActive bool   `json:"allLicensesActive"`
}

func runSchools(ctx context.Context, w io.Writer, backend portal.Backend, opts listOptions) error {
	state, err := sortState(portal.SchoolColumns, opts)
	if err != nil {
		return err
	}
	schools, err := backend.ListSchools(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schools: %w", err)
	}
	rows := portal.SchoolColumns.Sort(portal.FilterSchools(portal.SchoolRows(schools), opts.Search), state)

	if opts.JSON {
		out := make([]schoolJSON, len(rows))
		for i, r := range rows {
			out[i] = schoolJSON{No: i + 1, ID: r.SchoolID, Name: r.Name, Email: r.Email, Licenses: r.LicenseCount, AllLicensesActive: r.AllLicensesActive}
		}
		return writeJSON(w, out)
	}

	for i, r := range rows {
		active := "inactive"
		if r.AllLicensesActive {
			active = "active"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", i+1, r.SchoolID, r.Name, r.Email, r.LicenseCount, active)
	}
	return nil
}

type licenseJSON struct {
	No         int    `json:"no"`
	ID         string `json:"id"`
	Status     string `json:"status"`
	ExpiryDate string `json:"expiryDate"`
	DeviceName string `json:"deviceName"`
}

func runLicenses(ctx context.Context, w io.Writer, backend portal.Backend, now time.Time, schoolID string, opts listOptions) error {
	state, err := sortState(portal.LicenseColumns, opts)
	if err != nil {
		return err
	}
	licenses, err := backend.ListLicenses(ctx, schoolID)
	if err != nil {
		return fmt.Errorf("failed to list licenses: %w", err)
	}
	rows := portal.LicenseColumns.Sort(portal.LicenseRows(licenses, now), state)

	if opts.JSON {
		out := make([]licenseJSON, len(rows))
		for i, r := range rows {
			out[i] = licenseJSON{No: i + 1, ID: r.LicenseID, Status: r.Status.String(), ExpiryDate: r.ExpiryDate.Format(time.DateOnly), DeviceName: r.DeviceName}
		}
		return writeJSON(w, out)
	}

	for i, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, r.LicenseID, r.Status, r.ExpiryDate.Format(time.DateOnly), r.DeviceName)
	}
	return nil
}

func runRenew(ctx context.Context, w io.Writer, backend portal.Backend, auth *portal.Authenticator, now time.Time, email, password, schoolID, licenseID string) error {
	session, err := auth.Login(email, password, now)
	if err != nil {
		return err
	}
	if err := session.Authorize(portal.ActionRenewLicense); err != nil {
		return err
	}

	licenses, err := backend.ListLicenses(ctx, schoolID)
	if err != nil {
		return fmt.Errorf("failed to list licenses: %w", err)
	}
	row, ok := portal.FindLicense(portal.LicenseRows(licenses, now), licenseID)
	if !ok {
		return fmt.Errorf("license %s: %w", licenseID, portal.ErrNotFound)
	}

	expiry := portal.RenewalDate(row.ExpiryDate, now)
	if err := backend.UpdateLicenseExpiry(ctx, schoolID, licenseID, expiry); err != nil {
		return fmt.Errorf("failed to renew license: %w", err)
	}
	fmt.Fprintf(w, "License %s renewed until %s\n", licenseID, expiry.Format(time.DateOnly))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
