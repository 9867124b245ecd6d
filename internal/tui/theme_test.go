package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

func TestLoadTheme(t *testing.T) {
	tomlData := `
		Primary = "#FF0000"
		Subtle = ["#00FF00", "#00EE00"]
		ExpiryNear = "#FFA500"
	`

	loadedTheme, err := LoadTheme(strings.NewReader(tomlData))
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}

	expectedColor := Color{lipgloss.Color("#FF0000")}
	if loadedTheme.Primary != expectedColor {
		t.Errorf("Expected Primary color to be %v, but got %v", expectedColor, loadedTheme.Primary)
	}

	adaptiveColor, ok := loadedTheme.Subtle.TerminalColor.(lipgloss.AdaptiveColor)
	if !ok {
		t.Fatalf("Expected Subtle color to be an AdaptiveColor, but it's not")
	}
	if adaptiveColor.Light != "#00FF00" || adaptiveColor.Dark != "#00EE00" {
		t.Errorf("unexpected Subtle color %+v", adaptiveColor)
	}

	if loadedTheme.ExpiryNear.hex() != "#FFA500" {
		t.Errorf("Expected ExpiryNear to be #FFA500, got %s", loadedTheme.ExpiryNear.hex())
	}
	if loadedTheme.Error != NewDefaultTheme().Error {
		t.Errorf("Missing keys should keep their default")
	}
}

func TestLoadTheme_Invalid(t *testing.T) {
	if _, err := LoadTheme(nil); err == nil {
		t.Error("LoadTheme(nil) should have returned an error")
	}
	for _, data := range []string{
		`Primary = `,
		`Primary = ["#000000"]`,
		`Primary = [1, 2]`,
		`Primary = 5`,
	} {
		if _, err := LoadTheme(strings.NewReader(data)); err == nil {
			t.Errorf("LoadTheme(%q) should have failed", data)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	theme := NewDefaultTheme()
	theme.ExpiryNear = Color{lipgloss.Color("#FF0000")}
	theme.ExpiryFar = Color{lipgloss.Color("#00FF00")}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, expiry := range []time.Time{
		now.AddDate(-1, 0, 0),
		now,
		now.AddDate(0, 6, 0),
		now.AddDate(3, 0, 0),
	} {
		got := theme.FormatExpiry(expiry, now)
		if !strings.Contains(got, expiry.Format(time.DateOnly)) {
			t.Errorf("FormatExpiry(%s) = %q, want the date in it", expiry.Format(time.DateOnly), got)
		}
	}

	theme.ExpiryNear = Color{lipgloss.Color("not a color")}
	if got := theme.FormatExpiry(now, now); !strings.Contains(got, "2024-01-01") {
		t.Errorf("invalid gradient colors should still render the date, got %q", got)
	}
}

func TestStatusColor(t *testing.T) {
	theme := NewDefaultTheme()
	tests := map[portal.Status]Color{
		portal.StatusActive:    theme.Success,
		portal.StatusNotActive: theme.Subtle,
		portal.StatusProbation: theme.Warning,
		portal.StatusExpired:   theme.Error,
	}
	for status, want := range tests {
		if got := theme.StatusColor(status); got != want {
			t.Errorf("StatusColor(%s) = %v, want %v", status, got, want)
		}
		if got := theme.FormatStatus(status); !strings.Contains(got, status.String()) {
			t.Errorf("FormatStatus(%s) = %q", status, got)
		}
	}
}
