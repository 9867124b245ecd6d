package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/portalcc/licensetui/portal"
)

// Color wraps a lipgloss.TerminalColor so it can be read from a theme file.
type Color struct {
	lipgloss.TerminalColor
}

// hex resolves c to a single hex string for the current background.
func (c Color) hex() string {
	switch tc := c.TerminalColor.(type) {
	case lipgloss.Color:
		return string(tc)
	case lipgloss.AdaptiveColor:
		if lipgloss.HasDarkBackground() {
			return tc.Dark
		}
		return tc.Light
	}
	return ""
}

func adaptive(light, dark string) Color {
	return Color{lipgloss.AdaptiveColor{Light: light, Dark: dark}}
}

// Theme contains the colors for the application.
type Theme struct {
	Primary  Color
	Subtle   Color
	Success  Color
	Warning  Color
	Error    Color
	Normal   Color
	Disabled Color
	Border   Color

	// ExpiryNear and ExpiryFar are the ends of the expiry date gradient.
	ExpiryNear Color
	ExpiryFar  Color
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:  adaptive("#5A56E0", "#D359E3"), // Purple/Pink
		Subtle:   adaptive("#9E9E9E", "#757575"), // Gray
		Success:  adaptive("#388E3C", "#81C784"), // Green
		Warning:  adaptive("#F57C00", "#FFB74D"), // Orange
		Error:    adaptive("#D32F2F", "#E57373"), // Red
		Normal:   adaptive("#212121", "#FFFFFF"), // Black/White
		Disabled: adaptive("#E0E0E0", "#424242"),
		Border:   adaptive("#BDBDBD", "#616161"),

		ExpiryNear: adaptive("#D05F00", "#BC3C00"),
		ExpiryFar:  adaptive("#00B300", "#00FF00"),
	}
}

// StatusColor is the color a license status is drawn in.
func (t Theme) StatusColor(s portal.Status) Color {
	switch s {
	case portal.StatusActive:
		return t.Success
	case portal.StatusProbation:
		return t.Warning
	case portal.StatusExpired:
		return t.Error
	}
	return t.Subtle
}

// FormatStatus renders a license status label.
func (t Theme) FormatStatus(s portal.Status) string {
	return lipgloss.NewStyle().Foreground(t.StatusColor(s)).Render(s.String())
}

// FormatActive renders the dot summarising whether all licenses of a school
// are active.
func (t Theme) FormatActive(allActive bool) string {
	if allActive {
		return lipgloss.NewStyle().Foreground(t.Success).Render("●")
	}
	return lipgloss.NewStyle().Foreground(t.Error).Render("●")
}

// expiryHorizon is the distance at which an expiry date is drawn fully in
// ExpiryFar.
const expiryHorizon = 365 * 24 * time.Hour

// FormatExpiry renders an expiry date, blending from ExpiryNear to ExpiryFar
// the further away it is from now.
func (t Theme) FormatExpiry(expiry, now time.Time) string {
	label := expiry.Format(time.DateOnly)

	start, err := colorful.Hex(t.ExpiryNear.hex())
	if err != nil {
		return lipgloss.NewStyle().Foreground(t.Normal).Render(label)
	}
	end, err := colorful.Hex(t.ExpiryFar.hex())
	if err != nil {
		return lipgloss.NewStyle().Foreground(t.Normal).Render(label)
	}

	p := float64(portal.Date(expiry).Sub(portal.Date(now))) / float64(expiryHorizon)
	p = min(max(p, 0), 1)
	blend := start.BlendRgb(end, p)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(blend.Hex())).Render(label)
}
