package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	qrcode "github.com/skip2/go-qrcode"
)

// licenseURI is what a device scans to claim a license.
func licenseURI(licenseID string) string {
	return "license:" + licenseID
}

// GenerateLicenseQRCode renders a terminal-friendly QR code for a license id.
func GenerateLicenseQRCode(licenseID string) (string, error) {
	q, err := qrcode.New(licenseURI(licenseID), qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}

// QRCodeModel shows a license id as a QR code for on-device activation.
type QRCodeModel struct {
	licenseID string
	code      string
	err       error
}

func NewQRCodeModel(licenseID string) *QRCodeModel {
	code, err := GenerateLicenseQRCode(licenseID)
	return &QRCodeModel{licenseID: licenseID, code: code, err: err}
}

func (m *QRCodeModel) Init() tea.Cmd { return nil }

func (m *QRCodeModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, pop
	}
	return m, nil
}

func (m *QRCodeModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("License " + m.licenseID))
	s.WriteString("\n\n")
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render("Cannot render QR code: " + m.err.Error()))
	} else {
		s.WriteString(m.code)
	}
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Scan on the device to activate. Press any key to return."))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *QRCodeModel) IsConsumingInput() bool {
	return false
}
