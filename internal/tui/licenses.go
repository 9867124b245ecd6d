package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

type licensesKeyMap struct {
	Up, Down, PrevPage, NextPage key.Binding
	Sort, Order, PerPage         key.Binding
	Renew, Delete, Add, QR       key.Binding
	Refresh, Back, Help          key.Binding
}

func (k licensesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Renew, k.Delete, k.Add, k.QR, k.Sort, k.Back, k.Help}
}

func (k licensesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Sort, k.Order, k.PerPage, k.Refresh},
		{k.Renew, k.Delete, k.Add, k.QR},
		{k.Back, k.Help},
	}
}

var licensesKeys = licensesKeyMap{
	Up:       schoolsKeys.Up,
	Down:     schoolsKeys.Down,
	PrevPage: schoolsKeys.PrevPage,
	NextPage: schoolsKeys.NextPage,
	Sort:     key.NewBinding(key.WithKeys("s", "1", "2", "3", "4", "5"), key.WithHelp("s/1-5", "sort")),
	Order:    schoolsKeys.Order,
	PerPage:  schoolsKeys.PerPage,
	Renew:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "renew")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add more")),
	QR:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "qr code")),
	Refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Back:     key.NewBinding(key.WithKeys("esc", "q", "backspace"), key.WithHelp("esc", "back")),
	Help:     schoolsKeys.Help,
}

// licenseSortKeys is the order "s" cycles through; 1-5 pick a column.
var licenseSortKeys = []string{
	portal.KeyIndex,
	portal.KeyLicenseNo,
	portal.KeyStatus,
	portal.KeyExpiryDate,
	portal.KeyDeviceName,
}

var licenseColumns = []column{
	{title: "No.", key: portal.KeyIndex, width: 5},
	{title: "License No.", key: portal.KeyLicenseNo, width: 38},
	{title: "Status", key: portal.KeyStatus, width: 11},
	{title: "Expiry Date", key: portal.KeyExpiryDate, width: 13},
	{title: "Device Name", key: portal.KeyDeviceName, width: 22},
}

// LicensesModel lists the licenses of one school.
type LicensesModel struct {
	session  *portal.Session
	clock    portal.Clock
	schoolID string
	school   portal.School
	rows     []portal.LicenseRow
	loaded   bool
	sort     portal.SortState
	pager    pager
	cursor   int
	help     help.Model
	keys     licensesKeyMap
	confirm  *confirmation
}

func NewLicensesModel(session *portal.Session, clock portal.Clock, schoolID string) *LicensesModel {
	return &LicensesModel{
		session:  session,
		clock:    clock,
		schoolID: schoolID,
		sort:     portal.DefaultSort(),
		pager:    newPager(),
		help:     help.New(),
		keys:     licensesKeys,
	}
}

func (m *LicensesModel) Init() tea.Cmd {
	return nil
}

func (m *LicensesModel) page() []portal.LicenseRow {
	rows := portal.LicenseColumns.Sort(m.rows, m.sort)
	m.pager.setTotal(len(rows))
	start, end := m.pager.bounds()
	return rows[start:end]
}

func (m *LicensesModel) clampCursor() {
	n := len(m.page())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *LicensesModel) selected() (portal.LicenseRow, bool) {
	rows := m.page()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return portal.LicenseRow{}, false
	}
	return rows[m.cursor], true
}

func (m *LicensesModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case licensesLoadedMsg:
		if msg.school.ID != m.schoolID {
			return m, nil
		}
		m.school = msg.school
		m.rows = portal.LicenseRows(msg.licenses, m.clock())
		m.loaded = true
		m.clampCursor()
	case errorMsg:
		m.loaded = true
	case licenseRemovedMsg:
		if msg.schoolID == m.schoolID {
			m.rows = portal.RemoveLicense(m.rows, msg.licenseID)
			m.clampCursor()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *LicensesModel) handleKey(msg tea.KeyMsg) (Component, tea.Cmd) {
	if m.confirm != nil {
		finished, cmd := m.confirm.handle(msg)
		if finished {
			m.confirm = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, pop
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else if !m.pager.OnFirstPage() {
			m.pager.PrevPage()
			m.cursor = len(m.page()) - 1
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.page())-1 {
			m.cursor++
		} else if !m.pager.OnLastPage() {
			m.pager.NextPage()
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.pager.PrevPage()
		m.clampCursor()
	case key.Matches(msg, m.keys.NextPage):
		m.pager.NextPage()
		m.clampCursor()
	case key.Matches(msg, m.keys.Order):
		m.sort = m.sort.Toggle(m.sort.Key)
		m.cursor = 0
	case key.Matches(msg, m.keys.Sort):
		if i, err := strconv.Atoi(msg.String()); err == nil {
			m.sort = m.sort.Toggle(licenseSortKeys[i-1])
		} else {
			next := portal.KeyIndex
			for i, k := range licenseSortKeys {
				if k == m.sort.Key {
					next = licenseSortKeys[(i+1)%len(licenseSortKeys)]
					break
				}
			}
			m.sort = portal.SortState{Key: next, Direction: m.sort.Direction}
		}
		m.cursor = 0
	case key.Matches(msg, m.keys.PerPage):
		m.pager.cyclePerPage()
		m.cursor = 0
	case key.Matches(msg, m.keys.Refresh):
		return m, send(loadLicensesMsg{schoolID: m.schoolID})
	case key.Matches(msg, m.keys.Renew):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.session.Authorize(portal.ActionRenewLicense); err != nil {
			return m, toastError(err.Error())
		}
		expiry := portal.RenewalDate(row.ExpiryDate, m.clock())
		m.confirm = &confirmation{
			question: "Are you sure you want to renew this license?",
			onYes:    send(renewLicenseMsg{schoolID: m.schoolID, licenseID: row.LicenseID, expiry: expiry}),
		}
	case key.Matches(msg, m.keys.Delete):
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.session.Authorize(portal.ActionDeleteLicense); err != nil {
			return m, toastError(err.Error())
		}
		m.confirm = &confirmation{
			question: "Are you sure you want to delete this license?",
			onYes:    send(deleteLicenseMsg{schoolID: m.schoolID, licenseID: row.LicenseID}),
		}
	case key.Matches(msg, m.keys.Add):
		return m, push(NewAddLicensesModel(m.schoolID))
	case key.Matches(msg, m.keys.QR):
		if row, ok := m.selected(); ok {
			return m, push(NewQRCodeModel(row.LicenseID))
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *LicensesModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("Licenses Details"))
	s.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Width(8)
	s.WriteString(label.Render("School"))
	s.WriteString(m.school.Name)
	s.WriteString("\n")
	s.WriteString(label.Render("Email"))
	s.WriteString(m.school.Email)
	s.WriteString("\n\n")

	if !m.loaded {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Loading..."))
		return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
	}

	now := m.clock()
	page := m.page()
	cells := make([][]string, len(page))
	for i, r := range page {
		cells[i] = []string{
			strconv.Itoa(m.pager.rowNumber(i)),
			r.LicenseID,
			CurrentTheme.FormatStatus(r.Status),
			CurrentTheme.FormatExpiry(r.ExpiryDate, now),
			r.DeviceName,
		}
	}
	s.WriteString(renderTable(licenseColumns, cells, m.cursor, m.sort, "No Licenses!"))
	s.WriteString("\n")
	s.WriteString(m.pager.View())

	if m.session.IsAdmin() && len(page) > 0 {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Actions: r renew • d delete"))
	}

	if m.confirm != nil {
		s.WriteString("\n\n")
		s.WriteString(m.confirm.View())
	}

	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *LicensesModel) IsConsumingInput() bool {
	return false
}
