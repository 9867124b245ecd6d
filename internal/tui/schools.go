package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

type schoolsKeyMap struct {
	Up, Down, PrevPage, NextPage key.Binding
	Search, Sort, Order, PerPage key.Binding
	Open, New, Refresh, Auto     key.Binding
	Profile, Logs, Help, Quit    key.Binding
}

func (k schoolsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.Sort, k.New, k.Help, k.Quit}
}

func (k schoolsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Search, k.Sort, k.Order, k.PerPage},
		{k.Open, k.New, k.Refresh, k.Auto},
		{k.Profile, k.Logs, k.Help, k.Quit},
	}
}

var schoolsKeys = schoolsKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Sort:     key.NewBinding(key.WithKeys("s", "1", "2", "3", "4"), key.WithHelp("s/1-4", "sort")),
	Order:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "flip order")),
	PerPage:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "rows per page")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new account")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Auto:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "auto refresh")),
	Profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
	Logs:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logs")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// schoolSortKeys is the order "s" cycles through; 1-4 pick the data columns.
var schoolSortKeys = []string{
	portal.KeyIndex,
	portal.KeyName,
	portal.KeyEmail,
	portal.KeyLicenses,
	portal.KeyAllLicensesActive,
}

var schoolColumns = []column{
	{title: "No.", width: 5},
	{title: "Name", key: portal.KeyName, width: 28},
	{title: "Email", key: portal.KeyEmail, width: 30},
	{title: "No. of Licenses", key: portal.KeyLicenses, width: 17},
	{title: "Active", key: portal.KeyAllLicensesActive, width: 8},
}

var schoolMenu = []string{"Licenses", "Delete"}

// SchoolsModel is the searchable, sortable, paged list of schools.
type SchoolsModel struct {
	rows     []portal.SchoolRow
	loaded   bool
	sort     portal.SortState
	search   textinput.Model
	pager    pager
	cursor   int
	help     help.Model
	keys     schoolsKeyMap
	refresh  *RefreshSchedule
	confirm  *confirmation
	autoNote string

	// openRowID is the school whose action menu is open, if any.
	openRowID string
	menuIndex int
}

func NewSchoolsModel() *SchoolsModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or email"
	search.CharLimit = 128

	return &SchoolsModel{
		sort:    portal.DefaultSort(),
		search:  search,
		pager:   newPager(),
		help:    help.New(),
		keys:    schoolsKeys,
		refresh: NewRefreshSchedule(func() tea.Msg { return loadSchoolsMsg{} }),
	}
}

func (m *SchoolsModel) Init() tea.Cmd {
	return nil
}

// OnLeave stops auto refresh when the list is torn down.
func (m *SchoolsModel) OnLeave() tea.Cmd {
	return m.refresh.SetSchedule(RefreshOff)
}

// OnCover pauses auto refresh while another view is on top of the list.
func (m *SchoolsModel) OnCover() {
	m.refresh.Pause()
}

func (m *SchoolsModel) OnUncover() {
	m.refresh.Resume()
}

// visible is the filtered and sorted row set.
func (m *SchoolsModel) visible() []portal.SchoolRow {
	return portal.SchoolColumns.Sort(portal.FilterSchools(m.rows, m.search.Value()), m.sort)
}

// page returns the rows of the current page.
func (m *SchoolsModel) page() []portal.SchoolRow {
	rows := m.visible()
	m.pager.setTotal(len(rows))
	start, end := m.pager.bounds()
	return rows[start:end]
}

func (m *SchoolsModel) clampCursor() {
	n := len(m.page())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *SchoolsModel) selected() (portal.SchoolRow, bool) {
	rows := m.page()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return portal.SchoolRow{}, false
	}
	return rows[m.cursor], true
}

func (m *SchoolsModel) openRow() (portal.SchoolRow, bool) {
	for _, r := range m.rows {
		if r.SchoolID == m.openRowID {
			return r, true
		}
	}
	return portal.SchoolRow{}, false
}

func (m *SchoolsModel) setSort(s portal.SortState) {
	m.sort = s
	m.cursor = 0
	m.openRowID = ""
}

func (m *SchoolsModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case schoolsLoadedMsg:
		m.rows = portal.SchoolRows(msg)
		m.loaded = true
		if _, ok := m.openRow(); !ok {
			m.openRowID = ""
		}
		m.clampCursor()
		return m, nil
	case errorMsg:
		m.loaded = true
		return m, nil
	case refreshTickMsg:
		return m, m.refresh.Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SchoolsModel) handleKey(msg tea.KeyMsg) (Component, tea.Cmd) {
	if m.confirm != nil {
		finished, cmd := m.confirm.handle(msg)
		if finished {
			m.confirm = nil
		}
		return m, cmd
	}

	if m.search.Focused() {
		switch msg.String() {
		case "enter", "tab":
			m.search.Blur()
			return m, nil
		case "esc":
			m.search.Blur()
			m.search.SetValue("")
			m.pager.Page = 0
			m.cursor = 0
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.pager.Page = 0
			m.cursor = 0
			m.openRowID = ""
		}
		return m, cmd
	}

	if m.openRowID != "" {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
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
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Order):
		m.setSort(m.sort.Toggle(m.sort.Key))
	case key.Matches(msg, m.keys.Sort):
		if i, err := strconv.Atoi(msg.String()); err == nil {
			m.setSort(m.sort.Toggle(schoolSortKeys[i]))
			break
		}
		next := portal.KeyIndex
		for i, k := range schoolSortKeys {
			if k == m.sort.Key {
				next = schoolSortKeys[(i+1)%len(schoolSortKeys)]
				break
			}
		}
		m.setSort(portal.SortState{Key: next, Direction: m.sort.Direction})
	case key.Matches(msg, m.keys.PerPage):
		m.pager.cyclePerPage()
		m.cursor = 0
	case key.Matches(msg, m.keys.Open):
		if row, ok := m.selected(); ok {
			m.openRowID = row.SchoolID
			m.menuIndex = 0
		}
	case key.Matches(msg, m.keys.New):
		return m, push(NewSchoolFormModel())
	case key.Matches(msg, m.keys.Refresh):
		return m, send(loadSchoolsMsg{})
	case key.Matches(msg, m.keys.Auto):
		enabled, cmd := m.refresh.Toggle()
		m.autoNote = "auto refresh off"
		if enabled {
			m.autoNote = fmt.Sprintf("auto refresh every %s", RefreshInterval)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.String() == "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.pager.Page = 0
			m.cursor = 0
		}
	}
	return m, nil
}

func (m *SchoolsModel) handleMenuKey(msg tea.KeyMsg) (Component, tea.Cmd) {
	row, ok := m.openRow()
	if !ok {
		m.openRowID = ""
		return m, nil
	}
	switch msg.String() {
	case "esc", "q":
		m.openRowID = ""
	case "left", "h", "up", "k", "shift+tab":
		m.menuIndex = (m.menuIndex - 1 + len(schoolMenu)) % len(schoolMenu)
	case "right", "l", "down", "j", "tab":
		m.menuIndex = (m.menuIndex + 1) % len(schoolMenu)
	case "enter", " ":
		m.openRowID = ""
		switch schoolMenu[m.menuIndex] {
		case "Licenses":
			return m, send(openLicensesMsg{schoolID: row.SchoolID})
		case "Delete":
			m.confirm = &confirmation{
				question: "Are you sure you want to delete this school?",
				onYes:    send(deleteSchoolMsg{schoolID: row.SchoolID, name: row.Name}),
			}
		}
	}
	return m, nil
}

func (m *SchoolsModel) View() string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("School Fitness Test"))
	s.WriteString("\n\n")
	s.WriteString(m.search.View())
	s.WriteString("\n")

	if !m.loaded {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("Loading..."))
		return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
	}

	page := m.page()
	cells := make([][]string, len(page))
	for i, r := range page {
		cells[i] = []string{
			strconv.Itoa(m.pager.rowNumber(i)),
			r.Name,
			r.Email,
			strconv.Itoa(r.LicenseCount),
			CurrentTheme.FormatActive(r.AllLicensesActive),
		}
	}
	selected := m.cursor
	if m.search.Focused() {
		selected = -1
	}
	s.WriteString(renderTable(schoolColumns, cells, selected, m.sort, "No data"))
	s.WriteString("\n")
	s.WriteString(m.pager.View())
	if m.autoNote != "" {
		s.WriteString("   ")
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render(m.autoNote))
	}

	if row, ok := m.openRow(); ok {
		var menu strings.Builder
		menu.WriteString(row.Name)
		menu.WriteString("\n\n")
		for i, item := range schoolMenu {
			style := blurredStyle()
			if i == m.menuIndex {
				style = focusedStyle()
			}
			menu.WriteString(style.Render("[ " + item + " ]"))
			menu.WriteString("  ")
		}
		s.WriteString("\n\n")
		s.WriteString(lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(CurrentTheme.Primary).Padding(0, 2).Render(menu.String()))
	}

	if m.confirm != nil {
		s.WriteString("\n\n")
		s.WriteString(m.confirm.View())
	}

	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Margin(1, 2).Render(s.String())
}

func (m *SchoolsModel) IsConsumingInput() bool {
	return m.search.Focused()
}
