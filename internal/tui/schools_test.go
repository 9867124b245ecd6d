package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/portalcc/licensetui/portal"
)

func loadedSchools(n int) *SchoolsModel {
	schools := make([]portal.School, n)
	for i := range schools {
		schools[i] = portal.School{
			ID:           fmt.Sprintf("id-%02d", i+1),
			Name:         fmt.Sprintf("School %02d", n-i),
			Email:        fmt.Sprintf("office%02d@example.edu", i+1),
			LicenseCount: i % 3,
		}
	}
	m := NewSchoolsModel()
	m.Update(schoolsLoadedMsg(schools))
	return m
}

func pressKeys(c Component, keys ...string) (Component, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, k := range keys {
		var cmd tea.Cmd
		c, cmd = c.Update(keyMsg(k))
		cmds = append(cmds, cmd)
	}
	return c, cmds
}

func pageNames(m *SchoolsModel) []string {
	var names []string
	for _, r := range m.page() {
		names = append(names, r.Name)
	}
	return names
}

func TestSchoolsModel_LoadingAndEmpty(t *testing.T) {
	m := NewSchoolsModel()
	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("expected a loading state in\n%s", m.View())
	}
	m.Update(schoolsLoadedMsg(nil))
	if !strings.Contains(m.View(), "No data") {
		t.Errorf("expected an empty state in\n%s", m.View())
	}
}

func TestSchoolsModel_Search(t *testing.T) {
	m := loadedSchools(12)

	pressKeys(m, "/")
	if !m.IsConsumingInput() {
		t.Fatal("expected search to take input")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("OFFICE03")})
	if got := pageNames(m); len(got) != 1 || got[0] != "School 10" {
		t.Errorf("expected only School 10, got %v", got)
	}

	pressKeys(m, "esc")
	if m.IsConsumingInput() || m.search.Value() != "" {
		t.Error("expected esc to clear and leave the search")
	}
	if n := len(m.page()); n != 10 {
		t.Errorf("expected a full first page, got %d rows", n)
	}
}

func TestSchoolsModel_SearchResetsPage(t *testing.T) {
	m := loadedSchools(12)
	pressKeys(m, "right")
	if m.pager.Page != 1 {
		t.Fatalf("expected page 2, got %d", m.pager.Page+1)
	}
	pressKeys(m, "/")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("school")})
	if m.pager.Page != 0 || m.cursor != 0 {
		t.Errorf("expected search to reset to the first row, got page %d cursor %d", m.pager.Page, m.cursor)
	}
}

func TestSchoolsModel_Sort(t *testing.T) {
	m := loadedSchools(3)
	if got := pageNames(m); strings.Join(got, ",") != "School 03,School 02,School 01" {
		t.Fatalf("expected fetch order, got %v", got)
	}

	// 1 sorts by name ascending, pressing it again flips to descending.
	pressKeys(m, "1")
	if got := pageNames(m); strings.Join(got, ",") != "School 01,School 02,School 03" {
		t.Errorf("expected name ascending, got %v", got)
	}
	pressKeys(m, "1")
	if got := pageNames(m); strings.Join(got, ",") != "School 03,School 02,School 01" {
		t.Errorf("expected name descending, got %v", got)
	}
	if m.sort.Direction != portal.Desc {
		t.Errorf("expected descending, got %v", m.sort.Direction)
	}

	// s cycles to the next column and keeps the direction.
	pressKeys(m, "s")
	if m.sort.Key != portal.KeyEmail || m.sort.Direction != portal.Desc {
		t.Errorf("expected email descending, got %+v", m.sort)
	}
	if !strings.Contains(m.View(), "Email ▼") {
		t.Errorf("expected a descending marker on Email in\n%s", m.View())
	}
}

func TestSchoolsModel_Pager(t *testing.T) {
	m := loadedSchools(27)
	if n := len(m.page()); n != 10 {
		t.Fatalf("expected 10 rows, got %d", n)
	}
	if !strings.Contains(m.View(), "1–10 of 27") {
		t.Errorf("expected the row range in\n%s", m.View())
	}

	pressKeys(m, "right", "right")
	if n := len(m.page()); n != 7 {
		t.Errorf("expected 7 rows on the last page, got %d", n)
	}
	if got := m.pager.rowNumber(0); got != 21 {
		t.Errorf("expected the last page to start at No. 21, got %d", got)
	}

	pressKeys(m, "+")
	if m.pager.PerPage != 25 || m.pager.Page != 0 {
		t.Errorf("expected 25 per page on the first page, got %d on page %d", m.pager.PerPage, m.pager.Page)
	}

	// Moving down past the last row turns the page.
	for range 25 {
		pressKeys(m, "down")
	}
	if m.pager.Page != 1 || m.cursor != 0 {
		t.Errorf("expected page 2 row 1, got page %d row %d", m.pager.Page+1, m.cursor+1)
	}
}

func TestSchoolsModel_Menu(t *testing.T) {
	m := loadedSchools(3)

	pressKeys(m, "down", "enter")
	if m.openRowID != "id-02" {
		t.Fatalf("expected the menu for id-02, got %q", m.openRowID)
	}
	if !strings.Contains(m.View(), "[ Licenses ]") {
		t.Errorf("expected the menu in\n%s", m.View())
	}

	_, cmds := pressKeys(m, "enter")
	if m.openRowID != "" {
		t.Error("expected choosing an item to close the menu")
	}
	msg := cmds[0]()
	if got, ok := msg.(openLicensesMsg); !ok || got.schoolID != "id-02" {
		t.Errorf("expected openLicensesMsg for id-02, got %#v", msg)
	}
}

func TestSchoolsModel_MenuClosesWhenRowDisappears(t *testing.T) {
	m := loadedSchools(3)
	pressKeys(m, "enter")
	m.Update(schoolsLoadedMsg([]portal.School{{ID: "other", Name: "Other"}}))
	if m.openRowID != "" {
		t.Errorf("expected the menu to close, got %q", m.openRowID)
	}
}

func TestSchoolsModel_DeleteNeedsConfirmation(t *testing.T) {
	m := loadedSchools(3)
	_, cmds := pressKeys(m, "enter", "right", "enter")
	for _, cmd := range cmds {
		if cmd != nil {
			t.Fatal("expected no command before confirming")
		}
	}
	_, cmds = pressKeys(m, "y")
	msg := cmds[0]()
	if got, ok := msg.(deleteSchoolMsg); !ok || got.schoolID != "id-01" || got.name != "School 03" {
		t.Errorf("expected deleteSchoolMsg for id-01, got %#v", msg)
	}
}

func TestSchoolsModel_AutoRefresh(t *testing.T) {
	m := loadedSchools(1)
	_, cmds := pressKeys(m, "R")
	if cmds[0] == nil || !m.refresh.Enabled() {
		t.Fatal("expected auto refresh to start")
	}
	if !strings.Contains(m.View(), "auto refresh every 30s") {
		t.Errorf("expected the auto refresh note in\n%s", m.View())
	}
	m.OnLeave()
	if m.refresh.Enabled() {
		t.Error("expected leaving the list to stop auto refresh")
	}
}
