package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"

	"github.com/portalcc/licensetui/portal"
)

// column describes one table column. Cells are rendered by the view, so they
// may already carry colors.
type column struct {
	title string
	// key is the sort key; empty for columns that do not sort.
	key   string
	width int
}

func headerCell(c column, sort portal.SortState) string {
	title := c.title
	if c.key != "" && c.key == sort.Key {
		if sort.Direction == portal.Desc {
			title += " ▼"
		} else {
			title += " ▲"
		}
	}
	return cell(c.width).Bold(true).Foreground(CurrentTheme.Primary).Render(title)
}

func cell(width int) lipgloss.Style {
	return lipgloss.NewStyle().Inline(true).Width(width).MaxWidth(width)
}

// renderTable draws a bordered table. selected is the index of the
// highlighted row in rows, or -1.
func renderTable(cols []column, rows [][]string, selected int, sort portal.SortState, empty string) string {
	var s strings.Builder

	s.WriteString("  ")
	for i, c := range cols {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(headerCell(c, sort))
	}

	if len(rows) == 0 {
		s.WriteString("\n\n")
		total := 2
		for _, c := range cols {
			total += c.width + 1
		}
		s.WriteString(lipgloss.NewStyle().Width(total).Align(lipgloss.Center).Foreground(CurrentTheme.Subtle).Render(empty))
		s.WriteString("\n")
	}

	for r, row := range rows {
		s.WriteString("\n")
		if r == selected {
			s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render("▶ "))
		} else {
			s.WriteString("  ")
		}
		for i, c := range cols {
			if i > 0 {
				s.WriteString(" ")
			}
			var v string
			if i < len(row) {
				v = row[i]
			}
			style := cell(c.width)
			if r == selected {
				style = style.Bold(true)
			}
			s.WriteString(style.Render(v))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(CurrentTheme.Border).
		Render(s.String())
}

// perPageOptions are the selectable page sizes.
var perPageOptions = []int{10, 25, 50}

// pager pages through a sorted, filtered row set.
type pager struct {
	paginator.Model
	option int
	total  int
}

func newPager() pager {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = perPageOptions[0]
	return pager{Model: p}
}

// setTotal updates the row count, keeping the page in range.
func (p *pager) setTotal(n int) {
	p.total = n
	if n == 0 {
		p.TotalPages = 1
	} else {
		p.SetTotalPages(n)
	}
	if p.Page >= p.TotalPages {
		p.Page = p.TotalPages - 1
	}
}

// cyclePerPage switches to the next page size and returns to the first page.
func (p *pager) cyclePerPage() {
	p.option = (p.option + 1) % len(perPageOptions)
	p.PerPage = perPageOptions[p.option]
	p.Page = 0
	p.setTotal(p.total)
}

// bounds are the slice bounds of the current page.
func (p *pager) bounds() (start, end int) {
	return p.GetSliceBounds(p.total)
}

func (p pager) View() string {
	start, end := p.GetSliceBounds(p.total)
	label := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	var s strings.Builder
	s.WriteString(label.Render(fmt.Sprintf("Rows per page: %d", p.PerPage)))
	s.WriteString("   ")
	if p.total == 0 {
		s.WriteString(label.Render("0 of 0"))
	} else {
		s.WriteString(label.Render(fmt.Sprintf("%d–%d of %d", start+1, end, p.total)))
	}
	s.WriteString("   ")
	s.WriteString(label.Render("page " + p.Model.View()))
	return s.String()
}

// rowNumber is the on-screen "No." of the i-th row of the current page.
func (p pager) rowNumber(i int) int {
	return p.Page*p.PerPage + i + 1
}
