package portal

import (
	"cmp"
	"sort"
	"time"
)

// Direction is the order of a sorted column.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Column is a sortable column over rows of type R.
type Column[R any] struct {
	Key     string
	Compare func(a, b R) int
}

// By returns a column ordered by an ordered field: numbers numerically,
// strings lexicographically.
func By[R any, K cmp.Ordered](key string, field func(R) K) Column[R] {
	return Column[R]{
		Key: key,
		Compare: func(a, b R) int {
			return cmp.Compare(field(a), field(b))
		},
	}
}

// ByTime returns a column ordered chronologically.
func ByTime[R any](key string, field func(R) time.Time) Column[R] {
	return Column[R]{
		Key: key,
		Compare: func(a, b R) int {
			return field(a).Compare(field(b))
		},
	}
}

// ByBool returns a column where false sorts before true.
func ByBool[R any](key string, field func(R) bool) Column[R] {
	return Column[R]{
		Key: key,
		Compare: func(a, b R) int {
			x, y := field(a), field(b)
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		},
	}
}

// Columns is the set of sortable columns of a view.
type Columns[R any] []Column[R]

// Lookup finds the column with the given key.
func (c Columns[R]) Lookup(key string) (Column[R], bool) {
	for _, col := range c {
		if col.Key == key {
			return col, true
		}
	}
	return Column[R]{}, false
}

// Keys returns the column keys in declaration order.
func (c Columns[R]) Keys() []string {
	keys := make([]string, len(c))
	for i, col := range c {
		keys[i] = col.Key
	}
	return keys
}

// Sort orders rows by the column named in state. An unknown key leaves the
// rows in input order. The input slice is never modified.
func (c Columns[R]) Sort(rows []R, state SortState) []R {
	col, ok := c.Lookup(state.Key)
	if !ok {
		out := make([]R, len(rows))
		copy(out, rows)
		return out
	}
	return SortRows(rows, col, state.Direction)
}

// SortRows returns a new slice with rows ordered by col in the given
// direction. Rows that compare equal keep their input order in both
// directions: every row is decorated with its original index, and the index
// breaks ties after the direction has been applied, so the result does not
// depend on the stability of the sort primitive.
func SortRows[R any](rows []R, col Column[R], dir Direction) []R {
	type indexed struct {
		row   R
		index int
	}
	decorated := make([]indexed, len(rows))
	for i, r := range rows {
		decorated[i] = indexed{row: r, index: i}
	}

	sort.Slice(decorated, func(i, j int) bool {
		order := col.Compare(decorated[i].row, decorated[j].row)
		if dir == Desc {
			order = -order
		}
		if order != 0 {
			return order < 0
		}
		return decorated[i].index < decorated[j].index
	})

	out := make([]R, len(decorated))
	for i, d := range decorated {
		out[i] = d.row
	}
	return out
}

// SortState is the sort selection of a list view.
type SortState struct {
	Key       string
	Direction Direction
}

// DefaultSort orders rows the way the API returned them.
func DefaultSort() SortState {
	return SortState{Key: KeyIndex, Direction: Asc}
}

// Toggle selects key. Selecting the active key flips the direction, a new
// key starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key {
		if s.Direction == Asc {
			return SortState{Key: key, Direction: Desc}
		}
		return SortState{Key: key, Direction: Asc}
	}
	return SortState{Key: key, Direction: Asc}
}
