// Package porttable holds the rows shown by the port viewer and the header
// click sorting rules applied to them.
package porttable

import (
	"sort"
	"strconv"

	"github.com/0xa1bed0/deskutils/internal/ports"
)

type Column int

const (
	ColumnType Column = iota
	ColumnPort
	ColumnPID
	ColumnProcessName
)

// Columns lists every column in display order.
var Columns = []Column{ColumnType, ColumnPort, ColumnPID, ColumnProcessName}

func (c Column) Header() string {
	switch c {
	case ColumnType:
		return "Type"
	case ColumnPort:
		return "Port"
	case ColumnPID:
		return "PID"
	case ColumnProcessName:
		return "Process Name"
	}
	return ""
}

func (c Column) numeric() bool {
	return c == ColumnPort || c == ColumnPID
}

// ParseColumn maps a user supplied column name to a Column.
func ParseColumn(name string) (Column, bool) {
	switch name {
	case "type", "protocol":
		return ColumnType, true
	case "port":
		return ColumnPort, true
	case "pid":
		return ColumnPID, true
	case "name", "process":
		return ColumnProcessName, true
	}
	return 0, false
}

type SortMode int

const (
	// SortLexical compares every cell as text, so "10" sorts before "9".
	SortLexical SortMode = iota
	// SortNumeric compares Port and PID as integers.
	SortNumeric
)

// SortState describes the ordering currently applied to the rows.
type SortState struct {
	Column     Column
	Descending bool
	Active     bool
}

type row struct {
	cells []string
	seq   int // insertion order, used to break ties
}

// Table is the model behind the port viewer's table widget.
type Table struct {
	mode  SortMode
	rows  []row
	state SortState
}

func New(mode SortMode) *Table {
	return &Table{mode: mode}
}

func (t *Table) SetMode(mode SortMode) {
	t.mode = mode
	if t.state.Active {
		t.sort()
	}
}

// Replace drops every row and inserts records in the order given. Any
// previous sort is forgotten.
func (t *Table) Replace(records []ports.Record) {
	t.rows = make([]row, 0, len(records))
	for i, rec := range records {
		t.rows = append(t.rows, row{cells: rec.Cells(), seq: i})
	}
	t.state = SortState{}
}

// Click handles a click on col's header: the first click sorts ascending,
// each further click on the same header flips the direction, and clicking
// another header sorts ascending by that column.
func (t *Table) Click(col Column) SortState {
	if t.state.Active && t.state.Column == col {
		t.state.Descending = !t.state.Descending
	} else {
		t.state = SortState{Column: col, Active: true}
	}
	t.sort()
	return t.state
}

// SortBy applies an explicit ordering, as used by the non-interactive list.
func (t *Table) SortBy(col Column, descending bool) {
	t.state = SortState{Column: col, Descending: descending, Active: true}
	t.sort()
}

func (t *Table) SortState() SortState {
	return t.state
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the displayed cells in their current order.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r.cells...)
	}
	return out
}

func (t *Table) sort() {
	col := t.state.Column
	desc := t.state.Descending
	numeric := t.mode == SortNumeric && col.numeric()

	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		c := compareCells(a.cells[col], b.cells[col], numeric)
		if c == 0 {
			c = a.seq - b.seq
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareCells(a, b string, numeric bool) int {
	if numeric {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr == nil && berr == nil {
			return ai - bi
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
