package ui

import (
	"io"
	"strings"
	"unicode/utf8"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

type TruncateMode int

const (
	TruncateNone   TruncateMode = iota
	TruncateEnd                 // "hello wo…"
	TruncateMiddle              // "hel…rld"
	TruncateStart               // "…o world"
)

// Column configures a column in the table.
type Column struct {
	Header       string
	Align        Align
	MaxWidth     int          // 0 = unlimited
	Truncate     TruncateMode // TruncateEnd when MaxWidth > 0 and unset
	Ellipsis     string       // default: "…"
	PaddingRight int          // default: 2 spaces
}

// Table renders rows as aligned plain text.
type Table struct {
	columns []Column
	rows    [][]string

	ShowHeader    bool
	ShowSeparator bool

	// HeaderStyle, if set, decorates header cells after alignment.
	HeaderStyle func(string) string
}

func NewTable(columns ...Column) *Table {
	for i := range columns {
		if columns[i].PaddingRight == 0 {
			columns[i].PaddingRight = 2
		}
		if columns[i].Ellipsis == "" {
			columns[i].Ellipsis = "…"
		}
		if columns[i].MaxWidth > 0 && columns[i].Truncate == TruncateNone {
			columns[i].Truncate = TruncateEnd
		}
	}

	return &Table{
		columns:       columns,
		ShowHeader:    true,
		ShowSeparator: true,
	}
}

// AddRow appends a row, padding or cutting it to the number of columns.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) AddRows(rows [][]string) {
	for _, r := range rows {
		t.AddRow(r...)
	}
}

func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := t.computeWidths()

	if t.ShowHeader {
		headers := make([]string, len(t.columns))
		for i, c := range t.columns {
			headers[i] = c.Header
		}
		if err := t.writeRow(w, headers, widths, t.HeaderStyle); err != nil {
			return err
		}
		if t.ShowSeparator {
			if err := t.writeSeparator(w, widths); err != nil {
				return err
			}
		}
	}

	for _, row := range t.rows {
		if err := t.writeRow(w, row, widths, nil); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) computeWidths() []int {
	widths := make([]int, len(t.columns))

	for i, col := range t.columns {
		widths[i] = runeLen(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runeLen(t.columns[i].truncate(cell)))
		}
	}
	for i, col := range t.columns {
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = col.MaxWidth
		}
	}
	return widths
}

func (t *Table) writeRow(w io.Writer, cells []string, widths []int, style func(string) string) error {
	var b strings.Builder
	for i, raw := range cells {
		col := t.columns[i]
		out := align(col.truncate(raw), widths[i], col.Align)
		if style != nil {
			out = style(out)
		}
		b.WriteString(out)
		b.WriteString(strings.Repeat(" ", col.PaddingRight))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) writeSeparator(w io.Writer, widths []int) error {
	var b strings.Builder
	for i, col := range t.columns {
		b.WriteString(strings.Repeat("-", widths[i]))
		b.WriteString(strings.Repeat(" ", col.PaddingRight))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (col Column) truncate(s string) string {
	if col.MaxWidth <= 0 || col.Truncate == TruncateNone || runeLen(s) <= col.MaxWidth {
		return s
	}
	ell := col.Ellipsis

	// If max width is too small to fit ellipsis + content, hard cut.
	if col.MaxWidth <= runeLen(ell) {
		return takeRunes(s, col.MaxWidth)
	}

	avail := col.MaxWidth - runeLen(ell)

	switch col.Truncate {
	case TruncateStart:
		return ell + takeRunesFromEnd(s, avail)
	case TruncateMiddle:
		left := avail / 2
		return takeRunes(s, left) + ell + takeRunesFromEnd(s, avail-left)
	default:
		return takeRunes(s, avail) + ell
	}
}

func align(s string, width int, a Align) string {
	l := runeLen(s)
	if l >= width {
		return s
	}
	gap := width - l
	switch a {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	}
	return s + strings.Repeat(" ", gap)
}

// runeLen counts runes, not terminal cells (wcwidth).
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func takeRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func takeRunesFromEnd(s string, n int) string {
	if n <= 0 {
		return ""
	}
	skip := utf8.RuneCountInString(s) - n
	if skip <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == skip {
			return s[pos:]
		}
		i++
	}
	return s
}
