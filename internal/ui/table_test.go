package ui

import (
	"strings"
	"testing"
)

func TestTableRenderAlignsColumns(t *testing.T) {
	t.Parallel()

	tbl := NewTable(Column{Header: "Type"}, Column{Header: "Port", Align: AlignRight})
	tbl.AddRow("TCP", "22")
	tbl.AddRow("UDP", "5353")

	var b strings.Builder
	if err := tbl.Render(&b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "" +
		"Type  Port  \n" +
		"----  ----  \n" +
		"TCP     22  \n" +
		"UDP   5353  \n"
	if b.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestTableNormalizesRowLength(t *testing.T) {
	t.Parallel()

	tbl := NewTable(Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("only")
	tbl.AddRows([][]string{{"1", "2", "extra"}})

	if len(tbl.rows[0]) != 2 || tbl.rows[0][1] != "" {
		t.Fatalf("short row not padded: %#v", tbl.rows[0])
	}
	if len(tbl.rows[1]) != 2 {
		t.Fatalf("long row not cut: %#v", tbl.rows[1])
	}
}

func TestTableHeaderStyle(t *testing.T) {
	t.Parallel()

	tbl := NewTable(Column{Header: "PID"})
	tbl.ShowSeparator = false
	tbl.HeaderStyle = func(s string) string { return "<" + s + ">" }
	tbl.AddRow("1")

	var b strings.Builder
	_ = tbl.Render(&b)
	if !strings.HasPrefix(b.String(), "<PID>") {
		t.Fatalf("header style not applied: %q", b.String())
	}
}

func TestColumnTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode TruncateMode
		want string
	}{
		{TruncateEnd, "hello…"},
		{TruncateStart, "…world"},
		{TruncateMiddle, "he…rld"},
	}
	for _, tt := range tests {
		col := NewTable(Column{Header: "x", MaxWidth: 6, Truncate: tt.mode}).columns[0]
		if got := col.truncate("hello world"); got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}

	col := NewTable(Column{Header: "x", MaxWidth: 6}).columns[0]
	if col.Truncate != TruncateEnd {
		t.Fatalf("MaxWidth without Truncate should default to TruncateEnd, got %d", col.Truncate)
	}
}

func TestAlignCenter(t *testing.T) {
	t.Parallel()

	if got := align("ab", 6, AlignCenter); got != "  ab  " {
		t.Fatalf("align center: got %q", got)
	}
}
