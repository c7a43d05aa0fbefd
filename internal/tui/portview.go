package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/ports"
	"github.com/0xa1bed0/deskutils/internal/porttable"
)

// Enumerator lists the sockets shown by the port viewer.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]ports.Record, error)
}

type queryResult struct {
	records []ports.Record
	err     error
}

// Row layout of the port viewer screen.
const (
	pvTitleRow  = 0
	pvButtonRow = 1
	pvStatusRow = 2
	pvHeaderRow = 4
	pvFirstRow  = 5
)

var pvColumnWidths = [...]int{8, 8, 10}

// PortView is the interactive port viewer.
type PortView struct {
	enum  Enumerator
	table *porttable.Table

	query   *button
	release func()
	results chan queryResult

	status string
	offset int
	width  int
	height int
	clicks clickTracker
}

func NewPortView(enum Enumerator, table *porttable.Table) *PortView {
	return &PortView{
		enum:    enum,
		table:   table,
		query:   newButton("Query"),
		results: make(chan queryResult, 1),
		status:  "Press Query (r) to list listening ports",
		width:   80,
		height:  24,
	}
}

// Run takes over screen until the user quits or ctx is cancelled. The table
// starts empty; sockets are listed on Query.
func (p *PortView) Run(ctx context.Context, screen tcell.Screen) error {
	screen.EnableMouse()
	screen.HideCursor()
	p.width, p.height = screen.Size()

	events := pollEvents(screen)
	p.draw(screen)

	for {
		select {
		case <-ctx.Done():
			p.waitQuery()
			return nil
		case res := <-p.results:
			p.finishQuery(res)
		case ev, ok := <-events:
			if !ok {
				p.waitQuery()
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				p.width, p.height = ev.Size()
				screen.Sync()
			case *tcell.EventKey:
				if p.handleKey(ctx, ev) {
					p.waitQuery()
					return nil
				}
			case *tcell.EventMouse:
				p.handleMouse(ctx, ev)
			}
		}
		p.draw(screen)
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func (p *PortView) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		p.startQuery(ctx)
	case tcell.KeyUp:
		p.scroll(-1)
	case tcell.KeyDown:
		p.scroll(1)
	case tcell.KeyPgUp:
		p.scroll(-p.visibleRows())
	case tcell.KeyPgDn:
		p.scroll(p.visibleRows())
	case tcell.KeyHome:
		p.offset = 0
	case tcell.KeyEnd:
		p.scroll(p.table.Len())
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return true
		case 'r':
			p.startQuery(ctx)
		case '1', '2', '3', '4':
			p.sortBy(porttable.Columns[r-'1'])
		}
	}
	return false
}

func (p *PortView) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		p.scroll(-1)
		return
	case btn&tcell.WheelDown != 0:
		p.scroll(1)
		return
	}
	if !p.clicks.press(ev) {
		return
	}
	x, y := ev.Position()
	p.click(ctx, x, y)
}

func (p *PortView) click(ctx context.Context, x, y int) {
	if p.query.hit(x, y) {
		p.startQuery(ctx)
		return
	}
	if y == pvHeaderRow {
		if col, ok := p.columnAt(x); ok {
			p.sortBy(col)
		}
	}
}

func (p *PortView) sortBy(col porttable.Column) {
	st := p.table.Click(col)
	dir := "ascending"
	if st.Descending {
		dir = "descending"
	}
	logs.Debugf("sort by %s %s", col.Header(), dir)
	p.offset = 0
}

// startQuery enumerates sockets in the background. While a query runs the
// Query button is disabled and further requests are ignored.
func (p *PortView) startQuery(ctx context.Context) {
	release, ok := p.query.control.Acquire()
	if !ok {
		return
	}
	p.release = release
	p.status = "Querying..."

	go func() {
		var res queryResult
		defer func() {
			if r := recover(); r != nil {
				res.err = fmt.Errorf("query panic: %v", r)
			}
			p.results <- res
		}()
		res.records, res.err = p.enum.Enumerate(ctx)
	}()
}

// finishQuery shows whatever the query returned. Errors only go to the log,
// the screen keeps the partial rows.
func (p *PortView) finishQuery(res queryResult) {
	defer p.releaseQuery()

	p.table.Replace(res.records)
	p.offset = 0
	if res.err != nil {
		logs.Errorf("Failed to get port info: %v", res.err)
	} else {
		logs.Infof("Query completed, %d port(s)", len(res.records))
	}
	p.status = fmt.Sprintf("%d port(s)", len(res.records))
}

func (p *PortView) releaseQuery() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
}

// waitQuery blocks until an outstanding query has delivered its result.
func (p *PortView) waitQuery() {
	if p.release == nil {
		return
	}
	p.finishQuery(<-p.results)
}

func (p *PortView) visibleRows() int {
	return max(p.height-pvFirstRow, 1)
}

func (p *PortView) scroll(delta int) {
	maxOffset := max(p.table.Len()-p.visibleRows(), 0)
	p.offset = min(max(p.offset+delta, 0), maxOffset)
}

// columnBounds returns the start x and width of every column for the
// current screen width. The last column takes the remaining space.
func (p *PortView) columnBounds() []rect {
	out := make([]rect, 0, len(porttable.Columns))
	x := 0
	for i := range porttable.Columns {
		w := max(p.width-x, 1)
		if i < len(pvColumnWidths) {
			w = pvColumnWidths[i]
		}
		out = append(out, rect{x: x, y: pvHeaderRow, w: w})
		x += w
	}
	return out
}

func (p *PortView) columnAt(x int) (porttable.Column, bool) {
	for i, b := range p.columnBounds() {
		if b.contains(x, pvHeaderRow) {
			return porttable.Columns[i], true
		}
	}
	return 0, false
}

func (p *PortView) headerLabel(col porttable.Column) string {
	label := col.Header()
	if st := p.table.SortState(); st.Active && st.Column == col {
		if st.Descending {
			label += " ▼"
		} else {
			label += " ▲"
		}
	}
	return label
}

func (p *PortView) draw(s tcell.Screen) {
	s.Clear()

	PutString(s, 0, pvTitleRow, TruncateToWidth("Port Viewer", p.width), styleTitle)
	x := p.query.place(0, pvButtonRow)
	PutString(s, x+2, pvButtonRow, TruncateToWidth("r query  1-4 sort  q quit", max(p.width-x-2, 0)), styleHint)
	p.query.draw(s)

	PutString(s, 0, pvStatusRow, TruncateToWidth(p.status, p.width), styleDefault)

	bounds := p.columnBounds()
	for i, col := range porttable.Columns {
		b := bounds[i]
		PutString(s, b.x, pvHeaderRow, padRight(p.headerLabel(col), b.w-1), styleHeader)
	}

	rows := p.table.Rows()
	visible := p.visibleRows()
	for i := 0; i < visible && p.offset+i < len(rows); i++ {
		cells := rows[p.offset+i]
		for c, b := range bounds {
			PutString(s, b.x, pvFirstRow+i, TruncateToWidth(cells[c], b.w-1), styleDefault)
		}
	}

	if len(rows) > visible {
		pos := strconv.Itoa(p.offset+1) + "-" + strconv.Itoa(min(p.offset+visible, len(rows))) + "/" + strconv.Itoa(len(rows))
		PutString(s, max(p.width-len(pos), 0), pvStatusRow, pos, styleHint)
	}

	s.Show()
}
