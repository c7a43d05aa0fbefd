package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/relocator"
	"github.com/0xa1bed0/deskutils/internal/ui"
)

// Mover performs one file gathering run.
type Mover interface {
	Run(ctx context.Context, root, ext string, events chan<- relocator.Event) (relocator.Result, error)
}

type runDone struct {
	res relocator.Result
	err error
}

const (
	fmTitleRow = 0
	fmInputRow = 1
	fmHintRow  = 2
	fmPanelRow = 3

	fmInputWidth = 16
)

// FileMover is the interactive file mover.
type FileMover struct {
	mover Mover
	root  string

	input   []rune
	cursor  int
	focused bool
	inputAt rect

	execute *button
	clear   *button
	panel   *ui.LogPanel
	alert   alert

	release func()
	cancel  context.CancelFunc
	events  chan relocator.Event
	done    chan runDone

	scrollBack int
	width      int
	height     int
	clicks     clickTracker
}

func NewFileMover(mover Mover, root, defaultExt string) *FileMover {
	return &FileMover{
		mover:   mover,
		root:    root,
		input:   []rune(defaultExt),
		cursor:  len([]rune(defaultExt)),
		focused: true,
		execute: newButton("Execute"),
		clear:   newButton("Clear Log"),
		panel:   ui.NewLogPanel(),
		width:   80,
		height:  24,
	}
}

func (f *FileMover) Extension() string {
	return string(f.input)
}

func (f *FileMover) Panel() *ui.LogPanel {
	return f.panel
}

// Run takes over screen until the user quits or ctx is cancelled. A run in
// progress is cancelled and waited for before Run returns.
func (f *FileMover) Run(ctx context.Context, screen tcell.Screen) error {
	screen.EnableMouse()
	f.width, f.height = screen.Size()

	events := pollEvents(screen)
	f.draw(screen)

	for {
		select {
		case <-ctx.Done():
			f.stop()
			return nil
		case ev, ok := <-f.events:
			if ok {
				f.appendEvent(ev)
			} else {
				f.events = nil
			}
		case d := <-f.done:
			f.finishRun(d)
		case ev, ok := <-events:
			if !ok {
				f.stop()
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				f.width, f.height = ev.Size()
				screen.Sync()
			case *tcell.EventKey:
				if f.handleKey(ctx, ev) {
					f.stop()
					return nil
				}
			case *tcell.EventMouse:
				f.handleMouse(ctx, ev)
			}
		}
		f.draw(screen)
	}
}

func (f *FileMover) running() bool {
	return f.done != nil
}

// handleKey applies a key press and reports whether the mover should quit.
func (f *FileMover) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if f.alert.visible {
		switch ev.Key() {
		case tcell.KeyEnter, tcell.KeyEscape:
			f.alert.dismiss()
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if f.running() {
			f.cancel()
			return false
		}
		if !f.focused {
			return true
		}
		f.focused = false
	case tcell.KeyTab:
		f.focused = !f.focused
	case tcell.KeyEnter:
		f.startRun(ctx)
	case tcell.KeyPgUp:
		f.scrollPanel(f.panelRows())
	case tcell.KeyPgDn:
		f.scrollPanel(-f.panelRows())
	default:
		if f.focused {
			f.editInput(ev)
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return true
			case 'x':
				f.startRun(ctx)
			case 'c':
				f.clearLog()
			}
		}
	}
	return false
}

func (f *FileMover) editInput(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		f.input = slices.Insert(f.input, f.cursor, ev.Rune())
		f.cursor++
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursor > 0 {
			f.input = slices.Delete(f.input, f.cursor-1, f.cursor)
			f.cursor--
		}
	case tcell.KeyDelete:
		if f.cursor < len(f.input) {
			f.input = slices.Delete(f.input, f.cursor, f.cursor+1)
		}
	case tcell.KeyLeft:
		f.cursor = max(f.cursor-1, 0)
	case tcell.KeyRight:
		f.cursor = min(f.cursor+1, len(f.input))
	case tcell.KeyHome:
		f.cursor = 0
	case tcell.KeyEnd:
		f.cursor = len(f.input)
	}
}

func (f *FileMover) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		f.scrollPanel(1)
		return
	case btn&tcell.WheelDown != 0:
		f.scrollPanel(-1)
		return
	}
	if !f.clicks.press(ev) {
		return
	}
	x, y := ev.Position()
	f.click(ctx, x, y)
}

func (f *FileMover) click(ctx context.Context, x, y int) {
	if f.alert.visible {
		f.alert.dismiss()
		return
	}
	switch {
	case f.execute.hit(x, y):
		f.startRun(ctx)
	case f.clear.hit(x, y):
		f.clearLog()
	case f.inputAt.contains(x, y):
		f.focused = true
		f.cursor = min(max(x-f.inputAt.x, 0), len(f.input))
	default:
		f.focused = false
	}
}

func (f *FileMover) clearLog() {
	f.panel.Clear()
	f.scrollBack = 0
}

// startRun validates the extension and starts a run in the background. The
// Execute control stays disabled until finishRun.
func (f *FileMover) startRun(ctx context.Context) {
	ext, err := relocator.NormalizeExtension(string(f.input))
	if err != nil {
		f.alert.show("Error", "Please enter a file extension")
		return
	}

	release, ok := f.execute.control.Acquire()
	if !ok {
		return
	}
	f.release = release
	f.clearLog()

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	events := make(chan relocator.Event, 64)
	done := make(chan runDone, 1)
	f.events = events
	f.done = done

	logs.Debugf("file mover run: root=%s ext=%s", f.root, ext)
	go func() {
		var d runDone
		defer func() {
			if r := recover(); r != nil {
				d.err = fmt.Errorf("file mover panic: %v", r)
			}
			close(events)
			done <- d
		}()
		d.res, d.err = f.mover.Run(runCtx, f.root, ext, events)
	}()
}

func (f *FileMover) appendEvent(ev relocator.Event) {
	f.panel.Append(ev.String())
	switch ev.Kind {
	case relocator.EventFailed:
		logs.Warnf("%s", ev.String())
	default:
		logs.InfofSilent("%s", ev.String())
	}
}

// finishRun drains the remaining progress events, reports how the run ended
// and re-enables Execute.
func (f *FileMover) finishRun(d runDone) {
	if f.events != nil {
		for ev := range f.events {
			f.appendEvent(ev)
		}
	}
	f.events = nil
	f.done = nil
	f.cancel()
	f.cancel = nil
	if f.release != nil {
		f.release()
		f.release = nil
	}

	switch {
	case d.err == nil:
	case errors.Is(d.err, context.Canceled):
		f.panel.Appendf("Cancelled after moving %d file(s)", d.res.Moved)
	default:
		f.panel.Appendf("Error: %v", d.err)
		logs.Errorf("file mover: %v", d.err)
		f.alert.show("Error", d.err.Error())
	}
}

// stop cancels a run in progress and waits for it to finish.
func (f *FileMover) stop() {
	if !f.running() {
		return
	}
	f.cancel()
	f.finishRun(<-f.done)
}

func (f *FileMover) panelRows() int {
	return max(f.height-fmPanelRow-2, 1)
}

func (f *FileMover) scrollPanel(delta int) {
	maxBack := max(f.panel.Len()-f.panelRows(), 0)
	f.scrollBack = min(max(f.scrollBack+delta, 0), maxBack)
}

// visibleLines returns the panel lines that fit on screen, following the
// newest line unless the user scrolled back.
func (f *FileMover) visibleLines() []string {
	lines := f.panel.Lines()
	rows := f.panelRows()
	end := max(len(lines)-f.scrollBack, 0)
	start := max(end-rows, 0)
	return lines[start:end]
}

func (f *FileMover) draw(s tcell.Screen) {
	s.Clear()
	s.HideCursor()

	PutString(s, 0, fmTitleRow, TruncateToWidth("File Mover: "+f.root, f.width), styleTitle)

	x := PutString(s, 0, fmInputRow, "Extension: ", styleDefault)
	f.inputAt = rect{x: x, y: fmInputRow, w: fmInputWidth}
	inputStyle := styleInput
	if f.focused {
		inputStyle = styleFocused
	}
	PutString(s, x, fmInputRow, padRight(string(f.input), fmInputWidth), inputStyle)
	if f.focused && !f.alert.visible {
		s.ShowCursor(x+min(f.cursor, fmInputWidth-1), fmInputRow)
	}
	x += fmInputWidth + 2
	x = f.execute.place(x, fmInputRow) + 2
	f.clear.place(x, fmInputRow)
	f.execute.draw(s)
	f.clear.draw(s)

	hint := "Enter execute  Tab focus  Esc cancel  c clear  q quit"
	if f.running() {
		hint = "Moving files...  Esc cancel"
	}
	PutString(s, 0, fmHintRow, TruncateToWidth(hint, f.width), styleHint)

	f.drawPanel(s)
	f.alert.draw(s, f.width, f.height)
	s.Show()
}

func (f *FileMover) drawPanel(s tcell.Screen) {
	top := fmPanelRow
	bottom := f.height - 1
	if bottom-top < 2 || f.width < 4 {
		return
	}

	for x := 1; x < f.width-1; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, styleDefault)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, styleDefault)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(0, y, tcell.RuneVLine, nil, styleDefault)
		s.SetContent(f.width-1, y, tcell.RuneVLine, nil, styleDefault)
	}
	s.SetContent(0, top, tcell.RuneULCorner, nil, styleDefault)
	s.SetContent(f.width-1, top, tcell.RuneURCorner, nil, styleDefault)
	s.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleDefault)
	s.SetContent(f.width-1, bottom, tcell.RuneLRCorner, nil, styleDefault)
	PutString(s, 2, top, " Log ", styleTitle)

	for i, line := range f.visibleLines() {
		PutString(s, 1, top+1+i, TruncateToWidth(line, f.width-2), styleDefault)
	}
}
