// Package tui holds the full-screen terminal front ends of portview and
// filemover.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/0xa1bed0/deskutils/internal/ui"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleHeader   = tcell.StyleDefault.Bold(true).Underline(true)
	styleButton   = tcell.StyleDefault.Reverse(true)
	styleDisabled = tcell.StyleDefault.Dim(true)
	styleInput    = tcell.StyleDefault.Underline(true)
	styleFocused  = tcell.StyleDefault.Underline(true).Bold(true)
	styleHint     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func PutString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	i := 0
	for _, r := range text {
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
	return i
}

func TruncateToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-3]) + "..."
}

func padRight(s string, w int) string {
	s = TruncateToWidth(s, w)
	if n := len([]rune(s)); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

// rect is a clickable screen area.
type rect struct {
	x, y, w int
}

func (r rect) contains(x, y int) bool {
	return y == r.y && x >= r.x && x < r.x+r.w
}

// button is a clickable label bound to a ui.Control.
type button struct {
	control *ui.Control
	area    rect
}

func newButton(label string) *button {
	return &button{control: ui.NewControl(label)}
}

func (b *button) text() string {
	return "[ " + b.control.Label + " ]"
}

// place sets the button's position and returns the x right after it.
func (b *button) place(x, y int) int {
	b.area = rect{x: x, y: y, w: len([]rune(b.text()))}
	return x + b.area.w
}

func (b *button) hit(x, y int) bool {
	return b.area.contains(x, y)
}

func (b *button) draw(s tcell.Screen) {
	style := styleButton
	if !b.control.Enabled() {
		style = styleDisabled
	}
	PutString(s, b.area.x, b.area.y, b.text(), style)
}

// alert is a modal message box. While visible it swallows input until dismissed.
type alert struct {
	title   string
	message string
	visible bool
}

func (a *alert) show(title, message string) {
	a.title = title
	a.message = message
	a.visible = true
}

func (a *alert) dismiss() {
	a.visible = false
}

func (a *alert) draw(s tcell.Screen, width, height int) {
	if !a.visible {
		return
	}

	lines := strings.Split(a.message, "\n")
	inner := len([]rune(a.title))
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	inner = min(max(inner, 24), max(width-6, 10))
	boxW := inner + 4
	boxH := len(lines) + 4
	x0 := max((width-boxW)/2, 0)
	y0 := max((height-boxH)/2, 0)

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			s.SetContent(x, y, ' ', nil, styleButton)
		}
	}
	PutString(s, x0+2, y0, TruncateToWidth(a.title, inner), styleButton.Bold(true))
	for i, l := range lines {
		PutString(s, x0+2, y0+2+i, TruncateToWidth(l, inner), styleButton)
	}
	PutString(s, x0+2, y0+boxH-1, TruncateToWidth("Enter/Esc/click to close", inner), styleButton.Dim(true))
}

// clickTracker turns raw mouse button state into press events, so holding
// or dragging does not repeat a click.
type clickTracker struct {
	last tcell.ButtonMask
}

func (c *clickTracker) press(ev *tcell.EventMouse) bool {
	btn := ev.Buttons()
	pressed := btn&tcell.Button1 != 0 && c.last&tcell.Button1 == 0
	c.last = btn
	return pressed
}

// pollEvents forwards screen events to a channel until the screen is
// finalized.
func pollEvents(s tcell.Screen) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	return events
}

// OpenScreen creates and initializes the terminal screen. Callers must Fini it.
func OpenScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(styleDefault)
	s.Clear()
	return s, nil
}
