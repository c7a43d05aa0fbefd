package ui

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/moby/term"
)

// internal tail state.
type tailState struct {
	name          string
	buf           []string
	lastBoxHeight int
	closed        bool
}

type tailHandle struct {
	ui         *Logger
	iowritebuf []byte
}

// Tail is a handle for writing into a tail box.
type Tail interface {
	// implement io.Writer
	Write([]byte) (int, error)
	Println(msg string)
	Printf(msg string, args ...any)
	Close()
}

// NewTail starts a new tail stream.
// If a previous tail exists, it is finalized into a static box before starting a new one.
func (l *Logger) NewTail(name string) Tail {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tail != nil && !l.tail.closed {
		l.finalizeTailLocked()
	}

	l.tail = &tailState{
		name: name,
		buf:  make([]string, 0, l.tailLines),
	}

	l.writeFullLogLocked(fmt.Sprintf("[Tail %s] start\n", name))

	return &tailHandle{ui: l}
}

func (t *tailHandle) Write(p []byte) (int, error) {
	l := t.ui
	l.mu.Lock()
	defer l.mu.Unlock()

	t.iowritebuf = append(t.iowritebuf, p...)

	for {
		i := bytes.IndexByte(t.iowritebuf, '\n')
		if i == -1 {
			break
		}

		line := t.iowritebuf[:i]
		t.iowritebuf = t.iowritebuf[i+1:]

		// Trim optional CR before LF.
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		t.printLocked(string(line))
	}

	return len(p), nil
}

func (t *tailHandle) Printf(msg string, args ...any) {
	t.Println(fmt.Sprintf(msg, args...))
}

// Println prints msg; embedded newlines become separate tail lines.
func (t *tailHandle) Println(msg string) {
	l := t.ui
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.Split(msg, "\n") {
		t.printLocked(line)
	}
}

func terminalWidth() int {
	if ws, err := term.GetWinsize(os.Stdout.Fd()); err == nil && ws.Width > 0 {
		return int(ws.Width)
	}
	return 120
}

// fitWidth cuts msg to the box width, padding short lines so a redraw
// overwrites the previous content.
func fitWidth(msg string, width int) string {
	const marker = "... [truncated]"
	if width <= len(marker) {
		return msg
	}
	if runeLen(msg) > width {
		return takeRunes(msg, width-len(marker)) + marker
	}
	return msg + strings.Repeat(" ", width-runeLen(msg))
}

// printLocked assumes l.mu is already held.
func (t *tailHandle) printLocked(msg string) {
	l := t.ui

	// No active tail: log plainly.
	if l.tail == nil || l.tail.closed {
		l.writeFullLogLocked(fmt.Sprintf("[TAIL] %s\n", msg))
		fmt.Fprintln(l.out, msg)
		return
	}

	l.writeFullLogLocked(fmt.Sprintf("[TAIL %s] %s\n", l.tail.name, msg))

	if !l.enableTail {
		fmt.Fprintln(l.out, msg)
		return
	}

	l.tail.buf = append(l.tail.buf, fitWidth(msg, terminalWidth()-20))
	if len(l.tail.buf) > l.tailLines {
		l.tail.buf = l.tail.buf[len(l.tail.buf)-l.tailLines:]
	}

	if l.tail.lastBoxHeight > 0 {
		l.clearTailBoxLocked()
	}
	l.drawTailBoxLocked()
}

func (t *tailHandle) Close() {
	l := t.ui
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tail == nil || l.tail.closed {
		return
	}
	l.finalizeTailLocked()
}

// renderTailBox builds the box string for the given tail buffer.
func renderTailBox(title string, lines []string, s styles) string {
	if title == "" {
		title = "tail"
	}
	inner := s.tailTitle.Render(title)
	if len(lines) > 0 {
		inner = inner + "\n" + strings.Join(lines, "\n")
	}
	return s.tailBox.Render(inner)
}

// clearTailBoxLocked clears the last drawn tail box from the terminal.
// assumes l.mu is held.
func (l *Logger) clearTailBoxLocked() {
	if l.tail == nil || l.tail.lastBoxHeight <= 0 {
		return
	}
	h := l.tail.lastBoxHeight

	// Move cursor up h lines, clear them, move back up.
	fmt.Fprintf(l.out, "\x1b[%dF", h)
	for range h {
		fmt.Fprint(l.out, "\x1b[2K\r\n")
	}
	fmt.Fprintf(l.out, "\x1b[%dF", h)

	l.tail.lastBoxHeight = 0
}

// drawTailBoxLocked prints the tail box at the current cursor position.
// assumes l.mu is held.
func (l *Logger) drawTailBoxLocked() {
	if l.tail == nil || len(l.tail.buf) == 0 {
		return
	}
	box := renderTailBox(l.tail.name, l.tail.buf, l.style)

	fmt.Fprint(l.out, box+"\n")
	l.tail.lastBoxHeight = strings.Count(box, "\n") + 1
}

// finalizeTailLocked replaces the live box with a static one holding the
// last N lines and marks the tail closed. assumes l.mu is held.
func (l *Logger) finalizeTailLocked() {
	if l.tail == nil || l.tail.closed {
		return
	}

	if l.enableTail && l.tail.lastBoxHeight > 0 {
		l.clearTailBoxLocked()
	}

	if l.enableTail && len(l.tail.buf) > 0 {
		fmt.Fprint(l.out, renderTailBox(l.tail.name, l.tail.buf, l.style)+"\n")
	}

	l.writeFullLogLocked(fmt.Sprintf("[Tail %s] end\n", l.tail.name))

	l.tail.closed = true
	l.tail = nil
}
