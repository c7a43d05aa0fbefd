package ui

import (
	"fmt"
	"strings"
	"sync"
)

// LogPanel is an append-only list of progress lines with an explicit Clear.
type LogPanel struct {
	mu    sync.Mutex
	lines []string
}

func NewLogPanel() *LogPanel {
	return &LogPanel{}
}

// Append adds msg, splitting it on newlines.
func (p *LogPanel) Append(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, strings.Split(msg, "\n")...)
}

func (p *LogPanel) Appendf(format string, args ...any) {
	p.Append(fmt.Sprintf(format, args...))
}

// Clear removes every line.
func (p *LogPanel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = nil
}

// Lines returns a copy of the current content.
func (p *LogPanel) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

func (p *LogPanel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lines)
}

// Text returns the content joined with newlines.
func (p *LogPanel) Text() string {
	return strings.Join(p.Lines(), "\n")
}
