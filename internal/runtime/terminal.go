package runtime

import (
	"os"
	"sync"

	"github.com/moby/term"
)

// TerminalGuard remembers the terminal state at startup so it can be put
// back if a full-screen UI dies without cleaning up after itself.
type TerminalGuard struct {
	mu       sync.Mutex
	inFd     uintptr
	oldState *term.State
}

// NewTerminalGuard snapshots stdin's terminal state. On a non-TTY stdin the
// guard does nothing.
func NewTerminalGuard() *TerminalGuard {
	g := &TerminalGuard{}
	inFd, isTerm := term.GetFdInfo(os.Stdin)
	if !isTerm {
		return g
	}
	if st, err := term.SaveState(inFd); err == nil {
		g.inFd = inFd
		g.oldState = st
	}
	return g
}

// Restore resets the terminal to the saved state. Safe to call multiple times.
func (g *TerminalGuard) Restore() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.oldState == nil {
		return
	}
	_ = term.RestoreTerminal(g.inFd, g.oldState)
	g.oldState = nil

	// Best effort: leave the alternate screen, show the cursor and turn off
	// the mouse tracking modes a TUI may have enabled.
	os.Stdout.Write([]byte("\x1b[?1049l"))
	os.Stdout.Write([]byte("\x1b[?25h"))
	os.Stdout.Write([]byte("\x1b[?1000l")) // X10/normal mouse
	os.Stdout.Write([]byte("\x1b[?1002l")) // button event mouse
	os.Stdout.Write([]byte("\x1b[?1003l")) // any event mouse
	os.Stdout.Write([]byte("\x1b[?1006l")) // SGR mouse mode
}

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	_, inTerm := term.GetFdInfo(os.Stdin)
	_, outTerm := term.GetFdInfo(os.Stdout)
	return inTerm && outTerm
}
