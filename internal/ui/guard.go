package ui

import "sync"

// Control is the enabled flag of a trigger widget such as a button.
type Control struct {
	mu       sync.Mutex
	Label    string
	disabled bool
}

func NewControl(label string) *Control {
	return &Control{Label: label}
}

func (c *Control) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disabled
}

// Acquire disables the control for the duration of an operation. ok is
// false, and nothing changes, when the control is already disabled. release
// re-enables it and is safe to call more than once; defer it right after a
// successful Acquire so every exit path restores the control.
func (c *Control) Acquire() (release func(), ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return func() {}, false
	}
	c.disabled = true

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.disabled = false
			c.mu.Unlock()
		})
	}, true
}
