package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// syncer is an interface for types that can sync to disk.
// Both *os.File and *SyncWriter implement this.
type syncer interface {
	Sync() error
}

const timestampLayout = "2006-01-02T15:04:05.000"

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelDebug
	LogLevelDebugVerbose
)

// Options configures the Logger.
type Options struct {
	// Out is where user-facing logs are printed. Defaults to os.Stdout.
	Out io.Writer

	// FullLogWriter, if non-nil, receives every log and tail line in plain text.
	FullLogWriter io.Writer

	// TailLines controls how many lines are kept in the live tail box.
	// If <= 0, defaults to 5.
	TailLines int

	// EnableTail controls whether the live tail box is rendered.
	// If false, tail lines are printed as normal logs.
	EnableTail bool

	// LogLevel controls how much reaches Out; the full log is not filtered
	// except for debug lines.
	// error < info < warn < debug < debugVerbose
	LogLevel LogLevel

	// Component tags every line (e.g. "portview"). Empty means no tag.
	Component string
}

// Logger prints styled lines to Out and mirrors them to an optional full log.
type Logger struct {
	out       io.Writer
	full      io.Writer
	mu        sync.Mutex
	style     styles
	component string

	logLevel LogLevel

	// fullLogBuffer holds lines written before the full log writer is set.
	fullLogBuffer []string
	// noFullLog drops full log lines instead of buffering them.
	noFullLog bool

	// held is non-nil while console output is held back (see HoldOut).
	held []string

	tail       *tailState
	tailLines  int
	enableTail bool
}

type styles struct {
	spacer    lipgloss.Style
	logInfo   lipgloss.Style
	logWarn   lipgloss.Style
	logError  lipgloss.Style
	banner    lipgloss.Style
	tailBox   lipgloss.Style
	tailTitle lipgloss.Style
	header    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		spacer:    lipgloss.NewStyle(),
		logInfo:   lipgloss.NewStyle(),
		logWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange-ish
		logError:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		banner:    lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).Padding(0, 1).Margin(1, 0),
		tailBox:   lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).Padding(0, 1).Margin(1, 0),
		tailTitle: lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Bold(true),
	}
}

// New creates a new Logger.
func New(opts Options) *Logger {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.TailLines <= 0 {
		opts.TailLines = 5
	}

	return &Logger{
		out:        opts.Out,
		full:       opts.FullLogWriter,
		style:      defaultStyles(),
		tailLines:  opts.TailLines,
		enableTail: opts.EnableTail,
		logLevel:   opts.LogLevel,
		component:  opts.Component,
	}
}

func (l *Logger) SetComponent(component string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.component = component
}

func (l *Logger) SetLogLevel(logLevel LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLevel = logLevel
}

// SetFullLogWriter sets the full log destination once and flushes any lines
// buffered before it was known.
func (l *Logger) SetFullLogWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.full != nil {
		msg := fmt.Sprintf("[%s] [ERR ] attempted to set full log writer when already set, ignoring", time.Now().Format(timestampLayout))
		fmt.Fprintln(l.out, l.style.logError.Render(msg))
		return
	}

	l.full = w
	l.noFullLog = false
	for _, line := range l.fullLogBuffer {
		io.WriteString(l.full, line)
	}
	l.fullLogBuffer = nil
}

// OpenFullLog creates path (and its directory) in append mode and uses it
// as the timestamped full log.
func (l *Logger) OpenFullLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.SetFullLogWriter(NewTimestampWriter(NewSyncWriter(f, 200*time.Millisecond)))
	return nil
}

// DisableFullLog declares that no full log writer will be set. Buffered
// lines are dropped and later ones are not kept.
func (l *Logger) DisableFullLog() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.noFullLog = true
	l.fullLogBuffer = nil
}

// HoldOut buffers console output until release is called, e.g. while a
// full-screen UI owns the terminal. The full log keeps receiving lines.
func (l *Logger) HoldOut() (release func()) {
	l.mu.Lock()
	if l.held == nil {
		l.held = []string{}
	}
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for _, line := range l.held {
				fmt.Fprintln(l.out, line)
			}
			l.held = nil
		})
	}
}

// writeFullLogLocked writes to the full log writer if set, otherwise buffers
// unless the full log is disabled. Must be called with l.mu held.
func (l *Logger) writeFullLogLocked(line string) {
	switch {
	case l.full != nil:
		io.WriteString(l.full, line)
	case l.noFullLog:
	default:
		l.fullLogBuffer = append(l.fullLogBuffer, line)
	}
}

// Close closes the full log if it's an io.Closer and finalizes any active tail.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tail != nil && !l.tail.closed {
		l.finalizeTailLocked()
	}

	if c, ok := l.full.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (l *Logger) Spacer() {
	l.printLog(false, "", l.style.spacer, "")
}

func (l *Logger) Error(format string, args ...any) {
	l.printLog(false, "ERR ", l.style.logError, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.printLog(l.level() < LogLevelInfo, "INFO", l.style.logInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.printLog(l.level() < LogLevelWarn, "WARN", l.style.logWarn, format, args...)
}

// InfoSilent writes to the full log only.
func (l *Logger) InfoSilent(format string, args ...any) {
	l.printLog(true, "INFO", l.style.logInfo, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.level() >= LogLevelDebug {
		l.printLog(false, "DEBG", l.style.logInfo, format, args...)
	}
}

func (l *Logger) level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logLevel
}

func (l *Logger) formatCaller(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.level() < LogLevelDebugVerbose {
		return msg
	}
	pc, file, line, ok := runtime.Caller(4)
	if !ok {
		file = "?"
		line = 0
	}

	var fnName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		fnName = strings.ReplaceAll(fn.Name(), "github.com/0xa1bed0/deskutils", "")
	}

	return fmt.Sprintf("[%s:%d %s] %s", filepath.Base(file), line, fnName, msg)
}

// printLog handles clearing/redrawing the tail box around a log line.
func (l *Logger) printLog(silent bool, level string, style lipgloss.Style, format string, args ...any) {
	msg := l.formatCaller(format, args...)
	timestamp := time.Now().Format(timestampLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	componentTag := ""
	if l.component != "" {
		componentTag = fmt.Sprintf("[%s] ", l.component)
	}

	// Full log: no timestamp, TimestampWriter adds it at the destination.
	logLine := componentTag + msg + "\n"
	stdoutLine := fmt.Sprintf("[%s] %s%s", timestamp, componentTag, msg)
	if level != "" {
		logLine = fmt.Sprintf("[%s] %s%s\n", level, componentTag, msg)
		stdoutLine = fmt.Sprintf("[%s] [%s] %s%s", timestamp, level, componentTag, msg)
	}

	l.writeFullLogLocked(logLine)

	if silent {
		return
	}

	if l.held != nil {
		l.held = append(l.held, style.Render(stdoutLine))
		return
	}

	if l.enableTail && l.tail != nil && !l.tail.closed && l.tail.lastBoxHeight > 0 {
		l.clearTailBoxLocked()
	}

	fmt.Fprintln(l.out, style.Render(stdoutLine))

	if l.enableTail && l.tail != nil && !l.tail.closed && len(l.tail.buf) > 0 {
		l.drawTailBoxLocked()
	}
}

// Banner prints a boxed title.
func (l *Logger) Banner(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.enableTail && l.tail != nil && !l.tail.closed && l.tail.lastBoxHeight > 0 {
		l.clearTailBoxLocked()
	}

	l.writeFullLogLocked(fmt.Sprintf("\n===== %s =====\n\n", title))
	if s, ok := l.full.(syncer); ok {
		s.Sync()
	}

	fmt.Fprintln(l.out, l.style.banner.Render(title))

	if l.enableTail && l.tail != nil && !l.tail.closed && len(l.tail.buf) > 0 {
		l.drawTailBoxLocked()
	}
}

// Header renders s in the header style used by tables.
func (l *Logger) Header(s string) string {
	return l.style.header.Render(s)
}
