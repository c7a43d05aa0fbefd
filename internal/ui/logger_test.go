package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerBuffersFullLogUntilWriterSet(t *testing.T) {
	t.Parallel()

	var out, full strings.Builder
	l := New(Options{Out: &out, LogLevel: LogLevelWarn})

	l.Error("first %d", 1)
	l.Info("second")

	l.SetFullLogWriter(&full)
	l.Warn("third")

	got := full.String()
	for _, want := range []string{"[ERR ] first 1\n", "[INFO] second\n", "[WARN] third\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("full log %q missing %q", got, want)
		}
	}
	if !strings.Contains(out.String(), "first 1") {
		t.Fatalf("error should reach console: %q", out.String())
	}
}

func TestLoggerLevelFiltersConsoleOnly(t *testing.T) {
	t.Parallel()

	var out, full strings.Builder
	l := New(Options{Out: &out, FullLogWriter: &full, LogLevel: LogLevelError})

	l.Info("quiet info")
	l.Debug("never")

	if strings.Contains(out.String(), "quiet info") {
		t.Fatalf("info printed at error level: %q", out.String())
	}
	if !strings.Contains(full.String(), "quiet info") {
		t.Fatalf("info missing from full log: %q", full.String())
	}
	if strings.Contains(full.String(), "never") {
		t.Fatalf("debug leaked into full log: %q", full.String())
	}
}

func TestLoggerComponentTag(t *testing.T) {
	t.Parallel()

	var full strings.Builder
	l := New(Options{Out: &strings.Builder{}, FullLogWriter: &full, Component: "portview"})
	l.Error("query failed")

	if !strings.Contains(full.String(), "[ERR ] [portview] query failed") {
		t.Fatalf("component tag missing: %q", full.String())
	}
}

func TestLoggerHoldOut(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	l := New(Options{Out: &out})

	release := l.HoldOut()
	l.Error("while held")
	if out.Len() != 0 {
		t.Fatalf("console written while held: %q", out.String())
	}

	release()
	release()
	if strings.Count(out.String(), "while held") != 1 {
		t.Fatalf("held line not flushed exactly once: %q", out.String())
	}

	l.Error("after")
	if !strings.Contains(out.String(), "after") {
		t.Fatalf("console not restored: %q", out.String())
	}
}

func TestLoggerOpenFullLogCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "port_checker.log")
	l := New(Options{Out: &strings.Builder{}})
	if err := l.OpenFullLog(path); err != nil {
		t.Fatalf("OpenFullLog failed: %v", err)
	}
	l.Error("cannot read /proc/net/tcp")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "[ERR ] cannot read /proc/net/tcp") {
		t.Fatalf("unexpected log line %q", line)
	}
	if _, err := time.Parse(timestampLayout, line[1:strings.IndexByte(line, ']')]); err != nil {
		t.Fatalf("log line does not start with a timestamp: %q", line)
	}
}

func TestTimestampWriterPrefixesEveryLine(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	tw := NewTimestampWriter(&b)
	tw.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }

	n, err := tw.Write([]byte("[INFO] a\n[ERR ] b\n"))
	if err != nil || n != len("[INFO] a\n[ERR ] b\n") {
		t.Fatalf("Write returned %d, %v", n, err)
	}

	want := "[2026-10-14T09:30:00.000] [INFO] a\n[2026-10-14T09:30:00.000] [ERR ] b\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestTailWithoutBoxPrintsLines(t *testing.T) {
	t.Parallel()

	var out, full strings.Builder
	l := New(Options{Out: &out, FullLogWriter: &full, EnableTail: false})

	tail := l.NewTail("move")
	tail.Println("Moved: a -> b\nMoved: c -> d")
	tail.Close()

	if out.String() != "Moved: a -> b\nMoved: c -> d\n" {
		t.Fatalf("unexpected console output %q", out.String())
	}
	for _, want := range []string{"[Tail move] start", "[TAIL move] Moved: a -> b", "[Tail move] end"} {
		if !strings.Contains(full.String(), want) {
			t.Fatalf("full log %q missing %q", full.String(), want)
		}
	}
}

func TestLoggerDisableFullLogStopsBuffering(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	l := New(Options{Out: &out, LogLevel: LogLevelInfo})

	l.Info("before")
	l.DisableFullLog()
	if len(l.fullLogBuffer) != 0 {
		t.Fatalf("buffer kept %d line(s) after disable", len(l.fullLogBuffer))
	}

	for i := 0; i < 100; i++ {
		l.Info("line %d", i)
	}
	if len(l.fullLogBuffer) != 0 {
		t.Fatalf("buffer grew to %d line(s) while disabled", len(l.fullLogBuffer))
	}
	if !strings.Contains(out.String(), "line 99") {
		t.Fatalf("console output missing: %q", out.String())
	}

	var full strings.Builder
	l.SetFullLogWriter(&full)
	l.Info("after")
	if !strings.Contains(full.String(), "after") || strings.Contains(full.String(), "before") {
		t.Fatalf("unexpected full log after re-enable: %q", full.String())
	}
}
