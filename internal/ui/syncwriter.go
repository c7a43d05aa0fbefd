package ui

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// SyncFile is the subset of *os.File used by SyncWriter.
type SyncFile interface {
	io.WriteCloser
	Sync() error
}

// SyncWriter wraps a file and periodically syncs it to disk, so a crash
// leaves at most one interval of log lines unwritten.
type SyncWriter struct {
	f        SyncFile
	mu       sync.Mutex
	dirty    bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
	closed   bool
}

// NewSyncWriter creates a new SyncWriter that syncs at the given interval.
func NewSyncWriter(f SyncFile, interval time.Duration) *SyncWriter {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	sw := &SyncWriter{
		f:        f,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: interval,
	}
	go sw.syncLoop()
	return sw
}

func (sw *SyncWriter) syncLoop() {
	defer close(sw.doneCh)
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.Sync()
		case <-sw.stopCh:
			sw.Sync()
			return
		}
	}
}

func (sw *SyncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	n, err := sw.f.Write(p)
	if n > 0 {
		sw.dirty = true
	}
	return n, err
}

// Sync forces an immediate sync to disk.
func (sw *SyncWriter) Sync() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if !sw.dirty {
		return nil
	}
	sw.dirty = false
	return sw.f.Sync()
}

// Close stops the sync loop and closes the underlying file. Further calls
// are no-ops.
func (sw *SyncWriter) Close() error {
	sw.mu.Lock()
	if sw.closed {
		sw.mu.Unlock()
		return nil
	}
	sw.closed = true
	sw.mu.Unlock()

	close(sw.stopCh)
	<-sw.doneCh
	return sw.f.Close()
}

var _ io.WriteCloser = (*SyncWriter)(nil)

// TimestampWriter prefixes every line written through it with a timestamp,
// producing "[2006-01-02T15:04:05.000] [LEVEL] message".
type TimestampWriter struct {
	w   io.Writer
	now func() time.Time
}

func NewTimestampWriter(w io.Writer) *TimestampWriter {
	return &TimestampWriter{w: w, now: time.Now}
}

func (tw *TimestampWriter) Write(p []byte) (int, error) {
	prefix := "[" + tw.now().Format(timestampLayout) + "] "

	var out bytes.Buffer
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		out.WriteString(prefix)
		out.Write(line)
	}

	if _, err := tw.w.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sync forwards sync to underlying writer if it supports it.
func (tw *TimestampWriter) Sync() error {
	if s, ok := tw.w.(syncer); ok {
		return s.Sync()
	}
	return nil
}

// Close forwards close to underlying writer if it supports it.
func (tw *TimestampWriter) Close() error {
	if c, ok := tw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
