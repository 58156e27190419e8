// Package scanner provides debounced end-of-scan detection for barcode
// scanner input. USB scanners emulate a keyboard and emit a code as a burst
// of keystrokes; the calling layer forwards fragments here and the buffer
// decides when a code is complete.
package scanner

import (
	"strings"
	"sync"
	"time"
)

// DefaultQuiet is the idle interval after which buffered input is treated
// as a completed scan. Scanner bursts arrive within a few milliseconds;
// human typing does not.
const DefaultQuiet = 150 * time.Millisecond

// Buffer accumulates scan fragments and flushes the completed code once a
// newline terminator arrives or the input goes quiet.
type Buffer struct {
	mu    sync.Mutex
	buf   strings.Builder
	timer *time.Timer
	quiet time.Duration
	flush func(code string)
}

// NewBuffer creates a buffer that calls flush with each completed code.
// A non-positive quiet interval falls back to DefaultQuiet.
func NewBuffer(quiet time.Duration, flush func(code string)) *Buffer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Buffer{quiet: quiet, flush: flush}
}

// Write appends a fragment of scanner input. A newline in the fragment
// terminates the scan immediately; otherwise the debounce timer is reset.
func (b *Buffer) Write(fragment string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		idx := strings.IndexByte(fragment, '\n')
		if idx < 0 {
			break
		}
		b.buf.WriteString(strings.TrimRight(fragment[:idx], "\r"))
		b.flushLocked()
		fragment = fragment[idx+1:]
	}

	if fragment != "" {
		b.buf.WriteString(fragment)
		b.resetTimerLocked()
	}
}

// Flush forces out whatever is buffered, if anything.
func (b *Buffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked()
}

// Stop cancels any pending debounce timer. Buffered input is discarded.
func (b *Buffer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.buf.Reset()
}

func (b *Buffer) resetTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.quiet, b.Flush)
}

func (b *Buffer) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	code := strings.TrimSpace(b.buf.String())
	b.buf.Reset()
	if code == "" {
		return
	}
	b.flush(code)
}
