// Package logging keeps recent log lines in memory so the TUI can show them
// in its debug overlay without writing to the terminal it is drawing on.
package logging

import (
	"strings"
	"sync"
)

// Capacity is the number of lines a RecordBuffer retains.
const Capacity = 256

// RecordBuffer is a fixed-size circular buffer of log lines, safe for concurrent use.
// The cursor is a uint8 so index arithmetic wraps at Capacity on its own.
type RecordBuffer struct {
	mu     sync.Mutex
	lines  [Capacity]string
	filled [Capacity]bool
	latest uint8
}

// NewRecordBuffer returns an empty buffer whose first write lands in slot 0.
func NewRecordBuffer() *RecordBuffer {
	return &RecordBuffer{latest: Capacity - 1}
}

// Push stores line in the slot after the latest one, overwriting the oldest line when full.
func (b *RecordBuffer) Push(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.latest + 1
	b.lines[next] = line
	b.filled[next] = true
	b.latest = next
}

// Write implements io.Writer so a stdlib *log.Logger can target the buffer.
// Each non-empty line of p becomes one entry.
func (b *RecordBuffer) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			b.Push(line)
		}
	}
	return len(p), nil
}

// DisplayLogs returns the retained lines oldest first.
func (b *RecordBuffer) DisplayLogs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, Capacity)
	idx := b.latest + 1
	for range Capacity {
		if b.filled[idx] {
			out = append(out, b.lines[idx])
		}
		idx++
	}
	return out
}

// Len returns how many slots hold a line.
func (b *RecordBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, ok := range b.filled {
		if ok {
			n++
		}
	}
	return n
}
