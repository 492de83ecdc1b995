package logging

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBuffer_SingleInsertion(t *testing.T) {
	buf := NewRecordBuffer()
	buf.Push("Test Log")

	assert.Equal(t, uint8(0), buf.latest)
	assert.True(t, buf.filled[0])
	assert.Equal(t, []string{"Test Log"}, buf.DisplayLogs())
}

func TestRecordBuffer_MultipleInsertion(t *testing.T) {
	buf := NewRecordBuffer()
	buf.Push("a")
	buf.Push("b")
	buf.Push("c")

	assert.Equal(t, uint8(2), buf.latest)
	assert.Equal(t, []string{"a", "b", "c"}, buf.DisplayLogs())
	assert.Equal(t, 3, buf.Len())
}

func TestRecordBuffer_Overflow(t *testing.T) {
	buf := NewRecordBuffer()
	for i := 0; i < Capacity; i++ {
		buf.Push("Test Log")
	}
	buf.Push("Test Log :: OVERFLOW")

	assert.Equal(t, uint8(0), buf.latest)
	assert.Equal(t, "Test Log :: OVERFLOW", buf.lines[0])
	assert.NotContains(t, buf.lines[255], "OVERFLOW")
}

func TestRecordBuffer_DisplayOrderAfterWrap(t *testing.T) {
	buf := NewRecordBuffer()
	for i := 1; i <= 300; i++ {
		buf.Push(fmt.Sprintf("L%d", i))
	}

	logs := buf.DisplayLogs()

	require.Len(t, logs, Capacity)
	for i, line := range logs {
		assert.Equal(t, fmt.Sprintf("L%d", 45+i), line)
	}
	assert.Equal(t, "L45", logs[0])
	assert.Equal(t, "L300", logs[len(logs)-1])
}

func TestRecordBuffer_EmptyDisplay(t *testing.T) {
	assert.Empty(t, NewRecordBuffer().DisplayLogs())
}

func TestRecordBuffer_ConcurrentWriters(t *testing.T) {
	buf := NewRecordBuffer()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				buf.Push(fmt.Sprintf("w%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, buf.DisplayLogs(), Capacity)
}

func TestRecordBuffer_StdlibLogger(t *testing.T) {
	buf := NewRecordBuffer()
	logger := log.New(buf, "", 0)

	logger.Print("first")
	logger.Print("second\nthird")

	assert.Equal(t, []string{"first", "second", "third"}, buf.DisplayLogs())
}

func TestHandler(t *testing.T) {
	buf := NewRecordBuffer()
	logger := New(buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("collection saved", "requests", 2)
	logger.With("component", "store").WithGroup("file").Warn("write failed", "path", "/x")

	logs := buf.DisplayLogs()
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0], "INFO")
	assert.Contains(t, logs[0], "collection saved requests=2")
	assert.Contains(t, logs[1], "WARN")
	assert.Contains(t, logs[1], "write failed component=store file.path=/x")
}

func TestTee_MirrorsWarningsToWriter(t *testing.T) {
	buf := NewRecordBuffer()
	var out strings.Builder
	logger := slog.New(Tee(NewHandler(buf, slog.LevelDebug), NewWriterHandler(&out, slog.LevelWarn)))

	logger.Debug("reading requests")
	logger.With("dir", "/tmp/c").Warn("skipping malformed file", "name", "bad")

	assert.Len(t, buf.DisplayLogs(), 2)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "skipping malformed file dir=/tmp/c name=bad")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
