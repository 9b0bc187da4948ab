package tui

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTerminalSpinner_AnimatesAndClears(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf lockedBuffer
	s := NewTerminalSpinner(&buf)
	s.Start(context.Background(), "generating commit message")

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(buf.String()), []byte("generating commit message"))
	}, 2*time.Second, 10*time.Millisecond)

	s.UpdateMessage("committing")
	s.Stop()
	s.Stop()

	assert.Contains(t, buf.String(), "\r\033[K")
}

func TestTerminalSpinner_StopsOnContextCancel(t *testing.T) {
	var buf lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := NewTerminalSpinner(&buf)
	s.Start(ctx, "x")

	cancel()

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.running
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "short", truncateToWidth("short", 10))
	assert.Equal(t, "abcdefg...", truncateToWidth("abcdefghijklmnop", 10))
	assert.Equal(t, "...", truncateToWidth("abcdef", 2))
	assert.Equal(t, "ééé...", truncateToWidth("éééééééé", 6))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "(12s)", formatElapsed(12*time.Second))
	assert.Equal(t, "(2m 5s)", formatElapsed(125*time.Second))
}
