package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// safeWriter serializes writes from the animation goroutine and callers.
type safeWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *safeWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

//nolint:gochecknoglobals // animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerInterval is the frame interval.
const SpinnerInterval = 100 * time.Millisecond

// ElapsedTimeThreshold is when elapsed time starts being shown. Model calls
// on slow hardware can take most of the 30s default timeout.
const ElapsedTimeThreshold = 5 * time.Second

// TerminalSpinner draws a one-line animation until stopped.
type TerminalSpinner struct {
	w       *safeWriter
	styles  *OutputStyles
	mu      sync.Mutex
	message string
	started time.Time
	running bool
	done    chan struct{}
}

// NewTerminalSpinner creates a spinner writing to w.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{
		w:      &safeWriter{w: w},
		styles: NewOutputStyles(),
	}
}

// Start begins the animation. Calling Start while running only replaces the
// message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.running {
		return
	}
	s.started = time.Now()
	s.running = true
	s.done = make(chan struct{})

	go s.animate(ctx, s.done)
}

// UpdateMessage replaces the message without restarting the clock.
func (s *TerminalSpinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop ends the animation and clears the line. Safe to call repeatedly.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	_, _ = fmt.Fprint(s.w, "\r\033[K")
}

func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			s.Stop()
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			msg := s.message
			if elapsed := time.Since(s.started); elapsed > ElapsedTimeThreshold {
				msg = fmt.Sprintf("%s %s", msg, formatElapsed(elapsed))
			}
			s.mu.Unlock()

			msg = truncateToWidth(msg, terminalWidth()-4)
			glyph := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
			_, _ = fmt.Fprintf(s.w, "\r\033[K%s %s", glyph, msg)
			frame++
		}
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%ds)", int(d.Seconds()))
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}

// terminalWidth returns the width of stderr, or 80.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd())) //nolint:gosec // G115: fd fits in int
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncateToWidth cuts s to maxWidth runes, ending with "...".
func truncateToWidth(s string, maxWidth int) string {
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return "..."
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// SpinnerAdapter adapts TerminalSpinner to the Spinner interface.
type SpinnerAdapter struct {
	spinner *TerminalSpinner
	cancel  context.CancelFunc
}

// NewSpinnerAdapter starts a spinner bound to ctx.
func NewSpinnerAdapter(ctx context.Context, w io.Writer, msg string) *SpinnerAdapter {
	ctx, cancel := context.WithCancel(ctx)
	s := NewTerminalSpinner(w)
	s.Start(ctx, msg)
	return &SpinnerAdapter{spinner: s, cancel: cancel}
}

// Update implements Spinner.
func (a *SpinnerAdapter) Update(msg string) { a.spinner.UpdateMessage(msg) }

// Stop implements Spinner.
func (a *SpinnerAdapter) Stop() {
	a.cancel()
	a.spinner.Stop()
}

// NoopSpinner does nothing.
type NoopSpinner struct{}

// Update implements Spinner.
func (*NoopSpinner) Update(string) {}

// Stop implements Spinner.
func (*NoopSpinner) Stop() {}
