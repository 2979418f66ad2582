package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinnerOut receives spinner frames.
var spinnerOut io.Writer = os.Stderr

// spinner animates a message on one terminal line until stopped or until
// its context ends.
type spinner struct {
	message string
	out     io.Writer
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.Mutex
}

// startSpinner starts animating message on out.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	s := &spinner{message: message, out: out, quit: make(chan struct{})}
	s.wg.Add(1)
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		s.wg.Wait()
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+4))
	})
}

// withSpinner runs fn while a spinner shows message. The spinner is
// cleared before fn's result is returned.
func withSpinner[T any](ctx context.Context, message string, fn func() (T, error)) (T, error) {
	s := startSpinner(ctx, spinnerOut, message)
	defer s.stop()
	return fn()
}
