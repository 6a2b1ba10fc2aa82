// Package progress renders a terminal spinner while long listings run.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner writes a single self-overwriting status line.
// Start and Stop are idempotent. A disabled spinner writes nothing.
type Spinner struct {
	out      io.Writer
	interval time.Duration
	enabled  bool

	mu     sync.Mutex
	msg    string
	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures the spinner.
type Option func(*Spinner)

// WithInterval sets frame interval.
func WithInterval(d time.Duration) Option { return func(s *Spinner) { s.interval = d } }

// WithEnabled forces the spinner on or off regardless of the terminal.
func WithEnabled(enabled bool) Option { return func(s *Spinner) { s.enabled = enabled } }

// New creates a spinner on out. It is enabled only when out is a terminal.
func New(out io.Writer, opts ...Option) *Spinner {
	s := &Spinner{out: out, interval: 100 * time.Millisecond}
	if f, ok := out.(*os.File); ok {
		s.enabled = isatty.IsTerminal(f.Fd())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins drawing msg.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if !s.enabled || s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(s.stopCh, s.doneCh)
}

// SetMessage updates the message displayed after the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
}

// Stop clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stopCh, doneCh := s.stopCh, s.doneCh
	s.stopCh, s.doneCh = nil, nil
	s.mu.Unlock()
	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

func (s *Spinner) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		s.mu.Lock()
		msg := s.msg
		s.mu.Unlock()
		fmt.Fprintf(s.out, "\r\x1b[2K\x1b[36m%s\x1b[0m %s", frames[i%len(frames)], msg)
		select {
		case <-stopCh:
			fmt.Fprint(s.out, "\r\x1b[2K")
			return
		case <-ticker.C:
		}
	}
}
