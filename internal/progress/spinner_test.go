package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var buf syncBuffer
	s := New(&buf, WithEnabled(true), WithInterval(5*time.Millisecond))
	s.Start("Listing buckets...")
	time.Sleep(20 * time.Millisecond)
	s.SetMessage("Listing buckets (page 2)...")
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Listing buckets...") {
		t.Fatalf("expected initial message, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\x1b[2K") {
		t.Errorf("expected the line to be cleared on stop, got %q", out)
	}
}

func TestSpinnerDisabledWritesNothing(t *testing.T) {
	var buf syncBuffer
	s := New(&buf)
	s.Start("Listing buckets...")
	s.Stop()
	if buf.String() != "" {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
