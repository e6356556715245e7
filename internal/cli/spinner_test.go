package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer against the spinner's drawing goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func newSyncBuffer() *syncBuffer { return &syncBuffer{} }

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

func TestSpinnerDrawsMessage(t *testing.T) {
	out := newSyncBuffer()
	s := newSpinner("Rendering formation diagram...")
	s.out = out

	s.Start()
	time.Sleep(5 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "Rendering formation diagram...") {
		t.Error("spinner output missing its message")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Arranging nodes...")
	s.out = newSyncBuffer()

	s.Start()
	cancel()

	// The drawing goroutine parks itself once it notices the cancellation.
	select {
	case <-s.parked:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerPlainStopIsNotCancelled(t *testing.T) {
	s := newSpinner("Issuing share link...")
	s.out = newSyncBuffer()

	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = newSyncBuffer()

	s.Start()
	for i := 0; i < 3; i++ {
		s.Stop()
	}
}

func TestSpinnerStopVariants(t *testing.T) {
	s := newSpinner("Rendering PNG...")
	s.out = newSyncBuffer()
	s.Start()
	s.StopWithSuccess("Rendered course.png")

	s = newSpinner("Rendering SVG...")
	s.out = newSyncBuffer()
	s.Start()
	s.StopWithError("Graphviz not available")
}
