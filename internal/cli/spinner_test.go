package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context) (*Spinner, *bytes.Buffer) {
	s := newSpinner(ctx, "planning...")
	var buf bytes.Buffer
	s.w = &buf
	return s, &buf
}

func TestSpinnerStop(t *testing.T) {
	s, buf := quietSpinner(context.Background())
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after a normal Stop")
	}
	if !bytes.Contains(buf.Bytes(), []byte("planning...")) {
		t.Errorf("spinner output %q missing message", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background())
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := quietSpinner(ctx)
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
	s.Stop()
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx)
	s.Start()
	time.Sleep(100 * time.Millisecond)
	if !s.Cancelled() {
		t.Error("Cancelled() = false after timeout")
	}
	s.Stop()
}
