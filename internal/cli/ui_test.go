package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"
)

// MockSpinner for testing
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestBatchProgress(t *testing.T) {
	useNoColor(t)
	mock := &MockSpinner{}
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = original })

	bp := NewBatchProgress(4, &bytes.Buffer{})
	if !strings.HasSuffix(mock.suffix, " 0/4 inputs") {
		t.Errorf("initial suffix = %q", mock.suffix)
	}

	bp.Start()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bp.Increment()
		}()
	}
	wg.Wait()
	bp.Stop()

	if !mock.started || !mock.stopped {
		t.Error("spinner should have been started and stopped")
	}
	if bp.Done() != 4 {
		t.Errorf("Done() = %d, want 4", bp.Done())
	}
	want := " " + strings.Repeat("█", ProgressBarWidth) + " 4/4 inputs"
	if mock.suffix != want {
		t.Errorf("final suffix = %q, want %q", mock.suffix, want)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{1.5, 4, "████"},
		{-1, 4, "░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("progressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}
