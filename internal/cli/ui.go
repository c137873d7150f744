package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/reducecalc/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows BatchProgress to be tested without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// BatchProgress reports how many inputs of a batch have been evaluated.
// It is safe for concurrent use by the batch workers.
type BatchProgress struct {
	mu      sync.Mutex
	spinner Spinner
	total   int
	done    int
}

// NewBatchProgress creates a progress display for total inputs, drawn on out.
func NewBatchProgress(total int, out io.Writer) *BatchProgress {
	bp := &BatchProgress{
		spinner: newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true)),
		total:   total,
	}
	bp.spinner.UpdateSuffix(bp.suffix())
	return bp
}

// Start begins drawing.
func (bp *BatchProgress) Start() {
	bp.spinner.Start()
}

// Increment records one more evaluated input.
func (bp *BatchProgress) Increment() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.done++
	bp.spinner.UpdateSuffix(bp.suffix())
}

// Done returns the number of inputs evaluated so far.
func (bp *BatchProgress) Done() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.done
}

// Stop erases the spinner.
func (bp *BatchProgress) Stop() {
	bp.spinner.Stop()
}

func (bp *BatchProgress) suffix() string {
	var progress float64
	if bp.total > 0 {
		progress = float64(bp.done) / float64(bp.total)
	}
	return fmt.Sprintf(" %s%s%s %d/%d inputs",
		ui.ColorCyan(), progressBar(progress, ProgressBarWidth), ui.ColorReset(), bp.done, bp.total)
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
