// Package progress wraps a terminal progress bar for batch analysis.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing. Ticks are safe for
// concurrent use.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// NewTracker creates a progress bar with the given label and total
// count. It writes to stderr so piped output stays clean.
func NewTracker(label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Tick increments the progress by 1.
func (t *Tracker) Tick() {
	_ = t.bar.Add(1)
}

// Finish clears the bar completely.
func (t *Tracker) Finish() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}
