package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// Reporter renders per-file transfer progress and status lines.
//
// A nil *Reporter is valid and discards everything, so callers can
// thread it through unconditionally.
type Reporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewReporter creates a reporter writing to out.
// If out is nil, os.Stderr is used.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{out: out}
}

// Start begins a progress bar for one file. total is the expected
// final size in bytes, or 0 when the remote did not report one (the
// bar then renders as a spinner). initial is the byte offset a resumed
// transfer continues from.
func (r *Reporter) Start(name string, total, initial int64) {
	if r == nil {
		return
	}

	barTotal := total
	if barTotal <= 0 {
		barTotal = -1 // spinner
	}

	r.bar = progressbar.NewOptions64(barTotal,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)

	if initial > 0 {
		_ = r.bar.Set64(initial)
	}
}

// Add records n transferred bytes on the current bar.
func (r *Reporter) Add(n int64) {
	if r == nil || r.bar == nil {
		return
	}
	_ = r.bar.Add64(n)
}

// Finish completes the current bar.
func (r *Reporter) Finish() {
	if r == nil || r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	r.bar = nil
}

// Statusf writes a prefixed status line aimed at operators rather
// than machines: decisions, outcomes, and guidance.
func (r *Reporter) Statusf(format string, args ...any) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.out, "[dsfetch] "+format+"\n", args...)
}

// FormatBytes formats a byte count as a human-readable IEC string.
func FormatBytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}
