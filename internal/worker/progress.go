package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 30

// Progress renders a single-line terminal progress bar for a tile run.
// A planet render is long and uniform (thousands of identical per-tile
// samples), so throughput and ETA are the numbers worth watching.
// Safe for concurrent Update calls from the pool's result collector.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress tracks a run of total tiles, printing to stderr when enabled.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the current counters and repaints the line if enabled.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback adapts Update to the pool's ProgressFunc signature.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Print repaints the progress line in place.
func (p *Progress) Print() {
	completed, total, failed, elapsed := p.snapshot()

	var rate float64
	var eta time.Duration
	if completed > 0 {
		rate = float64(completed) / elapsed.Seconds()
		if rate > 0 {
			eta = time.Duration(float64(total-completed)/rate) * time.Second
		}
	}

	line := fmt.Sprintf("\r[%s] %d/%d tiles", renderBar(completed, total), completed, total)
	if failed > 0 {
		line += fmt.Sprintf(" (%d failed)", failed)
	}
	line += fmt.Sprintf(" - %.1f tiles/sec", rate)
	switch {
	case completed == total:
		line += fmt.Sprintf(" - Done in %s", formatDuration(elapsed))
	case eta > 0:
		line += fmt.Sprintf(" - ETA: %s", formatDuration(eta))
	}

	// Trailing spaces cover leftovers from a longer previous line.
	fmt.Fprint(p.output, line+strings.Repeat(" ", 10))
}

// Done paints the final state and releases the line with a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary reports the finished run in one line, counting only tiles that
// actually rendered as successful.
func (p *Progress) Summary() string {
	completed, total, failed, elapsed := p.snapshot()

	var rate float64
	if elapsed.Seconds() > 0 {
		rate = float64(completed) / elapsed.Seconds()
	}

	return fmt.Sprintf("Rendered %d/%d tiles (%d failed) in %s (%.1f tiles/sec)",
		completed-failed, total, failed, formatDuration(elapsed), rate)
}

func (p *Progress) snapshot() (completed, total, failed int, elapsed time.Duration) {
	p.mu.RLock()
	completed = p.completed
	total = p.total
	failed = p.failed
	start := p.startTime
	p.mu.RUnlock()
	return completed, total, failed, time.Since(start)
}

func renderBar(completed, total int) string {
	filled := 0
	if total > 0 {
		filled = completed * progressBarWidth / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

// formatDuration drops the units a human would not read: seconds only
// under a minute, minutes and seconds under an hour, hours and minutes
// beyond that.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
