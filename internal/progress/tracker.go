// Package progress counts transferred bytes and reports them periodically.
package progress

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Tracker is safe for concurrent use by chunk workers.
type Tracker struct {
	total int64
	done  atomic.Int64
}

func NewTracker(total int64) *Tracker {
	return &Tracker{total: total}
}

func (t *Tracker) Add(n int64) {
	if t == nil {
		return
	}
	t.done.Add(n)
}

func (t *Tracker) Done() int64 {
	if t == nil {
		return 0
	}
	return t.done.Load()
}

func (t *Tracker) Total() int64 {
	if t == nil {
		return 0
	}
	return t.total
}

// Percent is 100 once a zero-sized total has been reached.
func (t *Tracker) Percent() float64 {
	if t.Total() <= 0 {
		return 100
	}
	return float64(t.Done()) * 100 / float64(t.Total())
}

type countingReader struct {
	r io.Reader
	t *Tracker
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.t.Add(int64(n))
	return n, err
}

// Reader counts every byte read from r.
func (t *Tracker) Reader(r io.Reader) io.Reader {
	return &countingReader{r: r, t: t}
}

// Report writes a progress line to w every interval until ctx is done, then
// writes a final line.
func Report(ctx context.Context, w io.Writer, label string, t *Tracker, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(w, "\r%s\n", Line(label, t))
			return
		case <-ticker.C:
			fmt.Fprintf(w, "\r%s", Line(label, t))
		}
	}
}

// Line renders "label  12.3 MiB / 40.0 MiB  30.7%".
func Line(label string, t *Tracker) string {
	return fmt.Sprintf("%s  %s / %s  %5.1f%%", label, HumanBytes(t.Done()), HumanBytes(t.Total()), t.Percent())
}

// HumanBytes formats n with binary units.
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
