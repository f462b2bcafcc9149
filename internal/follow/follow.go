// Package follow reads a file that is still being written to. Where a plain
// reader would report end of file, a follow Reader waits for more data until
// its context is done.
package follow

import (
	"context"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/pvto/streamre/internal/logging"
	"github.com/pvto/streamre/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "follow")

// DefaultInterval is the poll interval used when none is given.
const DefaultInterval = 250 * time.Millisecond

// Reader turns io.EOF from the wrapped reader into a wait. Polls are spaced
// at least one interval apart. When the context is done Read reports io.EOF,
// so a consumer sees a normal end of input.
type Reader struct {
	ctx      context.Context
	r        io.Reader
	interval time.Duration
	limiter  *rate.Limiter
}

// NewReader returns a Reader polling r every interval. A zero or negative
// interval selects DefaultInterval.
func NewReader(ctx context.Context, r io.Reader, interval time.Duration) *Reader {
	if interval <= 0 {
		interval = DefaultInterval
	}
	log.WithField(logfields.Interval, interval).Debug("Following input")
	return &Reader{
		ctx:      ctx,
		r:        r,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Interval returns the time between two polls.
func (f *Reader) Interval() time.Duration {
	return f.interval
}

func (f *Reader) Read(p []byte) (int, error) {
	for {
		if err := f.ctx.Err(); err != nil {
			return 0, io.EOF
		}
		n, err := f.r.Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				err = nil
			}
			return n, err
		}
		if err := f.limiter.Wait(f.ctx); err != nil {
			log.WithError(err).Debug("Stopped following input")
			return 0, io.EOF
		}
	}
}
