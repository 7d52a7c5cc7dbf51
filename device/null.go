// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const nullTick = 10 * time.Millisecond

func init() {
	Register(NullBackend, func(cfg Config) (Device, error) {
		return NewNull(cfg), nil
	})
}

// Null consumes the ring at real-time speed and discards it. It needs no
// audio hardware, which makes it the backend for servers and CI.
type Null struct {
	*ringOutput

	log *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewNull(cfg Config) *Null {
	cfg = cfg.withDefaults()

	n := &Null{
		ringOutput: newRingOutput(cfg.SampleRate, cfg.Buffer),
		log:        cfg.Logger,
	}
	n.log.Debug("null output opened",
		slog.String("format", n.format.String()),
		slog.Int("frames", n.ring.Capacity()))

	return n
}

func (n *Null) Start() error {
	if n.closed.Load() {
		return newError("start", CodeClosed, ErrClosed)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.done = make(chan struct{})

	go n.drain(ctx, n.done)

	return nil
}

func (n *Null) drain(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(nullTick)
	defer ticker.Stop()

	start := time.Now()
	var consumed int64
	sink := make([]byte, RingFrames(n.format.SampleRate, nullTick)*n.format.FrameSize())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due := framesElapsed(n.format.SampleRate, now.Sub(start)) - consumed
			if due <= 0 {
				continue
			}
			consumed += due

			// After a stall there is never more to drop than the ring holds.
			frames := min(int(due), n.ring.Capacity())
			size := frames * n.format.FrameSize()
			if size > len(sink) {
				sink = make([]byte, size)
			}
			_, _ = n.ring.Read(sink[:size])
		}
	}
}

// framesElapsed is the number of frames played at rate during d, rounded
// down. Callers track what they consumed so the remainder carries over.
func framesElapsed(rate int, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	secs, rem := d/time.Second, d%time.Second

	return int64(rate)*int64(secs) + int64(rate)*int64(rem)/int64(time.Second)
}

func (n *Null) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel == nil {
		return nil
	}

	n.cancel()
	<-n.done
	n.cancel = nil
	n.ring.Reset()

	return nil
}

func (n *Null) Close() error {
	if n.closed.Swap(true) {
		return nil
	}

	return n.Stop()
}
