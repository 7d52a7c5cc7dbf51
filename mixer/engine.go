// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ik5/ual/utils"
)

const (
	// FrameSize is the size of one output frame: two little-endian int16.
	FrameSize = 4

	DefaultPollInterval = 5 * time.Millisecond
	DefaultIdleInterval = 10 * time.Millisecond
)

var ErrAlreadyRunning = errors.New("mixer already running")

// Output is the device side of the mixer. Available never blocks; Acquire
// hands out a writable region of stereo PCM16 frames that stays valid until
// the matching Release.
type Output interface {
	Available() (int, error)
	Acquire(frames int) ([]byte, error)
	Release(frames int) error
}

// Result describes one mix pass.
type Result struct {
	Frames  int
	Loops   int
	Retired int
}

// Stats are cumulative counters for an engine.
type Stats struct {
	Ticks        uint64
	Frames       uint64
	Loops        uint64
	Retired      uint64
	DeviceErrors uint64
}

// Engine pulls capacity from an Output and fills it with the mix of every
// buffer in a Registry.
type Engine struct {
	out      Output
	registry *Registry
	log      *slog.Logger
	poll     time.Duration
	idle     time.Duration

	status atomic.Int32

	ticks   atomic.Uint64
	frames  atomic.Uint64
	loops   atomic.Uint64
	retired atomic.Uint64
	devErrs atomic.Uint64

	// consecutive device failures, touched only by Run
	failures int
}

type Option func(*Engine)

// WithPollInterval sets the pause after every written region.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.poll = d
		}
	}
}

// WithIdleInterval sets the pause when the device has no room.
func WithIdleInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.idle = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(out Output, registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		out:      out,
		registry: registry,
		log:      slog.Default().With("component", "mixer"),
		poll:     DefaultPollInterval,
		idle:     DefaultIdleInterval,
	}
	e.status.Store(int32(StatusStopped))

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Status() Status { return Status(e.status.Load()) }

func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:        e.ticks.Load(),
		Frames:       e.frames.Load(),
		Loops:        e.loops.Load(),
		Retired:      e.retired.Load(),
		DeviceErrors: e.devErrs.Load(),
	}
}

// Run mixes until ctx is done. Device errors are logged and polling
// continues; Run only returns early with ErrAlreadyRunning.
func (e *Engine) Run(ctx context.Context) error {
	if !e.status.CompareAndSwap(int32(StatusStopped), int32(StatusWorking)) {
		return ErrAlreadyRunning
	}
	defer e.status.Store(int32(StatusStopped))

	e.log.Debug("mixer started",
		slog.Duration("poll", e.poll),
		slog.Duration("idle", e.idle))
	defer e.log.Debug("mixer stopped", slog.Uint64("frames", e.frames.Load()))

	for ctx.Err() == nil {
		n, err := e.Tick()

		wait := e.poll
		switch {
		case err != nil:
			e.deviceFailure(err)
			wait = e.idle
		case n == 0:
			wait = e.idle
			e.failures = 0
		default:
			e.failures = 0
		}

		if !sleep(ctx, wait) {
			break
		}
	}

	return nil
}

// Tick runs a single poll/acquire/mix/release cycle and returns the number
// of frames written. Zero frames with a nil error means the device is full.
func (e *Engine) Tick() (int, error) {
	n, err := e.out.Available()
	if err != nil {
		return 0, fmt.Errorf("query capacity: %w", err)
	}
	if n <= 0 {
		return 0, nil
	}

	region, err := e.out.Acquire(n)
	if err != nil {
		return 0, fmt.Errorf("acquire %d frames: %w", n, err)
	}
	if frames := len(region) / FrameSize; frames < n {
		n = frames
	}

	var res Result
	e.registry.With(func(set *Set) {
		res = MixFrames(region[:n*FrameSize], set)
	})

	if err := e.out.Release(n); err != nil {
		return 0, fmt.Errorf("release %d frames: %w", n, err)
	}

	e.ticks.Add(1)
	e.frames.Add(uint64(n))
	if res.Loops > 0 || res.Retired > 0 {
		e.loops.Add(uint64(res.Loops))
		e.retired.Add(uint64(res.Retired))
		e.log.Debug("buffers finished",
			slog.Int("looped", res.Loops),
			slog.Int("retired", res.Retired))
	}

	return n, nil
}

func (e *Engine) deviceFailure(err error) {
	e.devErrs.Add(1)
	e.failures++

	// first failure of a streak, then every 100th
	if e.failures == 1 || e.failures%100 == 0 {
		e.log.Warn("output device error",
			slog.Any("error", err),
			slog.Int("consecutive", e.failures))
	}
}

// MixFrames fills dst with len(dst)/FrameSize frames, each the saturated sum
// of the current frame of every live entry in set. Entries advance one frame
// per output frame; looping entries rewind on exhaustion and the others are
// retired. An entry whose cursor points past its data contributes nothing
// for that frame.
func MixFrames(dst []byte, set *Set) Result {
	frames := len(dst) / FrameSize

	res := Result{Frames: frames}
	for i := range frames {
		var left, right int32

		for j := range set.Len() {
			if set.Retired(j) {
				continue
			}

			buf := set.At(j)
			if buf.Exhausted() {
				set.Retire(j)
				res.Retired++
				continue
			}

			f, ok := buf.FrameAt(buf.Cursor())
			if !ok {
				continue
			}
			left += int32(f.Left)
			right += int32(f.Right)

			if buf.Advance() {
				res.Loops++
			} else if buf.Exhausted() {
				set.Retire(j)
				res.Retired++
			}
		}

		off := i * FrameSize
		binary.LittleEndian.PutUint16(dst[off:], uint16(utils.ClampInt16(left)))
		binary.LittleEndian.PutUint16(dst[off+2:], uint16(utils.ClampInt16(right)))
	}

	return res
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
