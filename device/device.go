// SPDX-License-Identifier: EPL-2.0

package device

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Device is an output backend fed by the mixer. Available, Acquire and
// Release never block on the hardware.
type Device interface {
	Format() Format
	Available() (int, error)
	Acquire(frames int) ([]byte, error)
	Release(frames int) error
	Start() error
	Stop() error
	Close() error
}

// Config selects and tunes a backend. Zero values pick the defaults.
type Config struct {
	Backend    string
	SampleRate int
	Channels   int
	Buffer     time.Duration
	Logger     *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = DefaultBackend()
	}
	if c.SampleRate <= 0 {
		c.SampleRate = PreferredSampleRate
	}
	if c.Channels <= 0 {
		c.Channels = OutputChannels
	}
	if c.Buffer <= 0 {
		c.Buffer = DefaultBuffer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Logger = c.Logger.With("component", "device", "backend", c.Backend)

	return c
}

func (c Config) checkFormat() error {
	if c.Channels != OutputChannels {
		return newError("open", CodeFormat, ErrUnsupportedFormat)
	}

	return nil
}

// ringOutput implements the mixer-facing half of Device over a Ring.
type ringOutput struct {
	format Format
	ring   *Ring
	closed atomic.Bool
}

func newRingOutput(rate int, buffer time.Duration) *ringOutput {
	format := Preferred()
	format.SampleRate = rate

	return &ringOutput{
		format: format,
		ring:   NewRing(RingFrames(rate, buffer)),
	}
}

func (o *ringOutput) Format() Format { return o.format }

// Ring exposes the queue the backend pulls from.
func (o *ringOutput) Ring() *Ring { return o.ring }

func (o *ringOutput) Available() (int, error) {
	if o.closed.Load() {
		return 0, newError("available", CodeClosed, ErrClosed)
	}

	return o.ring.Available(), nil
}

func (o *ringOutput) Acquire(frames int) ([]byte, error) {
	if o.closed.Load() {
		return nil, newError("acquire", CodeClosed, ErrClosed)
	}

	region, err := o.ring.Acquire(frames)
	if err != nil {
		return nil, newError("acquire", CodeBuffer, err)
	}

	return region, nil
}

func (o *ringOutput) Release(frames int) error {
	if o.closed.Load() {
		return newError("release", CodeClosed, ErrClosed)
	}

	if err := o.ring.Release(frames); err != nil {
		return newError("release", CodeBuffer, err)
	}

	return nil
}
