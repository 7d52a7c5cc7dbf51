// SPDX-License-Identifier: EPL-2.0

package ual

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/ual/audio"
	"github.com/ik5/ual/device"
	"github.com/ik5/ual/mixer"
)

var ErrNoDevice = errors.New("output device is not open")

// Config describes the output device and mixer of a session. Zero fields
// take the defaults from DefaultConfig.
type Config struct {
	Backend      string
	SampleRate   int
	Buffer       time.Duration
	PollInterval time.Duration
	IdleInterval time.Duration
	Logger       *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Backend:      device.DefaultBackend(),
		SampleRate:   device.PreferredSampleRate,
		Buffer:       device.DefaultBuffer,
		PollInterval: mixer.DefaultPollInterval,
		IdleInterval: mixer.DefaultIdleInterval,
		Logger:       slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.SampleRate <= 0 {
		c.SampleRate = def.SampleRate
	}
	if c.Buffer <= 0 {
		c.Buffer = def.Buffer
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.IdleInterval <= 0 {
		c.IdleInterval = def.IdleInterval
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}

	return c
}

// OutputDevice is one playback session: an output backend, the buffers being
// played and the worker that mixes them.
type OutputDevice struct {
	cfg      Config
	log      *slog.Logger
	dev      device.Device
	registry *mixer.Registry
	engine   *mixer.Engine

	status atomic.Int32

	mu     sync.Mutex
	err    error
	cancel context.CancelFunc
	group  *errgroup.Group
	closed bool
}

// OpenDefaultDevice opens the default backend with DefaultConfig.
func OpenDefaultDevice() *OutputDevice {
	return OpenDevice(DefaultConfig())
}

// OpenDevice opens the backend named in cfg. It never returns nil: when the
// backend fails, the error is logged with its diagnostic code and kept in
// Err, and the handle plays nothing.
func OpenDevice(cfg Config) *OutputDevice {
	cfg = cfg.withDefaults()

	d := &OutputDevice{
		cfg:      cfg,
		log:      cfg.Logger.With("component", "ual"),
		registry: mixer.NewRegistry(),
	}
	d.status.Store(int32(mixer.StatusStopped))

	dev, err := device.Open(device.Config{
		Backend:    cfg.Backend,
		SampleRate: cfg.SampleRate,
		Channels:   device.OutputChannels,
		Buffer:     cfg.Buffer,
		Logger:     cfg.Logger,
	})
	if err != nil {
		d.fail("opening output device", err)
		return d
	}

	d.dev = dev
	d.engine = mixer.NewEngine(dev, d.registry,
		mixer.WithPollInterval(cfg.PollInterval),
		mixer.WithIdleInterval(cfg.IdleInterval),
		mixer.WithLogger(cfg.Logger.With("component", "mixer")))

	d.log.Info("output device ready",
		slog.String("backend", cfg.Backend),
		slog.String("format", dev.Format().String()))

	return d
}

func (d *OutputDevice) fail(msg string, err error) {
	d.err = err

	code, _ := device.CodeOf(err)
	d.log.Error(msg,
		slog.String("backend", d.cfg.Backend),
		slog.String("code", code.String()),
		slog.Any("error", err))
}

// Err returns the last device error, if any.
func (d *OutputDevice) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

func (d *OutputDevice) Status() mixer.Status {
	return mixer.Status(d.status.Load())
}

// Format is the negotiated output format, or the zero Format when no
// backend is open.
func (d *OutputDevice) Format() device.Format {
	if d.dev == nil {
		return device.Format{}
	}

	return d.dev.Format()
}

// Active is the number of buffers still playing or queued.
func (d *OutputDevice) Active() int {
	return d.registry.Len()
}

// Stats reports the mixer counters. It is zero for a device that failed to
// open.
func (d *OutputDevice) Stats() mixer.Stats {
	if d.engine == nil {
		return mixer.Stats{}
	}

	return d.engine.Stats()
}

// Start starts the backend and the mixing worker. On a handle without a
// working backend it sets the status to StatusError and returns the error.
// Starting a running device does nothing.
func (d *OutputDevice) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dev == nil || d.closed {
		d.status.Store(int32(mixer.StatusError))
		if d.err == nil {
			d.err = ErrNoDevice
		}
		d.log.Warn("start on an unusable output device", slog.Any("error", d.err))

		return d.err
	}
	if d.cancel != nil {
		return nil
	}

	if err := d.dev.Start(); err != nil {
		d.status.Store(int32(mixer.StatusError))
		d.fail("starting output device", err)

		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.engine.Run(ctx)
	})

	d.cancel = cancel
	d.group = g
	d.status.Store(int32(mixer.StatusWorking))

	return nil
}

// AddBuffer queues buf for playback. The session plays its own copy of the
// cursor; the PCM data is shared and must not change afterwards. Buffers
// added before Start play once the worker runs.
func (d *OutputDevice) AddBuffer(buf *audio.SampleBuffer) {
	d.registry.Add(buf)
}

// Close stops the worker, waits for it, drops every queued buffer and
// releases the backend. It is safe to call more than once.
func (d *OutputDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if d.cancel != nil {
		d.cancel()
		if err := d.group.Wait(); err != nil {
			errs = append(errs, err)
		}
		d.cancel = nil
		d.group = nil
	}
	d.status.Store(int32(mixer.StatusStopped))

	d.registry.Clear()

	if d.dev != nil {
		if err := d.dev.Stop(); err != nil {
			errs = append(errs, err)
		}
		if err := d.dev.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		d.log.Warn("closing output device", slog.Any("error", err))
		return err
	}
	d.log.Debug("output device closed")

	return nil
}
