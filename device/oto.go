// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
)

func init() {
	Register(OtoBackend, func(cfg Config) (Device, error) {
		o, err := NewOto(cfg)
		if err != nil {
			return nil, err
		}

		return o, nil
	})
}

// oto allows a single context per process, so every Oto device shares it.
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoFormat Format
)

var errOtoFormat = errors.New("oto context already running at another rate")

var newOtoContext = oto.NewContext

func otoContext(cfg Config) (*oto.Context, Format, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoFormat.SampleRate != cfg.SampleRate {
			cfg.Logger.Warn("reusing oto context",
				slog.Int("requested", cfg.SampleRate),
				slog.Int("active", otoFormat.SampleRate),
				slog.Any("error", errOtoFormat))
		}

		return otoCtx, otoFormat, nil
	}

	// oto latches its context on the first NewContext call, even a failed
	// one, so the rate cannot be renegotiated with a second attempt.
	ctx, ready, err := newOtoContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: OutputChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   cfg.Buffer / 2,
	})
	if err != nil {
		return nil, Format{}, newError("open", CodeInit, err)
	}
	<-ready

	otoCtx = ctx
	otoFormat = Preferred()
	otoFormat.SampleRate = cfg.SampleRate

	return otoCtx, otoFormat, nil
}

// Oto plays the ring through ebitengine/oto. The oto player pulls from the
// ring as an io.Reader and hears silence when the mixer falls behind.
type Oto struct {
	*ringOutput

	log    *slog.Logger
	player *oto.Player
}

func NewOto(cfg Config) (*Oto, error) {
	cfg = cfg.withDefaults()

	ctx, format, err := otoContext(cfg)
	if err != nil {
		return nil, err
	}

	o := &Oto{
		ringOutput: newRingOutput(format.SampleRate, cfg.Buffer),
		log:        cfg.Logger,
	}
	o.player = ctx.NewPlayer(o.ring)
	// Keep oto's own queue short; the ring already holds cfg.Buffer.
	o.player.SetBufferSize(o.ring.Capacity() * format.FrameSize() / 2)

	o.log.Info("oto output opened",
		slog.String("format", format.String()),
		slog.Int("frames", o.ring.Capacity()))

	return o, nil
}

func (o *Oto) Start() error {
	if o.closed.Load() {
		return newError("start", CodeClosed, ErrClosed)
	}
	o.player.Play()

	if err := o.player.Err(); err != nil {
		return newError("start", CodeStart, err)
	}

	return nil
}

func (o *Oto) Stop() error {
	o.player.Pause()
	o.ring.Reset()

	return nil
}

// Close releases the player. The shared oto context stays alive for the
// next device.
func (o *Oto) Close() error {
	if o.closed.Swap(true) {
		return nil
	}

	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return newError("close", CodeClose, err)
	}

	return nil
}
