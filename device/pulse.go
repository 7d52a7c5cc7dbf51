// SPDX-License-Identifier: EPL-2.0

//go:build pulse

package device

import (
	"log/slog"

	"github.com/jfreymuth/pulse"
)

const PulseBackend = "pulse"

func init() {
	Register(PulseBackend, func(cfg Config) (Device, error) {
		p, err := NewPulse(cfg)
		if err != nil {
			return nil, err
		}

		return p, nil
	})
}

// Pulse plays the ring through a PulseAudio (or PipeWire) server.
type Pulse struct {
	*ringOutput

	log    *slog.Logger
	client *pulse.Client
	stream *pulse.PlaybackStream
}

func NewPulse(cfg Config) (*Pulse, error) {
	cfg = cfg.withDefaults()

	client, err := pulse.NewClient(pulse.ClientApplicationName("ual"))
	if err != nil {
		return nil, newError("connect", CodeInit, err)
	}

	p := &Pulse{log: cfg.Logger, client: client}

	var lastErr error
	for _, rate := range RateCandidates(cfg.SampleRate, 0) {
		p.ringOutput = newRingOutput(rate, cfg.Buffer)

		stream, err := client.NewPlayback(pulse.Int16Reader(p.ring.ReadInt16),
			pulse.PlaybackStereo,
			pulse.PlaybackSampleRate(rate),
			pulse.PlaybackLatency(cfg.Buffer.Seconds()))
		if err != nil {
			p.log.Warn("pulse rejected sample rate",
				slog.Int("rate", rate),
				slog.String("code", CodeFormat.String()),
				slog.Any("error", err))
			lastErr = err
			continue
		}
		p.stream = stream

		p.log.Info("pulse output opened",
			slog.String("format", p.format.String()),
			slog.Int("frames", p.ring.Capacity()))

		return p, nil
	}

	client.Close()

	return nil, newError("open", CodeStream, lastErr)
}

func (p *Pulse) Start() error {
	if p.closed.Load() {
		return newError("start", CodeClosed, ErrClosed)
	}
	p.stream.Start()

	if err := p.stream.Error(); err != nil {
		return newError("start", CodeStart, err)
	}

	return nil
}

func (p *Pulse) Stop() error {
	p.stream.Pause()
	p.ring.Reset()

	return nil
}

// Close closes the playback stream before the client connection.
func (p *Pulse) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	if p.stream.Underflow() {
		p.log.Debug("pulse stream underflowed", slog.Uint64("underruns", p.ring.Underruns()))
	}

	p.stream.Close()
	p.client.Close()

	return nil
}
