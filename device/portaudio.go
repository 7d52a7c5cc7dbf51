// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package device

import (
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

const PortAudioBackend = "portaudio"

func init() {
	Register(PortAudioBackend, func(cfg Config) (Device, error) {
		p, err := NewPortAudio(cfg)
		if err != nil {
			return nil, err
		}

		return p, nil
	})
}

// PortAudio streams the ring through the default PortAudio output device.
type PortAudio struct {
	*ringOutput

	log     *slog.Logger
	stream  *portaudio.Stream
	started bool
}

func NewPortAudio(cfg Config) (*PortAudio, error) {
	cfg = cfg.withDefaults()

	if err := portaudio.Initialize(); err != nil {
		return nil, newError("initialize", CodeInit, err)
	}

	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, noDeviceError(err)
	}
	if dev == nil {
		portaudio.Terminate()
		return nil, noDeviceError(nil)
	}
	suggested := int(dev.DefaultSampleRate)

	p := &PortAudio{log: cfg.Logger}

	var lastErr error
	for _, rate := range RateCandidates(cfg.SampleRate, suggested) {
		p.ringOutput = newRingOutput(rate, cfg.Buffer)

		stream, err := portaudio.OpenDefaultStream(0, OutputChannels, float64(rate), 0, p.fill)
		if err != nil {
			p.log.Warn("portaudio rejected sample rate",
				slog.Int("rate", rate),
				slog.String("code", CodeFormat.String()),
				slog.Any("error", err))
			lastErr = err
			continue
		}
		p.stream = stream

		p.log.Info("portaudio output opened",
			slog.String("device", dev.Name),
			slog.String("format", p.format.String()),
			slog.Int("frames", p.ring.Capacity()))

		return p, nil
	}

	portaudio.Terminate()

	return nil, newError("open", CodeStream, lastErr)
}

func (p *PortAudio) fill(out []int16) {
	_, _ = p.ring.ReadInt16(out)
}

func (p *PortAudio) Start() error {
	if p.closed.Load() {
		return newError("start", CodeClosed, ErrClosed)
	}
	if p.started {
		return nil
	}
	if err := p.stream.Start(); err != nil {
		return newError("start", CodeStart, err)
	}
	p.started = true

	return nil
}

// Stop is a no-op on a stream that never started; PortAudio reports an
// error for stopping a stopped stream.
func (p *PortAudio) Stop() error {
	if !p.started {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return newError("stop", CodeStop, err)
	}
	p.started = false
	p.ring.Reset()

	return nil
}

// Close closes the stream before terminating the PortAudio library.
func (p *PortAudio) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	if err := p.stream.Close(); err != nil {
		portaudio.Terminate()
		return newError("close", CodeClose, err)
	}
	if err := portaudio.Terminate(); err != nil {
		return newError("close", CodeClose, err)
	}

	return nil
}
