// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/ual/audio"
)

// frameReader is the part of flac.Stream used for decoding audio.
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	stream, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCM16bitSupported, info.BitsPerSample)
	}

	return decodeFrames(stream, int(info.NChannels), int(info.SampleRate))
}

// decodeFrames interleaves the per-channel subframes of every frame.
func decodeFrames(dec frameReader, channels, sampleRate int) (*audio.SampleBuffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, audio.ErrInvalidChannels)
	}

	var samples []int16
	for {
		f, err := dec.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if len(f.Subframes) != channels {
			return nil, fmt.Errorf("%w: %d, want %d", ErrChannelMismatch, len(f.Subframes), channels)
		}

		n := len(f.Subframes[0].Samples)
		for _, sub := range f.Subframes[1:] {
			n = min(n, len(sub.Samples))
		}

		for i := range n {
			for _, sub := range f.Subframes {
				samples = append(samples, int16(sub.Samples[i]))
			}
		}
	}

	return audio.NewSampleBufferInt16(samples, channels, sampleRate)
}
