// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/ual/audio"
	"github.com/ik5/ual/utils"
	"github.com/jfreymuth/oggvorbis"
)

// frames per Read call
const readFrames = 4096

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return decodePCM(dec)
}

// decodePCM drains dec and converts its float samples to PCM16.
func decodePCM(dec oggReader) (*audio.SampleBuffer, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, audio.ErrInvalidChannels)
	}

	floats := make([]float32, readFrames*channels)
	var samples []int16

	for {
		n, err := dec.Read(floats)
		if n > 0 {
			start := len(samples)
			samples = append(samples, make([]int16, n)...)
			utils.Float32ToPCM16(samples[start:], floats[:n])
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if n == 0 {
			break
		}
	}

	n := len(samples) - len(samples)%channels

	return audio.NewSampleBufferInt16(samples[:n], channels, dec.SampleRate())
}
