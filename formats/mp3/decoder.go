// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/ual/audio"
)

// go-mp3 always produces interleaved stereo PCM16.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return decodePCM(dec)
}

func decodePCM(dec mp3Reader) (*audio.SampleBuffer, error) {
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	frameSize := channels * audio.BytesPerSample
	data = data[:len(data)-len(data)%frameSize]

	return audio.NewSampleBuffer(data, channels, dec.SampleRate())
}
