// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/ual/audio"
)

// samples per PCMBuffer call
const readChunk = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	rs, err := audio.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCM16bitSupported, dec.BitDepth)
	}

	return decodePCM(dec)
}

func decodePCM(dec aiffReader) (*audio.SampleBuffer, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	chunk := &goaudio.IntBuffer{
		Data:   make([]int, readChunk),
		Format: format,
	}

	var samples []int16
	for {
		n, err := dec.PCMBuffer(chunk)
		for _, v := range chunk.Data[:n] {
			samples = append(samples, int16(v))
		}

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading AIFF samples: %w", err)
		}
	}

	n := len(samples) - len(samples)%format.NumChannels

	return audio.NewSampleBufferInt16(samples[:n], format.NumChannels, format.SampleRate)
}

// Encoder writes 16-bit AIFF files. The header is patched after the samples,
// so the destination must be an io.WriteSeeker such as an *os.File.
type Encoder struct{}

func (Encoder) Encode(w io.Writer, buf *audio.SampleBuffer) error {
	ws, ok := w.(io.WriteSeeker)
	if !ok {
		return ErrNeedsSeeker
	}

	enc := aiff.NewEncoder(ws, buf.SampleRate(), 16, buf.Channels())

	samples := buf.Samples()
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	err := enc.Write(&goaudio.IntBuffer{
		Data:           data,
		SourceBitDepth: 16,
		Format: &goaudio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate(),
		},
	})
	if err != nil {
		return fmt.Errorf("writing AIFF samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing AIFF file: %w", err)
	}

	return nil
}
