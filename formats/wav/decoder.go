// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/ual/audio"
)

const wavFormatPCM = 1

var (
	riffID = []byte("RIFF")
	waveID = []byte("WAVE")
)

// pcmReader is the part of wav.Decoder used once the header is accepted.
type pcmReader interface {
	FullPCMBuffer() (*goaudio.IntBuffer, error)
}

type Decoder struct{}

// Decode reads a whole 16-bit PCM WAV file into a SampleBuffer.
func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	rs, err := audio.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	magic := make([]byte, 12)
	if _, err := io.ReadFull(rs, magic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(magic[:4], riffID) || !bytes.Equal(magic[8:], waveID) {
		return nil, ErrNotWavFile
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}
	info := wav.NewDecoder(rs)
	info.ReadInfo()
	if err := info.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if info.WavAudioFormat != wavFormatPCM || info.BitDepth != 16 {
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrOnlyPCM16bitSupported, info.WavAudioFormat, info.BitDepth)
	}
	if info.NumChans == 0 || info.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding: %w", err)
	}

	return decodePCM(wav.NewDecoder(rs), int(info.NumChans), int(info.SampleRate))
}

func decodePCM(dec pcmReader, channels, sampleRate int) (*audio.SampleBuffer, error) {
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	// drop a trailing partial frame
	n := len(buf.Data) - len(buf.Data)%channels

	samples := make([]int16, n)
	for i, v := range buf.Data[:n] {
		samples[i] = int16(v)
	}

	return audio.NewSampleBufferInt16(samples, channels, sampleRate)
}
