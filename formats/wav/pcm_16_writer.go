// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/ual/audio"
)

const (
	headerSize = 44
	chunkSize  = 8192 // samples per write
)

// WriteWAV16 writes interleaved int16 samples as a canonical 16-bit PCM WAV
// file with the given rate and channel count.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return fmt.Errorf("%w: %d", audio.ErrInvalidChannels, channels)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", audio.ErrInvalidSampleRate, sampleRate)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", audio.ErrMisalignedData, len(samples), channels)
	}

	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, headerSize)

	copy(header[0:4], riffID)
	binary.LittleEndian.PutUint32(header[4:8], headerSize-8+dataSize)
	copy(header[8:12], waveID)

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}

// Encoder writes sample buffers as WAV files.
type Encoder struct{}

func (Encoder) Encode(w io.Writer, buf *audio.SampleBuffer) error {
	return WriteWAV16(w, buf.SampleRate(), buf.Channels(), buf.Samples())
}
