// SPDX-License-Identifier: EPL-2.0

package uad

import (
	"fmt"
	"io"

	"github.com/ik5/ual/audio"
)

type Decoder struct{}

// Decode reads a UAD file. The PCM data is read as it arrives, so a header
// claiming more data than the file holds fails with ErrTruncatedData instead
// of allocating the claimed size.
func (Decoder) Decode(r io.Reader) (*audio.SampleBuffer, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if skip := int64(h.DataOffset - HeaderSize); skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return nil, fmt.Errorf("%w: data offset %d past end of file", ErrTruncatedData, h.DataOffset)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(h.DataSize)))
	if err != nil {
		return nil, fmt.Errorf("reading UAD data: %w", err)
	}
	if uint64(len(data)) < h.DataSize {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedData, len(data), h.DataSize)
	}

	return audio.NewSampleBuffer(data, int(h.Channels), int(h.SampleRate))
}

type Encoder struct{}

// Encode writes buf as a UAD file with the data directly after the header.
func (Encoder) Encode(w io.Writer, buf *audio.SampleBuffer) error {
	if _, err := NewHeader(buf).WriteTo(w); err != nil {
		return fmt.Errorf("writing UAD header: %w", err)
	}

	if _, err := w.Write(buf.Data()); err != nil {
		return fmt.Errorf("writing UAD data: %w", err)
	}

	return nil
}
