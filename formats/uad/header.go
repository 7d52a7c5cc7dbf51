// SPDX-License-Identifier: EPL-2.0

package uad

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/ual/audio"
)

const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0

	// HeaderSize is the encoded size of Header.
	HeaderSize = 56
)

// Header is the fixed little-endian header at the start of a UAD file.
// Bytes 3 to 7 are reserved and always zero.
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	VersionPatch uint8
	_            [5]byte

	SampleSize uint64 // bytes per frame
	SampleRate uint64
	Channels   uint64
	NumFrames  uint64
	DataOffset uint64
	DataSize   uint64
}

// NewHeader describes buf with the PCM data right after the header.
func NewHeader(buf *audio.SampleBuffer) Header {
	return Header{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		VersionPatch: VersionPatch,
		SampleSize:   uint64(buf.SampleSize()),
		SampleRate:   uint64(buf.SampleRate()),
		Channels:     uint64(buf.Channels()),
		NumFrames:    uint64(buf.NumFrames()),
		DataOffset:   HeaderSize,
		DataSize:     uint64(buf.DataSize()),
	}
}

// ReadHeader reads and validates a header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// WriteTo writes the encoded header.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return 0, err
	}

	return HeaderSize, nil
}

// Validate checks the header against itself.
func (h Header) Validate() error {
	if h.VersionMajor != VersionMajor {
		return fmt.Errorf("%w: %d.%d.%d", ErrUnsupportedVersion, h.VersionMajor, h.VersionMinor, h.VersionPatch)
	}

	if h.Channels == 0 || h.Channels > math.MaxUint16 {
		return fmt.Errorf("%w: %d channels", ErrInvalidHeader, h.Channels)
	}
	if h.SampleSize != h.Channels*audio.BytesPerSample {
		return fmt.Errorf("%w: sample size %d for %d channels", ErrInvalidHeader, h.SampleSize, h.Channels)
	}
	if h.SampleRate == 0 || h.SampleRate > math.MaxInt32 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, h.SampleRate)
	}
	if h.DataOffset < HeaderSize || h.DataOffset > math.MaxInt64 {
		return fmt.Errorf("%w: data offset %d", ErrInvalidHeader, h.DataOffset)
	}
	if h.DataSize > math.MaxInt64 {
		return fmt.Errorf("%w: data size %d", ErrInvalidHeader, h.DataSize)
	}

	if h.DataSize%h.SampleSize != 0 || h.NumFrames != h.DataSize/h.SampleSize {
		return fmt.Errorf("%w: %d frames, %d bytes of %d-byte frames",
			ErrHeaderMismatch, h.NumFrames, h.DataSize, h.SampleSize)
	}

	return nil
}
