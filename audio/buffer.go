// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// BytesPerSample is the size of a single PCM16 sample.
const BytesPerSample = 2

// Frame is one instant of stereo audio.
type Frame struct {
	Left  int16
	Right int16
}

// SampleBuffer is a decoded block of interleaved little-endian PCM16 audio
// with its own playback cursor.
//
// The PCM content never changes after construction. The cursor is the only
// mutable state and it is owned by whoever plays the buffer (the mixer once
// the buffer has been added to a registry).
type SampleBuffer struct {
	data       []byte
	sampleSize int // bytes per frame
	sampleRate int
	channels   int
	numFrames  int

	cursor int
	loop   bool
}

// NewSampleBuffer wraps data, which must hold whole frames of PCM16 audio
// for the given channel count. The buffer takes ownership of data.
func NewSampleBuffer(data []byte, channels, sampleRate int) (*SampleBuffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	sampleSize := channels * BytesPerSample
	if len(data)%sampleSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrMisalignedData, len(data), sampleSize)
	}

	return &SampleBuffer{
		data:       data,
		sampleSize: sampleSize,
		sampleRate: sampleRate,
		channels:   channels,
		numFrames:  len(data) / sampleSize,
	}, nil
}

// NewSampleBufferInt16 builds a buffer from interleaved int16 samples.
func NewSampleBufferInt16(samples []int16, channels, sampleRate int) (*SampleBuffer, error) {
	data := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}

	return NewSampleBuffer(data, channels, sampleRate)
}

func (b *SampleBuffer) Data() []byte    { return b.data }
func (b *SampleBuffer) DataSize() int   { return len(b.data) }
func (b *SampleBuffer) SampleSize() int { return b.sampleSize }
func (b *SampleBuffer) SampleRate() int { return b.sampleRate }
func (b *SampleBuffer) Channels() int   { return b.channels }
func (b *SampleBuffer) NumFrames() int  { return b.numFrames }
func (b *SampleBuffer) Cursor() int     { return b.cursor }
func (b *SampleBuffer) Loop() bool      { return b.loop }

// SetLoop enables or disables seamless looping.
func (b *SampleBuffer) SetLoop(loop bool) { b.loop = loop }

// Exhausted reports whether the cursor has passed the last frame.
func (b *SampleBuffer) Exhausted() bool {
	return b.cursor >= b.numFrames
}

// FrameAt returns the frame at cursor. It reports false when the frame
// would read past the end of the PCM data.
//
// Mono buffers play the same sample on both channels; buffers with more
// than two channels expose their first two.
func (b *SampleBuffer) FrameAt(cursor int) (Frame, bool) {
	if cursor < 0 {
		return Frame{}, false
	}

	idx := cursor * b.sampleSize
	if idx+b.sampleSize > len(b.data) {
		return Frame{}, false
	}

	left := int16(binary.LittleEndian.Uint16(b.data[idx:]))
	if b.channels == 1 {
		return Frame{Left: left, Right: left}, true
	}
	right := int16(binary.LittleEndian.Uint16(b.data[idx+2:]))

	return Frame{Left: left, Right: right}, true
}

// Advance moves the cursor one frame forward. A looping buffer that runs
// out is rewound to its first frame and Advance returns true.
func (b *SampleBuffer) Advance() (wrapped bool) {
	b.cursor++
	if b.loop && b.Exhausted() {
		b.cursor = 0
		return true
	}

	return false
}

// Rewind puts the cursor back on the first frame.
func (b *SampleBuffer) Rewind() { b.cursor = 0 }

// Duration is the play time of the whole buffer at its sample rate.
func (b *SampleBuffer) Duration() time.Duration {
	return time.Duration(b.numFrames) * time.Second / time.Duration(b.sampleRate)
}

// Samples returns a copy of the interleaved PCM as int16 values.
func (b *SampleBuffer) Samples() []int16 {
	out := make([]int16, len(b.data)/BytesPerSample)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b.data[i*2:]))
	}

	return out
}

// Clone returns a buffer sharing the PCM data but with its own cursor.
func (b *SampleBuffer) Clone() *SampleBuffer {
	c := *b
	return &c
}
