// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM16 sample buffer and the decoder registry
// shared by the format packages and the mixer.
//
// # Sample Buffers
//
// A SampleBuffer holds interleaved little-endian signed 16-bit PCM together
// with its channel count, sample rate and a playback cursor:
//
//	buf, err := audio.NewSampleBufferInt16([]int16{100, 100, 200, 200}, 2, 48000)
//	buf.SetLoop(true)
//
// The PCM bytes never change once the buffer is built. Only the cursor moves,
// one frame at a time, through Advance:
//
//	frame, ok := buf.FrameAt(buf.Cursor())
//	if ok {
//	    buf.Advance()
//	}
//
// FrameAt is bounds-checked. A cursor that would read past the PCM data
// yields ok == false instead of a panic.
//
// # Invariants
//
// Every buffer satisfies:
//   - SampleSize() == Channels() * 2
//   - DataSize() % SampleSize() == 0
//   - NumFrames() == DataSize() / SampleSize()
//
// Constructors return ErrInvalidChannels, ErrInvalidSampleRate or
// ErrMisalignedData when they cannot be met.
//
// # Format Registry
//
// The registry maps format keys (file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("sounds/click.wav")
//
// Keys are case-insensitive.
package audio
