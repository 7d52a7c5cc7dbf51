// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into PCM16 sample buffers.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
// Vorbis decodes to float samples; they are clamped to [-1, 1] and scaled
// to int16 with utils.Float32ToInt16.
//
//	file, _ := os.Open("ambience.ogg")
//	buf, err := vorbis.Decoder{}.Decode(file)
//
// Channel count and sample rate come from the stream. Decoder failures are
// wrapped in ErrDecode.
package vorbis
