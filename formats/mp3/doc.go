// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into PCM16 sample buffers.
//
// This package uses github.com/hajimehoshi/go-mp3, which always produces
// 16-bit little-endian stereo; mono files come out with both channels equal.
//
//	file, _ := os.Open("music.mp3")
//	buf, err := mp3.Decoder{}.Decode(file)
//
// The whole stream is decoded up front. Any decoder failure is wrapped in
// ErrDecode.
package mp3
