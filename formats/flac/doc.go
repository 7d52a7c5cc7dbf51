// SPDX-License-Identifier: EPL-2.0

// Package flac decodes 16-bit FLAC files with github.com/mewkiz/flac.
//
// # Supported Formats
//
// Currently supported:
//   - 16-bit samples
//   - Any channel count the stream declares
//   - Any sample rate
//
// # Decoding
//
//	file, _ := os.Open("loop.flac")
//	buf, err := flac.Decoder{}.Decode(file)
//
// The whole stream is decoded at once. Every frame's subframes are
// interleaved into one PCM16 sample buffer at the stream's sample rate.
//
// # Error Handling
//
//   - ErrNotFlacFile: the stream header could not be parsed
//   - ErrOnlyPCM16bitSupported: the stream uses another bit depth
//   - ErrChannelMismatch: a frame has a different channel count than the
//     stream info
//   - ErrDecode: a frame failed to decode
package flac
