// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes and encodes 16-bit PCM AIFF files.
//
// This package uses github.com/go-audio/aiff. AIFF is Apple's uncompressed
// audio format; compared to WAV it stores samples big-endian and its sample
// rate as an 80-bit float. The decoder hides both.
//
// # Decoding
//
//	file, _ := os.Open("audio.aif")
//	buf, err := aiff.Decoder{}.Decode(file)
//
// The whole file is read into an audio.SampleBuffer. Only 16-bit PCM is
// accepted; other depths fail with ErrOnlyPCM16bitSupported.
//
// # Encoding
//
// Encoder writes a SampleBuffer as a 16-bit AIFF file. The header is
// finished after the samples are written, so the destination must seek:
//
//	out, _ := os.Create("copy.aiff")
//	err := aiff.Encoder{}.Encode(out, buf)
//
// # File Extensions
//
// AIFF files use .aif or .aiff. AIFF-C (.aifc) is not supported.
package aiff
